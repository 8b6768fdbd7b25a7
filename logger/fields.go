package logger

// Standard field key constants for structured logging.
//
// Secrets never appear in log fields: API-key fields carry only the lookup
// prefix, token fields carry only the token id (jti).
const (
	FieldService     = "service"
	FieldComponent   = "component"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldProvider    = "provider"
	FieldPrincipalID = "principal_id"
	FieldUsername    = "username"
	FieldRole        = "role"
	FieldTokenID     = "token_id"
	FieldKeyID       = "key_id"
	FieldKeyPrefix   = "key_prefix"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("key created", logger.Fields(logger.FieldKeyID, id))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(op string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldError:     err.Error(),
	}
}
