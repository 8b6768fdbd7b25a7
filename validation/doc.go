// Package validation provides input validation for authkit request payloads.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// recommended for request bodies crossing the HTTP boundary.
//
// # Struct Tag Validation
//
//	type LoginRequest struct {
//	    Username string `json:"username" validate:"required,max=255"`
//	    Password string `json:"password" validate:"required,min=8"`
//	}
//	err := validation.Validate(req)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("name", name).MaxLength("name", name, 255)
//	err := v.Validate()
package validation
