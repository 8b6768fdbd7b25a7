// Package logger provides structured logging for authkit using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.NewDefault("authkit").WithComponent("apikey")
//	log.Info("key created", logger.Fields(logger.FieldKeyID, id))
package logger
