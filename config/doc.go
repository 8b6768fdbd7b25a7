// Package config provides configuration loading and validation for authkit.
//
// It uses Viper to layer a config.yml file, a .env file, and process
// environment variables into the root Config, then applies defaults and
// validates before returning.
//
// # Usage
//
//	cfg, err := config.Load()
//	cfg, err := config.Load(config.WithConfigFile("./config.yml"))
//
// Environment variables override file values using underscore-separated
// paths (e.g. JWT_SECRET, BLACKLIST_BACKEND, AUTH_API_KEY_ENABLED).
package config
