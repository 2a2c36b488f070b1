// Package config resolves the application configuration from an optional
// YAML file, environment overrides (MAILSENSE_* plus LLM_API_KEY) and
// built-in defaults, in that order of precedence from lowest to highest.
package config
