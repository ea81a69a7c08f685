// Package config loads restkit client settings from YAML files and the
// environment.
//
// It uses Viper to read config.yml and godotenv to load .env files,
// then unmarshals the merged result into Settings. Environment variables
// override file values using underscore-separated paths (e.g.
// CLIENT_BASE_URL overrides client.base_url).
//
// # Usage
//
//	settings, err := config.Load("myapp")
//	if err != nil { ... }
//	client, err := settings.NewClient()
package config
