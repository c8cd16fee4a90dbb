// Package config loads application configuration from environment variables
// into tagged structs, using github.com/caarlos0/env/v11 for parsing and
// github.com/joho/godotenv for .env files.
//
// Load parses each config type once per process and hands out copies of the
// cached value, so packages can ask for their configuration independently
// without re-reading the environment:
//
//	var cfg session.Config
//	config.MustLoad(&cfg)
//	manager := session.NewFromConfig(cfg)
//
// Parse skips the cache and applies a variable prefix, for configs that are
// instantiated more than once or read in tests.
//
// # Error Handling
//
//   - ErrNilPointer     – Load was given a nil pointer
//   - ErrParsingConfig  – a variable is missing or malformed; joined with the
//     parser's error
//   - ErrLoadingEnvFile – LoadEnvFiles could not read a file
package config
