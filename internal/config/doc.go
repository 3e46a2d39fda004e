// Package config provides centralized configuration management for the dataclean service.
// It loads configuration from environment variables and an optional YAML file,
// validates it and exposes typed sections to the rest of the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern DATACLEAN_<SECTION>_<FIELD>:
//
//	DATACLEAN_SERVER_PORT=8000
//	DATACLEAN_PATHS_STORAGE_DIR=uploads
//	DATACLEAN_CLEANING_OUTLIER_MAX=30000000000
//	DATACLEAN_LOGGING_LEVEL=debug
//
// # Cleaning Thresholds
//
// The thresholds used by the cleaning pipeline live in CleaningConfig and are
// handed to the pipeline at construction time; nothing reads them globally.
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Testing
//
// Use config.Default() for a fully populated configuration that does not
// depend on the environment.
package config
