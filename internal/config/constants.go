package config

import "time"

// Application constants
const (
	AppName    = "DataClean Analyzer"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable read by Load.
	EnvPrefix = "DATACLEAN"

	DefaultPort           = 8000
	DefaultPublicBaseURL  = "http://127.0.0.1:8000"
	DefaultMaxUploadBytes = 32 << 20

	DefaultStorageDir = "uploads"
	DefaultLogsDir    = "logs"

	DefaultReadTimeout     = 60 * time.Second
	DefaultWriteTimeout    = 120 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultRequestTimeout  = 2 * time.Minute

	DefaultRateLimitRPS   = 20
	DefaultRateLimitBurst = 40
)

// Cleaning pipeline defaults
const (
	DefaultOutlierMin            = 0.0
	DefaultOutlierMax            = 3e10
	DefaultRowDropThreshold      = 1
	DefaultColDropThreshold      = 0.7
	DefaultNumericShareThreshold = 0.5
	DefaultPreviewRows           = 5
	DefaultTopCategories         = 10
)
