package logward

import (
	"errors"
)

// Logging errors
var (
	// Configuration errors
	ErrInvalidLevel        = errors.New("invalid log level")
	ErrInvalidFormat       = errors.New("invalid log format")
	ErrInvalidAppenderType = errors.New("invalid appender type")
	ErrMissingFileConfig   = errors.New("missing file configuration for file appender")
	ErrMissingFilePath     = errors.New("missing file path for file appender")
	ErrMissingCloudEvents  = errors.New("missing cloudevents configuration for cloudevents appender")
	ErrMissingTarget       = errors.New("missing target for cloudevents appender")
	ErrNilFormatter        = errors.New("formatter is nil")
	ErrNilAppender         = errors.New("appender is nil")

	// Feature errors
	ErrConflictingFeatures = errors.New("conflicting features in mutually-exclusive group")
	ErrFeatureGroupEmpty   = errors.New("feature group cannot be empty")

	// Composition errors
	ErrNilBundle                = errors.New("bundle is nil")
	ErrLoggerAlreadyProvided    = errors.New("logger already provided in scope")
	ErrLoggerNotConfigured      = errors.New("no logger configured in scope or any enclosing scope")
	ErrServiceAlreadyRegistered = errors.New("service already registered")

	// Category registration errors
	ErrEmptyCategory             = errors.New("category name cannot be empty")
	ErrCategoryAlreadyRegistered = errors.New("category appender already registered")

	// Appender runtime errors
	ErrFileNotOpen       = errors.New("log file not open")
	ErrEventNotDelivered = errors.New("cloudevents entry not delivered")

	// Config loading errors
	ErrWatcherClosed        = errors.New("config watcher closed")
	ErrUnsupportedConfigExt = errors.New("unsupported config file extension")
)
