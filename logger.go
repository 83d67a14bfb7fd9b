package gantry

import (
	"github.com/xraph/gantry/internal/logger"
)

// Logger is the structured logging interface used by the framework.
type Logger = logger.Logger

// LoggingConfig configures logger construction.
type LoggingConfig = logger.LoggingConfig

// Logger constructors and global accessors.
var (
	NewLogger            = logger.NewLogger
	NewDevelopmentLogger = logger.NewDevelopmentLogger
	NewProductionLogger  = logger.NewProductionLogger
	NewNoopLogger        = logger.NewNoopLogger
	NewZapLogger         = logger.NewZapLogger

	GetGlobalLogger = logger.GetGlobalLogger
	SetGlobalLogger = logger.SetGlobalLogger
)
