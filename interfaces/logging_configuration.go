package interfaces

import (
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

// LoggingConfiguration encapsulates the builder's logging behavior.
type LoggingConfiguration struct {
	// Loggers is the destination for log output from the builder and from clients it
	// constructs.
	Loggers ldlog.Loggers

	// LogRequests enables debug-level logging of every request the client sends.
	LogRequests bool
}

// LoggingConfigurationFactory creates a LoggingConfiguration. The built-in
// implementations are rcomponents.Logging and rcomponents.NoLogging.
type LoggingConfigurationFactory interface {
	CreateLoggingConfiguration() LoggingConfiguration
}
