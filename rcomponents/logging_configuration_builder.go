package rcomponents

import (
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/typedrest/go-rest-client/interfaces"
)

// LoggingConfigurationBuilder contains methods for configuring the builder's logging
// behavior.
//
// Obtain one with Logging(), change its properties, and store it on the builder with
// ClientBuilder.LoggingConfigurationFactory:
//
//	builder.LoggingConfigurationFactory(rcomponents.Logging().MinLevel(ldlog.Warn))
type LoggingConfigurationBuilder struct {
	config interfaces.LoggingConfiguration
}

// Logging returns a configuration builder with logging enabled at default settings.
func Logging() *LoggingConfigurationBuilder {
	return &LoggingConfigurationBuilder{
		config: interfaces.LoggingConfiguration{Loggers: ldlog.NewDefaultLoggers()},
	}
}

// Loggers specifies an ldlog.Loggers instance for log output. The ldlog package
// contains methods for customizing the destination and level filtering.
func (b *LoggingConfigurationBuilder) Loggers(loggers ldlog.Loggers) *LoggingConfigurationBuilder {
	b.config.Loggers = loggers
	return b
}

// MinLevel specifies the minimum level for log output, where ldlog.Debug is the lowest
// and ldlog.Error is the highest. The default is ldlog.Info.
func (b *LoggingConfigurationBuilder) MinLevel(level ldlog.LogLevel) *LoggingConfigurationBuilder {
	b.config.Loggers.SetMinLevel(level)
	return b
}

// LogRequests sets whether clients log every request at debug level.
func (b *LoggingConfigurationBuilder) LogRequests(logRequests bool) *LoggingConfigurationBuilder {
	b.config.LogRequests = logRequests
	return b
}

// CreateLoggingConfiguration is called by the builder at build time.
func (b *LoggingConfigurationBuilder) CreateLoggingConfiguration() interfaces.LoggingConfiguration {
	return b.config
}

// NoLogging returns a configuration object that disables logging.
func NoLogging() interfaces.LoggingConfigurationFactory {
	return noLoggingConfigurationFactory{}
}

type noLoggingConfigurationFactory struct{}

func (f noLoggingConfigurationFactory) CreateLoggingConfiguration() interfaces.LoggingConfiguration {
	return interfaces.LoggingConfiguration{Loggers: ldlog.NewDisabledLoggers()}
}
