// Package utils exposes the configuration and logging plumbing shared by the
// command line and the tool server.
//
// ConfigurationLoader layers embedded defaults, configuration files and
// environment variables through Viper. LoggerFactory builds zap loggers that
// write to standard error only.
package utils
