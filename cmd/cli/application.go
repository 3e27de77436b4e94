package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/commit-to-pr-mcp/internal/execshell"
	"github.com/temirov/commit-to-pr-mcp/internal/githubcli"
	"github.com/temirov/commit-to-pr-mcp/internal/gitrepo"
	"github.com/temirov/commit-to-pr-mcp/internal/pullrequests"
	"github.com/temirov/commit-to-pr-mcp/internal/toolserver"
	"github.com/temirov/commit-to-pr-mcp/internal/utils"
)

const (
	applicationNameConstant                 = "commit-to-pr-mcp"
	applicationShortDescriptionConstant     = "MCP server resolving GitHub pull requests from commits"
	applicationLongDescriptionConstant      = "commit-to-pr-mcp serves the get_pr tool over stdio. It maps a commit reference or pull request number to pull request details using git and the GitHub CLI."
	readinessMessageConstant                = "commit-to-pr-mcp server running on stdio"
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	environmentPrefixConstant               = "COMMITTOPR"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	serverConstructionErrorTemplateConstant = "unable to start server: %w"
	serverStoppedMessageConstant            = "server stopped"
	serverStartingMessageConstant           = "server starting"
	serverNameFieldConstant                 = "server_name"
	serverVersionFieldConstant              = "server_version"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common   ApplicationCommonConfiguration `mapstructure:"common"`
	Server   toolserver.Configuration       `mapstructure:"server"`
	Resolver pullrequests.Configuration     `mapstructure:"resolver"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// TransportFactory produces the transport the root command serves on.
type TransportFactory func() mcp.Transport

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
	commandRunner         execshell.CommandRunner
	transportFactory      TransportFactory
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	embeddedConfiguration, embeddedConfigurationType := EmbeddedDefaultConfiguration()

	application := &Application{
		configurationLoader: utils.NewConfigurationLoader(utils.ConfigurationLoaderOptions{
			ConfigurationName:         configurationNameConstant,
			ConfigurationType:         configurationTypeConstant,
			EnvironmentPrefix:         environmentPrefixConstant,
			SearchPaths:               defaultConfigurationSearchPaths(),
			EmbeddedConfiguration:     embeddedConfiguration,
			EmbeddedConfigurationType: embeddedConfigurationType,
		}),
		loggerFactory:    utils.NewLoggerFactory(),
		logger:           zap.NewNop(),
		commandRunner:    execshell.NewOSCommandRunner(),
		transportFactory: func() mcp.Transport { return &mcp.StdioTransport{} },
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runServer(command)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)

	lookupBuilder := LookupCommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ServerProvider: application.buildServer,
	}
	lookupCommand, lookupBuildError := lookupBuilder.Build()
	if lookupBuildError == nil {
		cobraCommand.AddCommand(lookupCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func defaultConfigurationSearchPaths() []string {
	userConfigurationDirectory, userConfigurationError := os.UserConfigDir()
	if userConfigurationError != nil {
		return nil
	}
	return []string{filepath.Join(userConfigurationDirectory, applicationNameConstant)}
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) buildServer() (*toolserver.Server, error) {
	shellExecutor, executorError := execshell.NewShellExecutor(application.logger, application.commandRunner)
	if executorError != nil {
		return nil, executorError
	}

	repositoryInspector, inspectorError := gitrepo.NewRepositoryInspector(shellExecutor)
	if inspectorError != nil {
		return nil, inspectorError
	}

	gitHubClient, clientError := githubcli.NewClient(shellExecutor)
	if clientError != nil {
		return nil, clientError
	}

	resolver, resolverError := pullrequests.NewResolver(pullrequests.Dependencies{
		Logger:              application.logger,
		RepositoryInspector: repositoryInspector,
		CodeHostClient:      gitHubClient,
	}, application.configuration.Resolver)
	if resolverError != nil {
		return nil, resolverError
	}

	return toolserver.NewServer(toolserver.Dependencies{
		Logger:   application.logger,
		Resolver: resolver,
	}, application.configuration.Server)
}

func (application *Application) runServer(command *cobra.Command) error {
	server, serverError := application.buildServer()
	if serverError != nil {
		return fmt.Errorf(serverConstructionErrorTemplateConstant, serverError)
	}

	signalContext, stopSignals := signal.NotifyContext(command.Context(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	application.logger.Debug(
		serverStartingMessageConstant,
		zap.String(serverNameFieldConstant, application.configuration.Server.Name),
		zap.String(serverVersionFieldConstant, application.configuration.Server.Version),
	)

	serveError := server.Serve(signalContext, application.transportFactory(), func() {
		fmt.Fprintln(command.ErrOrStderr(), readinessMessageConstant)
	})
	if serveError != nil {
		return fmt.Errorf(serverConstructionErrorTemplateConstant, serveError)
	}

	application.logger.Debug(serverStoppedMessageConstant)
	return nil
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet != nil && flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
