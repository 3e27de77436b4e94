package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/commit-to-pr-mcp/internal/toolserver"
)

const (
	lookupUseConstant                  = "lookup"
	lookupShortDescriptionConstant     = "Resolve pull request details once and print them as JSON"
	lookupLongDescriptionConstant      = "lookup runs the get_pr resolution for a commit or pull request number without starting the MCP server and prints the JSON details to standard output."
	lookupCommitFlagNameConstant       = "commit"
	lookupCommitFlagUsageConstant      = "Commit SHA or reference to map to a pull request."
	lookupNumberFlagNameConstant       = "pr-number"
	lookupNumberFlagUsageConstant      = "Pull request number to fetch directly."
	lookupRepositoryFlagNameConstant   = "repo"
	lookupRepositoryFlagUsageConstant  = "Repository in owner/name form. Detected from the git remote when omitted."
	lookupDirectoryFlagNameConstant    = "cwd"
	lookupDirectoryFlagUsageConstant   = "Working directory used to detect the repository."
	lookupCompletedMessageConstant     = "lookup completed"
	lookupServerMissingMessageConstant = "lookup server provider not configured"
)

var errLookupServerProviderMissing = errors.New(lookupServerMissingMessageConstant)

// LoggerProvider yields the logger configured by the root command.
type LoggerProvider func() *zap.Logger

// ServerProvider builds the tool server once configuration is loaded.
type ServerProvider func() (*toolserver.Server, error)

// LookupCommandBuilder assembles the lookup command.
type LookupCommandBuilder struct {
	LoggerProvider LoggerProvider
	ServerProvider ServerProvider
}

type lookupFlagValues struct {
	commit            string
	pullRequestNumber int
	repository        string
	workingDirectory  string
}

// Build constructs the lookup command.
func (builder LookupCommandBuilder) Build() (*cobra.Command, error) {
	if builder.ServerProvider == nil {
		return nil, errLookupServerProviderMissing
	}

	flagValues := &lookupFlagValues{}

	command := &cobra.Command{
		Use:   lookupUseConstant,
		Short: lookupShortDescriptionConstant,
		Long:  lookupLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, flagValues)
		},
	}

	command.Flags().StringVar(&flagValues.commit, lookupCommitFlagNameConstant, "", lookupCommitFlagUsageConstant)
	command.Flags().IntVar(&flagValues.pullRequestNumber, lookupNumberFlagNameConstant, 0, lookupNumberFlagUsageConstant)
	command.Flags().StringVar(&flagValues.repository, lookupRepositoryFlagNameConstant, "", lookupRepositoryFlagUsageConstant)
	command.Flags().StringVar(&flagValues.workingDirectory, lookupDirectoryFlagNameConstant, "", lookupDirectoryFlagUsageConstant)

	return command, nil
}

func (builder LookupCommandBuilder) run(command *cobra.Command, flagValues *lookupFlagValues) error {
	lookup, lookupError := toolserver.NewLookup(flagValues.commit, flagValues.pullRequestNumber, flagValues.repository, flagValues.workingDirectory)
	if lookupError != nil {
		return lookupError
	}

	server, serverError := builder.ServerProvider()
	if serverError != nil {
		return serverError
	}

	serializedDetails, resolutionError := server.Lookup(command.Context(), lookup)
	if resolutionError != nil {
		return resolutionError
	}

	builder.resolveLogger().Debug(lookupCompletedMessageConstant)

	_, writeError := fmt.Fprintln(command.OutOrStdout(), serializedDetails)
	return writeError
}

func (builder LookupCommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
