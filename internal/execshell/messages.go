package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitRevParseSubcommandNameConstant     = "rev-parse"
	gitWorkTreeFlagConstant               = "--is-inside-work-tree"
	gitRemoteSubcommandNameConstant       = "remote"
	gitRemoteGetURLSubcommandNameConstant = "get-url"
)

const (
	gitWorkTreeStartTemplateConstant                = "Analyzing repository at %s"
	gitWorkTreeSuccessTemplateConstant              = "%s is a Git repository"
	gitWorkTreeFailureTemplateConstant              = "Could not confirm %s is a Git repository (exit code %d%s)"
	gitWorkTreeExecutionFailureTemplateConstant     = "Could not analyze %s: %s"
	gitRemoteLookupStartTemplateConstant            = "Checking %s remote for %s"
	gitRemoteLookupSuccessTemplateConstant          = "%s remote for %s points to %s"
	gitRemoteLookupFailureTemplateConstant          = "Failed to read %s remote for %s (exit code %d%s)"
	gitRemoteLookupExecutionFailureTemplateConstant = "Unable to read %s remote for %s: %s"
)

const (
	githubPullRequestSubcommandNameConstant     = "pr"
	githubPullRequestListSubcommandNameConstant = "list"
	githubPullRequestViewSubcommandNameConstant = "view"
	githubAPICommandNameConstant                = "api"
	githubRepoFlagConstant                      = "--repo"
	githubSearchFlagConstant                    = "--search"
	githubStateFlagConstant                     = "--state"
	githubRepositoryEndpointPrefixConstant      = "repos/"
	githubCommitsEndpointSegmentConstant        = "/commits/"
	githubCurrentRepositoryLabelConstant        = "current repository"
)

const (
	githubPullRequestSearchStartTemplateConstant            = "Searching %s pull requests in %s for %s"
	githubPullRequestSearchSuccessTemplateConstant          = "Searched %s pull requests in %s for %s"
	githubPullRequestSearchFailureTemplateConstant          = "Failed to search %s pull requests in %s for %s (exit code %d%s)"
	githubPullRequestSearchExecutionFailureTemplateConstant = "Unable to search %s pull requests in %s for %s: %s"
	githubPullRequestViewStartTemplateConstant              = "Retrieving pull request #%s from %s"
	githubPullRequestViewSuccessTemplateConstant            = "Retrieved pull request #%s from %s"
	githubPullRequestViewFailureTemplateConstant            = "Failed to retrieve pull request #%s from %s (exit code %d%s)"
	githubPullRequestViewExecutionFailureTemplateConstant   = "Unable to retrieve pull request #%s from %s: %s"
	githubCommitReadStartTemplateConstant                   = "Reading commit %s from %s"
	githubCommitReadSuccessTemplateConstant                 = "Read commit %s from %s"
	githubCommitReadFailureTemplateConstant                 = "Failed to read commit %s from %s (exit code %d%s)"
	githubCommitReadExecutionFailureTemplateConstant        = "Unable to read commit %s from %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandGitHub:
		return formatter.describeGitHubMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	case gitRemoteSubcommandNameConstant:
		return formatter.describeGitRemoteMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if !containsArgument(command.Details.Arguments, gitWorkTreeFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitWorkTreeStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitWorkTreeSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitWorkTreeFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitWorkTreeExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRemoteMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 || strings.TrimSpace(arguments[1]) != gitRemoteGetURLSubcommandNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitRemoteLookupStartTemplateConstant, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitRemoteLookupSuccessTemplateConstant, remoteName, workingDirectory, formatter.ensureValue(result.StandardOutput))
	case messageStageFailure:
		return fmt.Sprintf(gitRemoteLookupFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitRemoteLookupExecutionFailureTemplateConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	primary := strings.TrimSpace(command.Details.Arguments[0])
	switch primary {
	case githubPullRequestSubcommandNameConstant:
		return formatter.describeGitHubPullRequestCommand(command, result, failure, stage)
	case githubAPICommandNameConstant:
		return formatter.describeGitHubAPICommand(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubPullRequestCommand(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch strings.TrimSpace(arguments[1]) {
	case githubPullRequestListSubcommandNameConstant:
		if len(findFlagValue(arguments, githubSearchFlagConstant)) == 0 {
			return formatter.buildGenericMessage(command, result, failure, stage)
		}
		return formatter.describeGitHubPullRequestSearch(command, result, failure, stage)
	case githubPullRequestViewSubcommandNameConstant:
		return formatter.describeGitHubPullRequestView(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubPullRequestSearch(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	state := formatter.ensureValue(findFlagValue(arguments, githubStateFlagConstant))
	query := formatter.ensureValue(findFlagValue(arguments, githubSearchFlagConstant))
	repository := formatter.describeRepository(arguments)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(githubPullRequestSearchStartTemplateConstant, state, repository, query)
	case messageStageSuccess:
		return fmt.Sprintf(githubPullRequestSearchSuccessTemplateConstant, state, repository, query)
	case messageStageFailure:
		return fmt.Sprintf(githubPullRequestSearchFailureTemplateConstant, state, repository, query, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(githubPullRequestSearchExecutionFailureTemplateConstant, state, repository, query, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubPullRequestView(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	pullRequestNumber := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))
	repository := formatter.describeRepository(arguments)

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(githubPullRequestViewStartTemplateConstant, pullRequestNumber, repository)
	case messageStageSuccess:
		return fmt.Sprintf(githubPullRequestViewSuccessTemplateConstant, pullRequestNumber, repository)
	case messageStageFailure:
		return fmt.Sprintf(githubPullRequestViewFailureTemplateConstant, pullRequestNumber, repository, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(githubPullRequestViewExecutionFailureTemplateConstant, pullRequestNumber, repository, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubAPICommand(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	endpoint := strings.TrimSpace(formatter.argumentAtIndex(command.Details.Arguments, 1))
	repository, reference, isCommitEndpoint := formatter.extractCommitEndpoint(endpoint)
	if !isCommitEndpoint {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(githubCommitReadStartTemplateConstant, reference, repository)
	case messageStageSuccess:
		return fmt.Sprintf(githubCommitReadSuccessTemplateConstant, reference, repository)
	case messageStageFailure:
		return fmt.Sprintf(githubCommitReadFailureTemplateConstant, reference, repository, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(githubCommitReadExecutionFailureTemplateConstant, reference, repository, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeRepository(arguments []string) string {
	repository := findFlagValue(arguments, githubRepoFlagConstant)
	if len(repository) == 0 {
		return githubCurrentRepositoryLabelConstant
	}
	return repository
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

// extractCommitEndpoint splits repos/<owner>/<name>/commits/<reference> into its parts.
func (formatter CommandMessageFormatter) extractCommitEndpoint(endpoint string) (string, string, bool) {
	if !strings.HasPrefix(endpoint, githubRepositoryEndpointPrefixConstant) {
		return emptyStringConstant, emptyStringConstant, false
	}
	repositoryAndReference := strings.TrimPrefix(endpoint, githubRepositoryEndpointPrefixConstant)
	repository, reference, found := strings.Cut(repositoryAndReference, githubCommitsEndpointSegmentConstant)
	if !found {
		return emptyStringConstant, emptyStringConstant, false
	}
	return formatter.ensureValue(repository), formatter.ensureValue(reference), true
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == flag && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}
