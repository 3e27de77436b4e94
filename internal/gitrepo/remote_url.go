package gitrepo

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	repositoryIdentifierTemplateConstant = "%s/%s"
	remoteURLParseErrorTemplateConstant  = "%s: %s"
	requiredValueMessageConstant         = "value required"
	unrecognizedRemoteMessageConstant    = "remote url does not match a known host"
	remotePatternTemplateConstant        = `(?i)(?:^|[@/])%s(?::[0-9]+)?[:/]([^/:\s]+)/([^/\s]+?)(?:\.git)?/?$`
)

// DefaultHostConstant is the code host recognized when no hosts are configured.
const DefaultHostConstant = "github.com"

// RepositoryIdentifier names a repository on a code host.
type RepositoryIdentifier struct {
	Host  string
	Owner string
	Name  string
}

// String renders the identifier in owner/name form.
func (identifier RepositoryIdentifier) String() string {
	return fmt.Sprintf(repositoryIdentifierTemplateConstant, identifier.Owner, identifier.Name)
}

// RemoteURLParseError indicates a remote string could not be reduced to owner/name.
type RemoteURLParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError RemoteURLParseError) Error() string {
	return fmt.Sprintf(remoteURLParseErrorTemplateConstant, parseError.Input, parseError.Message)
}

// ParseRepositoryIdentifier extracts owner/name from SSH (git@host:owner/name.git,
// ssh://git@host/owner/name.git) and HTTPS (https://host/owner/name[.git]) remotes
// that point at one of the supplied hosts. An empty host list means github.com.
func ParseRepositoryIdentifier(remote string, hosts []string) (RepositoryIdentifier, error) {
	trimmedRemote := strings.TrimSpace(remote)
	if len(trimmedRemote) == 0 {
		return RepositoryIdentifier{}, RemoteURLParseError{Input: remote, Message: requiredValueMessageConstant}
	}

	for _, host := range normalizeHosts(hosts) {
		matches := compileRemotePattern(host).FindStringSubmatch(trimmedRemote)
		if matches == nil {
			continue
		}
		return RepositoryIdentifier{Host: host, Owner: matches[1], Name: matches[2]}, nil
	}

	return RepositoryIdentifier{}, RemoteURLParseError{Input: trimmedRemote, Message: unrecognizedRemoteMessageConstant}
}

func compileRemotePattern(host string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(remotePatternTemplateConstant, regexp.QuoteMeta(host)))
}

func normalizeHosts(hosts []string) []string {
	normalized := make([]string, 0, len(hosts))
	for _, host := range hosts {
		trimmedHost := strings.ToLower(strings.TrimSpace(host))
		if len(trimmedHost) == 0 {
			continue
		}
		normalized = append(normalized, trimmedHost)
	}
	if len(normalized) == 0 {
		return []string{DefaultHostConstant}
	}
	return normalized
}
