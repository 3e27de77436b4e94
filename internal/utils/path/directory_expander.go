package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	homeShortcutConstant            = "~"
	homeShortcutSlashPrefixConstant = "~/"
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// DirectoryExpander normalizes working directories supplied by callers.
type DirectoryExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	homeDirectory         string
	homeDirectoryError    error
	lookupGuard           sync.Once
}

// NewDirectoryExpander constructs a DirectoryExpander backed by os.UserHomeDir.
func NewDirectoryExpander() *DirectoryExpander {
	return NewDirectoryExpanderWithProvider(os.UserHomeDir)
}

// NewDirectoryExpanderWithProvider constructs a DirectoryExpander with a custom home lookup.
func NewDirectoryExpanderWithProvider(provider HomeDirectoryProvider) *DirectoryExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &DirectoryExpander{homeDirectoryProvider: provider}
}

// Expand trims the directory, replaces a leading ~ with the home directory and
// cleans the result. An empty directory stays empty so callers fall back to the
// process working directory. "~user" forms are returned untouched.
func (expander *DirectoryExpander) Expand(directory string) string {
	trimmedDirectory := strings.TrimSpace(directory)
	if len(trimmedDirectory) == 0 {
		return trimmedDirectory
	}
	if expander == nil || !strings.HasPrefix(trimmedDirectory, homeShortcutConstant) {
		return filepath.Clean(trimmedDirectory)
	}

	homeDirectory := expander.lookupHomeDirectory()
	if len(homeDirectory) == 0 {
		return trimmedDirectory
	}

	switch {
	case trimmedDirectory == homeShortcutConstant:
		return filepath.Clean(homeDirectory)
	case strings.HasPrefix(trimmedDirectory, homeShortcutSlashPrefixConstant):
		return filepath.Join(homeDirectory, strings.TrimPrefix(trimmedDirectory, homeShortcutSlashPrefixConstant))
	case strings.HasPrefix(trimmedDirectory, homeShortcutConstant+string(os.PathSeparator)):
		return filepath.Join(homeDirectory, strings.TrimPrefix(trimmedDirectory, homeShortcutConstant+string(os.PathSeparator)))
	default:
		return trimmedDirectory
	}
}

func (expander *DirectoryExpander) lookupHomeDirectory() string {
	expander.lookupGuard.Do(func() {
		expander.homeDirectory, expander.homeDirectoryError = expander.homeDirectoryProvider()
	})
	if expander.homeDirectoryError != nil {
		return ""
	}
	return expander.homeDirectory
}
