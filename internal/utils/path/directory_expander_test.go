package pathutils_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/commit-to-pr-mcp/internal/utils/path"
)

const testHomeDirectoryConstant = "/home/dev"

func TestDirectoryExpanderExpand(testInstance *testing.T) {
	testCases := []struct {
		name      string
		directory string
		expected  string
	}{
		{name: "empty", directory: "", expected: ""},
		{name: "whitespace_only", directory: "   ", expected: ""},
		{name: "home_shortcut", directory: "~", expected: testHomeDirectoryConstant},
		{name: "home_relative", directory: "~/src/widgets", expected: "/home/dev/src/widgets"},
		{name: "absolute_path_cleaned", directory: " /work/widgets/../gadgets/ ", expected: "/work/gadgets"},
		{name: "other_user_shortcut", directory: "~someone/src", expected: "~someone/src"},
	}

	expander := pathutils.NewDirectoryExpanderWithProvider(func() (string, error) {
		return testHomeDirectoryConstant, nil
	})

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, expander.Expand(testCase.directory))
		})
	}
}

func TestDirectoryExpanderLeavesShortcutWhenHomeUnavailable(testInstance *testing.T) {
	providerCalls := 0
	expander := pathutils.NewDirectoryExpanderWithProvider(func() (string, error) {
		providerCalls++
		return "", errors.New("home unavailable")
	})

	require.Equal(testInstance, "~/src", expander.Expand("~/src"))
	require.Equal(testInstance, "~", expander.Expand("~"))
	require.Equal(testInstance, 1, providerCalls)
}
