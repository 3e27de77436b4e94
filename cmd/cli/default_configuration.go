package cli

import _ "embed"

//go:embed default_config.yaml
var embeddedServerDefaults []byte

// EmbeddedDefaultConfiguration returns a copy of the built-in server, resolver
// and logging defaults together with their configuration type.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return append([]byte(nil), embeddedServerDefaults...), configurationTypeConstant
}
