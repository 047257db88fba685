package commands

import (
	"strings"

	"github.com/goliatone/go-press/internal/logging"
	"github.com/goliatone/go-press/pkg/interfaces"
)

const verbLoggerRoot = "press.cli"

// VerbLogger scopes a provider logger to one CLI verb, e.g. press.cli.publish.
// An empty verb falls back to the bare root.
func VerbLogger(provider interfaces.LoggerProvider, verb string) interfaces.Logger {
	verb = strings.ToLower(strings.TrimSpace(verb))
	name := verbLoggerRoot
	if verb != "" {
		name += "." + verb
	}
	fields := map[string]any{"component": "cli"}
	if verb != "" {
		fields["verb"] = verb
	}
	return logging.WithFields(logging.ModuleLogger(provider, name), fields)
}
