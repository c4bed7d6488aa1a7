package commands

import (
	"strings"

	"github.com/rulekeep/rulekeep/internal/logging"
	"github.com/rulekeep/rulekeep/pkg/interfaces"
)

const commandModuleRoot = "rulekeep.commands"

// CommandLogger returns a module-scoped logger for command handlers with
// consistent structured fields attached.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
