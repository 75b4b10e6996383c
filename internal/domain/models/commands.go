package models

import (
	"strings"
)

// CommandType enumerates the stock commands accepted over chat.
type CommandType string

const (
	CommandAdd       CommandType = "add"
	CommandReserve   CommandType = "reserve"
	CommandRelease   CommandType = "release"
	CommandShip      CommandType = "ship"
	CommandDamaged   CommandType = "damaged"
	CommandThreshold CommandType = "threshold"
	CommandCapacity  CommandType = "capacity"
	CommandStatus    CommandType = "status"
	CommandHelp      CommandType = "help"
	CommandUnknown   CommandType = "unknown"
)

var commandAliases = map[string]CommandType{
	"add":       CommandAdd,
	"receive":   CommandAdd,
	"reserve":   CommandReserve,
	"release":   CommandRelease,
	"cancel":    CommandRelease,
	"ship":      CommandShip,
	"damaged":   CommandDamaged,
	"damage":    CommandDamaged,
	"writeoff":  CommandDamaged,
	"threshold": CommandThreshold,
	"reorder":   CommandThreshold,
	"capacity":  CommandCapacity,
	"status":    CommandStatus,
	"stock":     CommandStatus,
	"help":      CommandHelp,
}

// Command represents a parsed operator instruction extracted from a text message.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command instance from free-form text messages.
func ParseCommand(message string) Command {
	normalized := strings.TrimSpace(strings.ToLower(message))
	cmd := Command{Type: CommandUnknown, Raw: message}

	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return cmd
	}

	head := strings.TrimPrefix(tokens[0], "/")
	if t, ok := commandAliases[head]; ok {
		cmd.Type = t
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}
