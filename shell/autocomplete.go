package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter completes command names, their options and a few known
// argument values.
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"new":   {Args: []string{"x", "o"}},
	"solve": {Options: []string{"-plies", "-log"}},
	"sim":   {Options: []string{"-seed", "-log"}},
	"setconfig": {
		Args: []string{
			"search-plies", "transposition-table", "cache-truncated-results",
			"sim-rounds", "sim-seed", "sim-log-file", "debug",
		},
	},
	"help": {Args: []string{"position", "sim", "solve", "script"}},
}

var commandNames = []string{
	"new", "play", "aiplay", "show", "solve", "position", "sim",
	"setconfig", "script", "help", "exit",
}

var boolValues = []string{"true", "false"}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}
		// Values for boolean settings.
		if cmdName == "setconfig" && lastCompleteField != cmdName &&
			(lastCompleteField == "transposition-table" ||
				lastCompleteField == "cache-truncated-results" ||
				lastCompleteField == "debug") {
			completions = boolValues
		}
		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
