package cli

import (
	"fmt"
	"strconv"
	"strings"

	"mediarelay/internal/api"
)

// Command is one parsed command line argument such as "set_position=30" or
// "launch_app=com.example.tv".
type Command struct {
	Name string
	Args []string
}

// String renders the command back in name=arg1,arg2 form.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + "=" + strings.Join(c.Args, ",")
}

// ParseCommand splits "name=arg1,arg2" into a Command. Arguments may be
// quoted with single or double quotes to keep commas; quotes are removed.
func ParseCommand(s string) (Command, error) {
	name, rawArgs, hasArgs := strings.Cut(strings.TrimSpace(s), "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return Command{}, fmt.Errorf("empty command in %q", s)
	}
	cmd := Command{Name: name}
	if !hasArgs {
		return cmd, nil
	}

	args, err := splitArgs(rawArgs)
	if err != nil {
		return Command{}, fmt.Errorf("command %s: %w", name, err)
	}
	cmd.Args = args
	return cmd, nil
}

// ParseCommands parses every argument with ParseCommand.
func ParseCommands(args []string) ([]Command, error) {
	cmds := make([]Command, 0, len(args))
	for _, arg := range args {
		cmd, err := ParseCommand(arg)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func splitArgs(raw string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
	)
	for _, r := range raw {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			current.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
		case r == ',':
			args = append(args, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote in %q", raw)
	}
	return append(args, current.String()), nil
}

// ParseInputAction accepts an action name (single_tap, DoubleTap, hold) or
// its number.
func ParseInputAction(s string) (api.InputAction, error) {
	for a := api.InputActionSingleTap; a <= api.InputActionHold; a++ {
		if matchesEnum(s, a.String(), int(a)) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("invalid input action %q", s)
}

// ParseShuffleState accepts a shuffle state name (off, albums, songs) or its
// number.
func ParseShuffleState(s string) (api.ShuffleState, error) {
	for st := api.ShuffleOff; st <= api.ShuffleSongs; st++ {
		if matchesEnum(s, st.String(), int(st)) {
			return st, nil
		}
	}
	return 0, fmt.Errorf("invalid shuffle state %q", s)
}

// ParseRepeatState accepts a repeat state name (off, track, all) or its
// number.
func ParseRepeatState(s string) (api.RepeatState, error) {
	for st := api.RepeatOff; st <= api.RepeatAll; st++ {
		if matchesEnum(s, st.String(), int(st)) {
			return st, nil
		}
	}
	return 0, fmt.Errorf("invalid repeat state %q", s)
}

func matchesEnum(s, name string, value int) bool {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n == value
	}
	normalized := strings.ReplaceAll(strings.ToLower(s), "_", "")
	return normalized == strings.ToLower(name)
}
