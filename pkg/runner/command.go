package runner

import (
	"fmt"
	"strings"
)

// Command is one interactive instruction.
type Command int

const (
	CmdNext Command = iota
	CmdPrevious
	CmdRun
	CmdTrace
	CmdRestart
	CmdHelp
	CmdQuit
)

func (c Command) String() string {
	switch c {
	case CmdNext:
		return "next"
	case CmdPrevious:
		return "previous"
	case CmdRun:
		return "run"
	case CmdTrace:
		return "trace"
	case CmdRestart:
		return "restart"
	case CmdHelp:
		return "help"
	case CmdQuit:
		return "quit"
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ParseCommand maps a typed line to a command. An empty line means next.
func ParseCommand(line string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "n", "next":
		return CmdNext, nil
	case "p", "prev", "previous", "b", "back":
		return CmdPrevious, nil
	case "a", "all", "run":
		return CmdRun, nil
	case "t", "trace":
		return CmdTrace, nil
	case "r", "restart":
		return CmdRestart, nil
	case "h", "help", "?":
		return CmdHelp, nil
	case "q", "quit", "exit":
		return CmdQuit, nil
	}
	return 0, fmt.Errorf("unknown command %q (type h for help)", strings.TrimSpace(line))
}

// HelpText lists the commands.
const HelpText = `n / enter  next step
p          previous step
a          run to the verdict
t          show the trace
r          restart
q          quit`
