// Package control defines lightweight command messages used by the UI to
// request actions from the application command loop. The command loop
// centralizes trial transitions so UI events are applied in order.
package control

import "ReactionTest/reaction"

// CommandType enumerates supported command operations.
type CommandType int

const (
	CmdStart CommandType = iota
	CmdClick
	CmdReset
)

func (t CommandType) String() string {
	switch t {
	case CmdStart:
		return "start"
	case CmdClick:
		return "click"
	case CmdReset:
		return "reset"
	}
	return "unknown"
}

// Command is the message sent from UI to AppManager.commandLoop. The
// optional Reply channel receives the snapshot taken after the command was
// applied, which lets the UI render without waiting for the next refresh.
type Command struct {
	Type  CommandType
	Reply chan reaction.Snapshot // optional reply channel
}
