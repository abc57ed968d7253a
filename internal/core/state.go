package core

import (
	"fmt"
	"strings"
)

// State is the connection state of a wallet manager node.
type State int

const (
	StateInit State = iota
	StateConnecting
	StateConnected
	StateDisconnected
	StateRejected
	StateError
	StateNotExist
)

var stateNames = [...]string{
	StateInit:         "Init",
	StateConnecting:   "Connecting",
	StateConnected:    "Connected",
	StateDisconnected: "Disconnected",
	StateRejected:     "Rejected",
	StateError:        "Error",
	StateNotExist:     "NotExist",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// IsTerminal reports whether s ends a connect attempt.
func (s State) IsTerminal() bool {
	switch s {
	case StateConnected, StateRejected, StateError, StateNotExist:
		return true
	default:
		return false
	}
}

// ParseState converts a state name (case-insensitive) to a State.
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return State(i), nil
		}
	}
	return StateInit, fmt.Errorf("unknown state: %q", name)
}
