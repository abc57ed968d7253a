package core

import "errors"

var (
	ErrRejected       = errors.New("request rejected")
	ErrNotExist       = errors.New("wallet client does not exist")
	ErrClientNotReady = errors.New("wallet client not ready")
	ErrUnknownChain   = errors.New("unknown chain")
	ErrUnknownWallet  = errors.New("unknown wallet")
)

// StateForError maps a failure to the state a node reports for it.
func StateForError(err error) State {
	switch {
	case err == nil:
		return StateInit
	case errors.Is(err, ErrRejected):
		return StateRejected
	case errors.Is(err, ErrNotExist):
		return StateNotExist
	default:
		return StateError
	}
}

// FailurePolicy decides how manager failures reach the caller.
//
// Every failure is reported as a state transition. With Throw set the error
// is also returned to whoever triggered the operation; otherwise it is
// swallowed after being reported.
type FailurePolicy struct {
	Throw bool
}

// Handle reports err through report and returns what the caller should see.
func (p FailurePolicy) Handle(err error, report func(State, string)) error {
	if err == nil {
		return nil
	}
	if report != nil {
		report(StateForError(err), err.Error())
	}
	if p.Throw {
		return err
	}
	return nil
}
