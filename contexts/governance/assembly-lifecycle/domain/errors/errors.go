package errors

import "errors"

var (
	ErrInvalidAssemblyInput = errors.New("invalid assembly input")
	ErrAssemblyNotFound     = errors.New("assembly not found")
	ErrInvalidTransition    = errors.New("assembly transition not allowed from current status")
	ErrTerminalState        = errors.New("assembly is in a terminal state")
	ErrProxyRequired        = errors.New("represented attendance requires a proxy holder")
	ErrQuorumNotReached     = errors.New("quorum has not been reached")
	ErrAgendaNotReady       = errors.New("agenda items requiring a vote lack a closed voting session")
	ErrNotOnAssemblyDay     = errors.New("operation is only allowed on the assembly day")
	ErrUnknownProperty      = errors.New("property is not part of the quorum registration")
)
