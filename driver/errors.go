package driver

import "errors"

// The error taxonomy surfaced to callers. Underlying transport or rpc errors
// are wrapped, never swallowed; match with errors.Is.
var (
	// ErrConnection covers every way an open can fail: bad credentials,
	// unresolvable host, refused or closed connection.
	ErrConnection = errors.New("connection error")
	// ErrSessionLocked is returned when the configuration datastore lock
	// cannot be acquired or released.
	ErrSessionLocked = errors.New("session locked")
	// ErrMergeConfig / ErrReplaceConfig disambiguate an edit-config failure
	// by the operation that was requested.
	ErrMergeConfig   = errors.New("merge config error")
	ErrReplaceConfig = errors.New("replace config error")
	ErrCommit        = errors.New("commit error")
	ErrDiscard       = errors.New("discard error")
	// ErrOperationFailed wraps transport level failures of the read rpcs.
	ErrOperationFailed = errors.New("operation failed")
)
