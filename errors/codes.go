package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors
const (
	// ErrCodeInvalidConfig indicates a rejected pipeline or buffer configuration.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeInvalidInput indicates malformed input outside of configuration.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// State errors
const (
	// ErrCodeConflict indicates an operation that conflicts with the current state,
	// such as running an orchestrator twice.
	ErrCodeConflict ErrorCode = "CONFLICT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
