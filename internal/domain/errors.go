package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCircuitOpen is returned when the breaker for a subject/operation
	// pair is open and the call was rejected without being attempted
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrNFTNotFound is returned when an NFT row is not found
	ErrNFTNotFound = errors.New("nft not found")

	// ErrEventNotFound is returned when an event row is not found
	ErrEventNotFound = errors.New("event not found")

	// ErrAccountNotFound is returned when an account row is not found
	ErrAccountNotFound = errors.New("account not found")

	// ErrCheckInNotFound is returned when a check-in row is not found
	ErrCheckInNotFound = errors.New("check-in not found")

	// ErrNotRetryable is returned when retrying an NFT that is not in a
	// FAILED state
	ErrNotRetryable = errors.New("nft is not in a retryable state")
)

// ValidationError indicates malformed or unacceptable input. It is never
// retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// TransientError wraps an error that is expected to clear on its own, such
// as a network fault or an upstream rate limit. Transient errors are
// retried and counted by the circuit breaker.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient error in %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// NewTransientError wraps err as transient for the given operation
func NewTransientError(op string, err error) *TransientError {
	return &TransientError{Op: op, Err: err}
}

// ChainError wraps an error from the ledger. Retryable distinguishes
// congestion-class failures from terminal ones like an invalid recipient.
type ChainError struct {
	Op        string
	Err       error
	Retryable bool
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("chain error in %s: %v", e.Op, e.Err)
}

func (e *ChainError) Unwrap() error {
	return e.Err
}

// NewChainError wraps err as a chain error for the given operation
func NewChainError(op string, err error, retryable bool) *ChainError {
	return &ChainError{Op: op, Err: err, Retryable: retryable}
}

// IsRetryable reports whether err is worth attempting again. Typed errors
// answer for themselves; untyped errors fall back to message heuristics.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return false
	}
	var tErr *TransientError
	if errors.As(err, &tErr) {
		return true
	}
	var cErr *ChainError
	if errors.As(err, &cErr) {
		return cErr.Retryable
	}
	if errors.Is(err, ErrCircuitOpen) {
		return false
	}

	return classifyMessage(err.Error())
}

// terminalPatterns short-circuit classifyMessage: these failures will not
// clear no matter how often the call is repeated.
var terminalPatterns = []string{
	"insufficient balance",
	"insufficient funds",
	"invalid address",
	"invalid recipient",
	"already minted",
	"unauthorized",
	"forbidden",
	"invalid api key",
	"execution reverted",
}

var retryablePatterns = []string{
	"network",
	"timeout",
	"timed out",
	"connection refused",
	"connection reset",
	"rate limit",
	"too many requests",
	"nonce too low",
	"nonce too high",
	"replacement transaction underpriced",
	"temporarily unavailable",
	"service unavailable",
	"gateway",
	"econnreset",
	"eof",
}

func classifyMessage(msg string) bool {
	msg = strings.ToLower(msg)
	for _, p := range terminalPatterns {
		if strings.Contains(msg, p) {
			return false
		}
	}
	for _, p := range retryablePatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
