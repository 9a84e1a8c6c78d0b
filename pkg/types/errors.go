package types

import (
	"errors"
	"fmt"
)

var (
	// Object errors
	ErrObjectNotFound   = errors.New("object not found")
	ErrNameAlreadyBound = errors.New("name is already bound to another object")

	// Update queue errors
	ErrOutOfSequence    = errors.New("update batch out of sequence")
	ErrBatchRejected    = errors.New("update batch rejected")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrQueueClosed      = errors.New("update queue closed")

	// Session errors
	ErrNodeUnresponsive = errors.New("node did not answer callback in time")
	ErrSessionClosed    = errors.New("node session closed")
	ErrNoSession        = errors.New("node has no session")
	ErrTransportFailure = errors.New("transport failure")
	ErrNodeBusy         = errors.New("node has no capacity to handle callbacks")

	// Local transaction errors
	ErrInsufficientMode = errors.New("held access mode is insufficient for operation")
	ErrTxnDone          = errors.New("transaction already committed or aborted")
	ErrInvalidMode      = errors.New("invalid access mode")
)

// ErrorInfo domain and reasons attached to errors sent to nodes
const (
	ErrorDomain = "cohere.v1"

	ReasonObjectNotFound   = "OBJECT_NOT_FOUND"
	ReasonNameBound        = "NAME_ALREADY_BOUND"
	ReasonOutOfSequence    = "OUT_OF_SEQUENCE"
	ReasonBatchRejected    = "BATCH_REJECTED"
	ReasonNoSession        = "NO_SESSION"
	ReasonInvalidMode      = "INVALID_MODE"
	ReasonSessionClosed    = "SESSION_CLOSED"
	ReasonStoreUnavailable = "STORE_UNAVAILABLE"
)

// returned when a batch does not carry the next expected sequence number
type OutOfSequenceError struct {
	Node     NodeID
	Got      uint64
	Expected uint64
}

func (e *OutOfSequenceError) Error() string {
	return fmt.Sprintf("update batch out of sequence for node %s: got %d, expected %d", e.Node, e.Got, e.Expected)
}

func (e *OutOfSequenceError) Is(target error) bool {
	return target == ErrOutOfSequence
}

// reports whether a failed commit may succeed if the transaction is run again
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrStoreUnavailable),
		errors.Is(err, ErrSessionClosed),
		errors.Is(err, ErrNoSession),
		errors.Is(err, ErrNodeUnresponsive),
		errors.Is(err, ErrTransportFailure):
		return true
	default:
		return false
	}
}
