package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pixperk/cohere/pkg/types"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// maps gRPC status errors from the server back to domain errors
// the ErrorInfo reason decides; the status code is only a fallback for
// errors raised by gRPC itself
func fromGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%w: %v", types.ErrTransportFailure, err)
	}
	if info := errorInfo(st); info != nil {
		return fromErrorInfo(st, info)
	}

	switch st.Code() {
	case codes.Canceled:
		return context.Canceled
	case codes.DeadlineExceeded:
		return context.DeadlineExceeded
	case codes.Unavailable:
		return fmt.Errorf("%w: %s", types.ErrTransportFailure, st.Message())
	default:
		return fmt.Errorf("store error (%s): %s", st.Code(), st.Message())
	}
}

func errorInfo(st *status.Status) *errdetails.ErrorInfo {
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == types.ErrorDomain {
			return info
		}
	}
	return nil
}

func fromErrorInfo(st *status.Status, info *errdetails.ErrorInfo) error {
	msg := st.Message()
	switch info.GetReason() {
	case types.ReasonObjectNotFound:
		return types.ErrObjectNotFound
	case types.ReasonNameBound:
		return types.ErrNameAlreadyBound
	case types.ReasonOutOfSequence:
		md := info.GetMetadata()
		got, gerr := strconv.ParseUint(md["got"], 10, 64)
		expected, eerr := strconv.ParseUint(md["expected"], 10, 64)
		if gerr != nil || eerr != nil {
			return fmt.Errorf("%w: %s", types.ErrOutOfSequence, msg)
		}
		return &types.OutOfSequenceError{Node: types.NodeID(md["node"]), Got: got, Expected: expected}
	case types.ReasonBatchRejected:
		return fmt.Errorf("%w: %s", types.ErrBatchRejected, msg)
	case types.ReasonNoSession:
		return types.ErrNoSession
	case types.ReasonInvalidMode:
		return types.ErrInvalidMode
	case types.ReasonSessionClosed:
		return types.ErrSessionClosed
	case types.ReasonStoreUnavailable:
		return fmt.Errorf("%w: %s", types.ErrStoreUnavailable, msg)
	default:
		return fmt.Errorf("store error (%s, %s): %s", st.Code(), info.GetReason(), msg)
	}
}
