package server

import (
	"context"
	"errors"
	"strconv"

	"github.com/pixperk/cohere/pkg/types"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// converts domain errors to gRPC status errors
// every domain error carries an ErrorInfo detail; pkg/client maps it back by
// reason, never by message text
func toGRPCError(err error) error {
	if err == nil {
		return nil
	}

	var oos *types.OutOfSequenceError
	switch {
	case errors.As(err, &oos):
		return withInfo(codes.FailedPrecondition, err.Error(), types.ReasonOutOfSequence, map[string]string{
			"node":     string(oos.Node),
			"got":      strconv.FormatUint(oos.Got, 10),
			"expected": strconv.FormatUint(oos.Expected, 10),
		})

	case errors.Is(err, types.ErrObjectNotFound):
		return withInfo(codes.NotFound, err.Error(), types.ReasonObjectNotFound, nil)

	case errors.Is(err, types.ErrNameAlreadyBound):
		return withInfo(codes.AlreadyExists, err.Error(), types.ReasonNameBound, nil)

	case errors.Is(err, types.ErrBatchRejected):
		return withInfo(codes.Aborted, err.Error(), types.ReasonBatchRejected, nil)

	case errors.Is(err, types.ErrNoSession):
		return withInfo(codes.Unauthenticated, err.Error(), types.ReasonNoSession, nil)

	case errors.Is(err, types.ErrInvalidMode):
		return withInfo(codes.InvalidArgument, err.Error(), types.ReasonInvalidMode, nil)

	case errors.Is(err, types.ErrSessionClosed):
		return withInfo(codes.Unavailable, err.Error(), types.ReasonSessionClosed, nil)

	case errors.Is(err, types.ErrStoreUnavailable):
		return withInfo(codes.Unavailable, err.Error(), types.ReasonStoreUnavailable, nil)

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()

	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func withInfo(code codes.Code, msg, reason string, metadata map[string]string) error {
	st := status.New(code, msg)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   reason,
		Domain:   types.ErrorDomain,
		Metadata: metadata,
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

// returned when the server lost raft leadership, which only happens while shutting down
func notLeaderError() error {
	return withInfo(codes.Unavailable, types.ErrStoreUnavailable.Error()+": commit log not ready", types.ReasonStoreUnavailable, nil)
}
