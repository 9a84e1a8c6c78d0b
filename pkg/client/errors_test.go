package client

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/pixperk/cohere/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func detailed(t *testing.T, code codes.Code, msg, reason string, md map[string]string) error {
	t.Helper()
	st, err := status.New(code, msg).WithDetails(&errdetails.ErrorInfo{
		Reason:   reason,
		Domain:   types.ErrorDomain,
		Metadata: md,
	})
	require.NoError(t, err)
	return st.Err()
}

func TestFromGRPCErrorByReason(t *testing.T) {
	tests := []struct {
		reason string
		code   codes.Code
		want   error
	}{
		{types.ReasonObjectNotFound, codes.NotFound, types.ErrObjectNotFound},
		{types.ReasonNameBound, codes.AlreadyExists, types.ErrNameAlreadyBound},
		{types.ReasonBatchRejected, codes.Aborted, types.ErrBatchRejected},
		{types.ReasonNoSession, codes.Unauthenticated, types.ErrNoSession},
		{types.ReasonInvalidMode, codes.InvalidArgument, types.ErrInvalidMode},
		{types.ReasonSessionClosed, codes.Unavailable, types.ErrSessionClosed},
		{types.ReasonStoreUnavailable, codes.Unavailable, types.ErrStoreUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			// message text is irrelevant once a reason is attached
			err := fromGRPCError(detailed(t, tt.code, "anything", tt.reason, nil))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFromGRPCErrorOutOfSequence(t *testing.T) {
	err := fromGRPCError(detailed(t, codes.FailedPrecondition, "rewritten by a proxy",
		types.ReasonOutOfSequence, map[string]string{"node": "n1", "got": "7", "expected": "5"}))

	var oos *types.OutOfSequenceError
	require.True(t, errors.As(err, &oos))
	assert.Equal(t, types.NodeID("n1"), oos.Node)
	assert.Equal(t, uint64(7), oos.Got)
	assert.Equal(t, uint64(5), oos.Expected)

	// malformed metadata still surfaces as out of sequence
	err = fromGRPCError(detailed(t, codes.FailedPrecondition, "x", types.ReasonOutOfSequence, nil))
	assert.ErrorIs(t, err, types.ErrOutOfSequence)
	assert.False(t, errors.As(err, &oos))
}

func TestFromGRPCErrorWithoutDetails(t *testing.T) {
	assert.NoError(t, fromGRPCError(nil))
	assert.ErrorIs(t, fromGRPCError(status.Error(codes.Canceled, "x")), context.Canceled)
	assert.ErrorIs(t, fromGRPCError(status.Error(codes.DeadlineExceeded, "x")), context.DeadlineExceeded)

	// a transport drop mentioning a domain error's text is still a transport failure
	err := fromGRPCError(status.Error(codes.Unavailable, types.ErrSessionClosed.Error()))
	assert.ErrorIs(t, err, types.ErrTransportFailure)
	assert.NotErrorIs(t, err, types.ErrSessionClosed)
	assert.True(t, types.IsRetryable(err))

	assert.ErrorIs(t, fromGRPCError(fmt.Errorf("plain")), types.ErrTransportFailure)

	// foreign domains fall back to the status code
	st, err2 := status.New(codes.NotFound, "x").WithDetails(&errdetails.ErrorInfo{Reason: types.ReasonObjectNotFound, Domain: "other"})
	require.NoError(t, err2)
	assert.NotErrorIs(t, fromGRPCError(st.Err()), types.ErrObjectNotFound)
}
