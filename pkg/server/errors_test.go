package server

import (
	"context"
	"fmt"
	"testing"

	"github.com/pixperk/cohere/pkg/store"
	"github.com/pixperk/cohere/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToGRPCError(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
	}{
		{types.ErrObjectNotFound, codes.NotFound},
		{fmt.Errorf("lookup: %w", types.ErrObjectNotFound), codes.NotFound},
		{types.ErrNameAlreadyBound, codes.AlreadyExists},
		{&store.BatchRejectedError{Seq: 3, Err: types.ErrObjectNotFound}, codes.Aborted},
		{types.ErrNoSession, codes.Unauthenticated},
		{types.ErrInvalidMode, codes.InvalidArgument},
		{types.ErrSessionClosed, codes.Unavailable},
		{types.ErrStoreUnavailable, codes.Unavailable},
		{context.Canceled, codes.Canceled},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{fmt.Errorf("boom"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.code, status.Code(toGRPCError(tt.err)))
		})
	}
	assert.NoError(t, toGRPCError(nil))
}

func TestOutOfSequenceCarriesExpected(t *testing.T) {
	err := toGRPCError(&types.OutOfSequenceError{Node: "n1", Got: 7, Expected: 5})
	st, _ := status.FromError(err)
	assert.Equal(t, codes.FailedPrecondition, st.Code())

	require.Len(t, st.Details(), 1)
	info, ok := st.Details()[0].(*errdetails.ErrorInfo)
	require.True(t, ok)
	assert.Equal(t, types.ErrorDomain, info.GetDomain())
	assert.Equal(t, types.ReasonOutOfSequence, info.GetReason())
	assert.Equal(t, map[string]string{"node": "n1", "got": "7", "expected": "5"}, info.GetMetadata())
}

func TestDomainErrorsCarryReason(t *testing.T) {
	tests := []struct {
		err    error
		reason string
	}{
		{types.ErrObjectNotFound, types.ReasonObjectNotFound},
		{types.ErrNameAlreadyBound, types.ReasonNameBound},
		{&store.BatchRejectedError{Seq: 3, Err: types.ErrObjectNotFound}, types.ReasonBatchRejected},
		{types.ErrNoSession, types.ReasonNoSession},
		{types.ErrInvalidMode, types.ReasonInvalidMode},
		{types.ErrSessionClosed, types.ReasonSessionClosed},
		{types.ErrStoreUnavailable, types.ReasonStoreUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			st, _ := status.FromError(toGRPCError(tt.err))
			require.NotEmpty(t, st.Details())
			info, ok := st.Details()[0].(*errdetails.ErrorInfo)
			require.True(t, ok)
			assert.Equal(t, tt.reason, info.GetReason())
		})
	}

	st, _ := status.FromError(notLeaderError())
	require.NotEmpty(t, st.Details())
	assert.Equal(t, types.ReasonStoreUnavailable, st.Details()[0].(*errdetails.ErrorInfo).GetReason())

	st, _ = status.FromError(toGRPCError(fmt.Errorf("boom")))
	assert.Empty(t, st.Details())
}
