package types

import (
	"testing"

	pb "github.com/pixperk/cohere/api/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

func TestApplyBatchCmdRoundTrip(t *testing.T) {
	cmd := ApplyBatchCmd{Batch: &UpdateBatch{
		Node:    "node-1",
		Seq:     3,
		Writes:  map[ObjectID][]byte{2: []byte("b"), 1: []byte("a")},
		Deletes: []ObjectID{9},
	}}

	wrapper, err := cmd.ToProto()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), wrapper.Batch.Writes[0].ObjectId, "writes are ordered by id")

	back, err := FromProtoCommand(wrapper)
	require.NoError(t, err)
	got := back.(ApplyBatchCmd)
	assert.Equal(t, cmd.Batch, got.Batch)
}

func TestUnknownCommandType(t *testing.T) {
	wrapper, err := CreateObjectCmd{Node: "n", Name: "alice"}.ToProto()
	require.NoError(t, err)
	wrapper.Type = 99

	_, err = FromProtoCommand(wrapper)
	assert.Error(t, err)
}

func TestOutOfSequenceErrorMatchesSentinel(t *testing.T) {
	err := error(&OutOfSequenceError{Node: "n", Got: 7, Expected: 5})
	assert.ErrorIs(t, err, ErrOutOfSequence)
	assert.False(t, IsRetryable(err))
	assert.True(t, IsRetryable(ErrStoreUnavailable))
}

func TestBatchObjectsSortedAndUnique(t *testing.T) {
	b := &UpdateBatch{
		Writes:  map[ObjectID][]byte{5: nil, 2: nil},
		Deletes: []ObjectID{3, 2},
	}
	assert.Equal(t, []ObjectID{2, 3, 5}, b.Objects())
}

// TestCommandSurvivesLogEncoding tests the envelope as it is written to the commit log
func TestCommandSurvivesLogEncoding(t *testing.T) {
	cmd := ApplyBatchCmd{Batch: &UpdateBatch{
		Node:    "node-a",
		Seq:     5,
		Writes:  map[ObjectID][]byte{1: []byte("alice"), 2: {}},
		Deletes: []ObjectID{3, 4},
	}}
	wrapper, err := cmd.ToProto()
	require.NoError(t, err)

	data, err := proto.Marshal(wrapper)
	require.NoError(t, err)

	var decoded pb.Command
	require.NoError(t, proto.Unmarshal(data, &decoded))
	assert.Equal(t, pb.CommandType_COMMAND_TYPE_APPLY_BATCH, decoded.GetType())

	back, err := FromProtoCommand(&decoded)
	require.NoError(t, err)
	got := back.(ApplyBatchCmd).Batch
	assert.Equal(t, []byte("alice"), got.Writes[1])
	require.NotNil(t, got.Writes[2], "empty write must stay a write")
	assert.Empty(t, got.Writes[2])
	assert.Equal(t, []ObjectID{3, 4}, got.Deletes)
}

func TestModeFromProto(t *testing.T) {
	assert.Equal(t, ModeRead, ModeFromProto(pb.AccessMode_ACCESS_MODE_READ))
	assert.Equal(t, pb.AccessMode_ACCESS_MODE_WRITE, ModeWrite.ToProto())
	assert.False(t, ModeFromProto(pb.AccessMode(7)).Valid())
}
