package types

import (
	"fmt"

	pb "github.com/pixperk/cohere/api/v1"
)

// identifier of a stored object, allocated by the store and never reused
type ObjectID uint64

// zero is never allocated
const InvalidObjectID ObjectID = 0

func (id ObjectID) String() string {
	return fmt.Sprintf("oid:%d", uint64(id))
}

// identity of an application node, stable across reconnects
type NodeID string

// access a node holds on an object at the server
type AccessMode uint8

const (
	ModeNone AccessMode = iota
	ModeRead
	ModeWrite
)

func (m AccessMode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// reports whether holding m is enough to perform an operation needing want
func (m AccessMode) Covers(want AccessMode) bool {
	return m >= want
}

func (m AccessMode) Valid() bool {
	return m <= ModeWrite
}

func (m AccessMode) ToProto() pb.AccessMode {
	return pb.AccessMode(m)
}

// unknown wire values map to an invalid mode and are rejected downstream
func ModeFromProto(m pb.AccessMode) AccessMode {
	if m < 0 || m > pb.AccessMode_ACCESS_MODE_WRITE {
		return AccessMode(255)
	}
	return AccessMode(m)
}

// canonical copy of an object as the store holds it
// Data is nil while a create is pending
type ObjectRecord struct {
	ID      ObjectID
	Data    []byte
	Name    string
	Pending bool
	Creator NodeID
}
