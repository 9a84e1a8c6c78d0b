package cache

import (
	"github.com/pixperk/cohere/pkg/types"
)

// decides after each commit which mode the node keeps on an object it touched
// returning less than mode hands the rest back to the store once the batch is
// applied
type RetentionPolicy interface {
	Retain(oid types.ObjectID, mode types.AccessMode) types.AccessMode
}

// keeps every mode until the store asks for it back
type RetainUntilCallback struct{}

func (RetainUntilCallback) Retain(_ types.ObjectID, mode types.AccessMode) types.AccessMode {
	return mode
}

// releases everything a transaction touched
type ReleaseAfterCommit struct{}

func (ReleaseAfterCommit) Retain(types.ObjectID, types.AccessMode) types.AccessMode {
	return types.ModeNone
}

// keeps reads cached, gives WRITE back down to READ
type RetainReads struct{}

func (RetainReads) Retain(_ types.ObjectID, mode types.AccessMode) types.AccessMode {
	return min(mode, types.ModeRead)
}
