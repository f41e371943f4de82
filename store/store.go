// Package store defines the collaborator contracts the codec talks to: a
// writer that persists ordered row sequences and a reader that returns them
// in original order, optionally chunked. Backends live in subpackages;
// failures they surface are wrapped with a code and propagated, never
// masked.
package store

import (
	"context"

	"github.com/rdftab/rdftab/codec"
	"github.com/rdftab/rdftab/pkg/errors"
)

// Shared error codes for storage backends.
var (
	StoreOpenFailed  = errors.MustNewCode("store.open_failed")
	StoreWriteFailed = errors.MustNewCode("store.write_failed")
	StoreReadFailed  = errors.MustNewCode("store.read_failed")
	StoreCloseFailed = errors.MustNewCode("store.close_failed")
)

// Writer persists rows in the order given. Write may be called multiple
// times; Close finalizes the file or transaction.
type Writer interface {
	Write(ctx context.Context, rows []codec.Row) error
	Close() error
}

// Reader streams persisted rows back in their original order. fn is called
// once per batch; returning an error stops the scan and propagates.
type Reader interface {
	Read(ctx context.Context, fn func(batch []codec.Row) error) error
	Close() error
}
