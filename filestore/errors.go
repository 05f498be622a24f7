package filestore

import (
	"github.com/code19m/errx"
)

// Operation names recorded in storage error details.
const (
	OpUpload      = "upload"
	OpDelete      = "delete"
	OpDeleteBatch = "delete_batch"
)

// NewStorageError builds the error returned for any backend rejection.
// msg should be the backend's raw message.
func NewStorageError(op, msg string, t errx.Type, details errx.D) error {
	d := errx.D{"operation": op}
	for k, v := range details {
		d[k] = v
	}

	return errx.New(
		msg,
		errx.WithCode(CodeStorageError),
		errx.WithType(t),
		errx.WithDetails(d),
	)
}

// IsStorageError reports whether err was produced by a storage backend rejection.
func IsStorageError(err error) bool {
	return errx.IsCodeIn(err, CodeStorageError)
}
