// Package filestore provides an abstraction for object storage operations.
//
// It defines a FileStore interface implemented by the cloud storage backends
// in the sub-packages (miniowr for MinIO and other S3-compatible services,
// s3wr for Amazon S3). The interface is meant to be injected into the
// components that persist uploaded bytes.
package filestore

import (
	"context"
)

// FileStore defines the interface for object storage operations.
// Implementations perform no caching and no retries: a backend failure
// surfaces immediately as a storage error.
type FileStore interface {
	// UploadFile stores data at path and returns the stored path and its public URL.
	// With opts.Upsert unset an existing object at path is not overwritten
	// and the call fails with a storage error.
	UploadFile(ctx context.Context, data []byte, path string, opts UploadOptions) (*UploadResult, error)

	// DeleteFile removes the object at path. It returns true on success.
	// Deleting is not special-cased for missing objects: whatever the backend
	// reports is returned.
	DeleteFile(ctx context.Context, path string) (bool, error)

	// DeleteFiles removes all objects at paths in one backend request.
	// Any failure is reported as one storage error covering the whole batch.
	// The batch is not atomic: some objects may be gone even when an error is returned.
	DeleteFiles(ctx context.Context, paths []string) (bool, error)

	// GetPublicURL derives the public URL of path. It does not check that the object exists.
	GetPublicURL(path string) string

	// FileExists lists the parent directory of path and reports whether an entry
	// with the exact same name is present. Listing errors are reported as false.
	FileExists(ctx context.Context, path string) bool
}

// UploadResult describes a stored object.
type UploadResult struct {
	Path      string `json:"path"`
	PublicURL string `json:"publicUrl"`
}
