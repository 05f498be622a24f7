package filestore

// Error codes for filestore operations.
const (
	// CodeStorageError is returned when the storage backend rejects an operation.
	// The error message is the backend's own message.
	CodeStorageError = "STORAGE_ERROR"

	// CodeUnsupportedContentType is returned when the file's content type is not accepted.
	CodeUnsupportedContentType = "UNSUPPORTED_CONTENT_TYPE"

	// CodeFileTooLarge is returned when the file exceeds the maximum allowed size.
	CodeFileTooLarge = "FILE_TOO_LARGE"
)
