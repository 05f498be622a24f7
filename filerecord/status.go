package filerecord

// Status is the processing state of an uploaded file.
type Status string

const (
	StatusUploaded   Status = "uploaded"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// ParseStatus maps a raw value to a Status.
// Empty and unknown values fall back to StatusUploaded.
func ParseStatus(v string) Status {
	switch s := Status(v); s {
	case StatusUploaded, StatusProcessing, StatusCompleted, StatusFailed:
		return s
	default:
		return StatusUploaded
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return ParseStatus(string(s)) == s
}

func (s Status) String() string {
	return string(s)
}
