// Package filerecord defines the File record describing one uploaded object.
//
// A File is built once from a loosely-typed snapshot (request payload, database
// row, message body) and never changes afterwards. Modifications are expressed
// as copies via WithAnalysis and WithStatus.
package filerecord

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

const bytesPerMB = 1024 * 1024

// File is a normalized record of one uploaded object.
type File struct {
	ID          string
	Filename    string
	FilePath    string
	FileSize    *int64
	MimeType    *string
	PublicURL   *string
	UserID      *string
	Status      Status
	Description *string
	Tags        []string
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}

// New builds a File from raw input keyed in snake_case or camelCase.
// When both spellings carry a value the snake_case one wins.
// Values that cannot be coerced are treated as absent. New never fails.
func New(raw map[string]any) *File {
	r := rawRecord(raw)

	f := &File{
		ID:          r.str("id", "id"),
		Filename:    r.str("filename", "fileName"),
		FilePath:    r.str("file_path", "filePath"),
		FileSize:    r.size("file_size", "fileSize"),
		MimeType:    r.optStr("mime_type", "mimeType"),
		PublicURL:   r.optStr("public_url", "publicUrl"),
		UserID:      r.optStr("user_id", "userId"),
		Status:      ParseStatus(r.str("status", "status")),
		Description: r.optStr("description", "description"),
		Tags:        r.tags("tags", "tags"),
		CreatedAt:   r.time("created_at", "createdAt"),
		UpdatedAt:   r.time("updated_at", "updatedAt"),
	}

	return f
}

// IsImage reports whether the MIME type is an image type.
func (f *File) IsImage() bool {
	return f.MimeType != nil && strings.HasPrefix(*f.MimeType, "image/")
}

// HasAIAnalysis reports whether a description or at least one tag is present.
func (f *File) HasAIAnalysis() bool {
	return (f.Description != nil && *f.Description != "") || len(f.Tags) > 0
}

// SizeMB returns the size in megabytes with two decimals, e.g. "3.00".
// The second result is false when the size is unknown.
func (f *File) SizeMB() (string, bool) {
	if f.FileSize == nil {
		return "", false
	}
	return fmt.Sprintf("%.2f", float64(*f.FileSize)/bytesPerMB), true
}

func (f *File) IsProcessing() bool { return f.Status == StatusProcessing }

func (f *File) IsCompleted() bool { return f.Status == StatusCompleted }

func (f *File) IsFailed() bool { return f.Status == StatusFailed }

// WithAnalysis returns a copy carrying the given description and tags.
// An empty description is stored as absent.
func (f *File) WithAnalysis(description string, tags []string) *File {
	c := f.clone()
	c.Description = nil
	if description != "" {
		c.Description = &description
	}
	c.Tags = make([]string, 0, len(tags))
	c.Tags = append(c.Tags, tags...)
	return c
}

// WithStatus returns a copy with the given status. Unknown statuses become StatusUploaded.
func (f *File) WithStatus(s Status) *File {
	c := f.clone()
	c.Status = ParseStatus(string(s))
	return c
}

func (f *File) clone() *File {
	c := *f
	c.Tags = slices.Clone(f.Tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return &c
}
