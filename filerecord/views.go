package filerecord

import (
	"slices"
	"time"
)

// APIView is the client-facing shape of a File: camelCase keys plus derived fields.
type APIView struct {
	ID          string     `json:"id"`
	Filename    string     `json:"filename"`
	FilePath    string     `json:"filePath"`
	FileSize    *int64     `json:"fileSize"`
	MimeType    *string    `json:"mimeType"`
	PublicURL   *string    `json:"publicUrl"`
	UserID      *string    `json:"userId"`
	Status      Status     `json:"status"`
	Description *string    `json:"description"`
	Tags        []string   `json:"tags"`
	CreatedAt   *time.Time `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`

	IsImage       bool    `json:"isImage"`
	HasAIAnalysis bool    `json:"hasAIAnalysis"`
	SizeMB        *string `json:"sizeMB"`
}

// PersistenceView is the row shape of a File: snake_case keys, stored attributes only.
type PersistenceView struct {
	ID          string     `json:"id"          db:"id"`
	Filename    string     `json:"filename"    db:"filename"`
	FilePath    string     `json:"file_path"   db:"file_path"`
	FileSize    *int64     `json:"file_size"   db:"file_size"`
	MimeType    *string    `json:"mime_type"   db:"mime_type"`
	PublicURL   *string    `json:"public_url"  db:"public_url"`
	UserID      *string    `json:"user_id"     db:"user_id"`
	Status      Status     `json:"status"      db:"status"`
	Description *string    `json:"description" db:"description"`
	Tags        []string   `json:"tags"        db:"tags"`
	CreatedAt   *time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"  db:"updated_at"`
}

// APIView renders f for API responses.
func (f *File) APIView() APIView {
	v := APIView{
		ID:            f.ID,
		Filename:      f.Filename,
		FilePath:      f.FilePath,
		FileSize:      f.FileSize,
		MimeType:      f.MimeType,
		PublicURL:     f.PublicURL,
		UserID:        f.UserID,
		Status:        f.Status,
		Description:   f.Description,
		Tags:          tagsOrEmpty(f.Tags),
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
		IsImage:       f.IsImage(),
		HasAIAnalysis: f.HasAIAnalysis(),
	}
	if mb, ok := f.SizeMB(); ok {
		v.SizeMB = &mb
	}
	return v
}

// PersistenceView renders f for storage.
func (f *File) PersistenceView() PersistenceView {
	return PersistenceView{
		ID:          f.ID,
		Filename:    f.Filename,
		FilePath:    f.FilePath,
		FileSize:    f.FileSize,
		MimeType:    f.MimeType,
		PublicURL:   f.PublicURL,
		UserID:      f.UserID,
		Status:      f.Status,
		Description: f.Description,
		Tags:        tagsOrEmpty(f.Tags),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// ToMap returns the persistence view as a snake_case map, suitable for New.
func (v PersistenceView) ToMap() map[string]any {
	return map[string]any{
		"id":          v.ID,
		"filename":    v.Filename,
		"file_path":   v.FilePath,
		"file_size":   v.FileSize,
		"mime_type":   v.MimeType,
		"public_url":  v.PublicURL,
		"user_id":     v.UserID,
		"status":      string(v.Status),
		"description": v.Description,
		"tags":        slices.Clone(v.Tags),
		"created_at":  v.CreatedAt,
		"updated_at":  v.UpdatedAt,
	}
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return slices.Clone(tags)
}
