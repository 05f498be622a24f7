package ingest

import (
	"github.com/danyloborovskyi/caption-studio-back-sub003/filerecord"
	"github.com/danyloborovskyi/caption-studio-back-sub003/filestore"
	"github.com/danyloborovskyi/caption-studio-back-sub003/visionai"
)

// Input is one file handed to Upload.
type Input struct {
	// ID is the record identifier assigned by the caller, if any.
	ID string `json:"id"`

	Filename string `json:"filename" validate:"required,max=255,excludesall=/\\"`
	UserID   string `json:"userId" validate:"required,max=128,excludesall=/\\"`
	Data     []byte `json:"-" validate:"min=1"`

	// ContentType is detected from Data and Filename when empty.
	ContentType string `json:"contentType"`

	// TagStyle overrides Config.TagStyle. Unknown values mean neutral.
	TagStyle string `json:"tagStyle"`
}

// Result is the outcome of Upload.
type Result struct {
	File *filerecord.File

	// Thumbnail is set when a thumbnail was stored.
	Thumbnail *filestore.UploadResult

	// Analysis is set when the AI step ran, successful or not.
	Analysis *visionai.Analysis
}
