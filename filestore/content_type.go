package filestore

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Content types the upload flow cares about.
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeGIF  = "image/gif"
	ContentTypeWebP = "image/webp"
	ContentTypeBMP  = "image/bmp"
	ContentTypeTIFF = "image/tiff"

	ContentTypePDF  = "application/pdf"
	ContentTypeText = "text/plain"
	ContentTypeCSV  = "text/csv"
	ContentTypeJSON = "application/json"

	ContentTypeOctetStream = "application/octet-stream"
)

//nolint:gochecknoglobals // static lookup table
var contentTypeByExt = map[string]string{
	".jpg":  ContentTypeJPEG,
	".jpeg": ContentTypeJPEG,
	".png":  ContentTypePNG,
	".gif":  ContentTypeGIF,
	".webp": ContentTypeWebP,
	".bmp":  ContentTypeBMP,
	".tif":  ContentTypeTIFF,
	".tiff": ContentTypeTIFF,
	".pdf":  ContentTypePDF,
	".txt":  ContentTypeText,
	".csv":  ContentTypeCSV,
	".json": ContentTypeJSON,
}

// DetectContentType sniffs the content type of data.
// When the content is not recognized the extension of filename decides,
// and application/octet-stream is the last resort.
// Parameters such as "; charset=utf-8" are stripped.
func DetectContentType(filename string, data []byte) string {
	if len(data) > 0 {
		if mt := mimetype.Detect(data); mt != nil && !mt.Is(ContentTypeOctetStream) {
			return baseType(mt.String())
		}
	}

	if ct, ok := contentTypeByExt[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}

	return ContentTypeOctetStream
}

func baseType(ct string) string {
	base, _, _ := strings.Cut(ct, ";")
	return strings.TrimSpace(base)
}
