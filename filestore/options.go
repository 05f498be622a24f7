package filestore

import (
	"github.com/code19m/errx"
	"github.com/creasty/defaults"
)

// UploadOptions controls how an object is written.
type UploadOptions struct {
	// ContentType is stored as the object's Content-Type. Default is application/octet-stream.
	ContentType string `default:"application/octet-stream"`

	// CacheControl is stored as the object's Cache-Control. Default caches for one hour.
	CacheControl string `default:"max-age=3600"`

	// Upsert allows overwriting an existing object at the same path. Default is false.
	Upsert bool `default:"false"`
}

// WithDefaults returns a copy of o with empty fields set to their defaults.
func (o UploadOptions) WithDefaults() (UploadOptions, error) {
	if err := defaults.Set(&o); err != nil {
		return o, errx.Wrap(err)
	}
	return o, nil
}
