package ingest

// Config defines the behavior of the upload pipeline.
type Config struct {
	// PathPrefix is the first segment of every object path.
	PathPrefix string `yaml:"path_prefix" default:"uploads" validate:"excludesall=\\"`

	// MaxFileSize is the largest accepted upload in bytes. Default is 10 MiB.
	MaxFileSize int64 `yaml:"max_file_size" default:"10485760" validate:"gt=0"`

	// AllowedContentTypes restricts uploads to the listed MIME types. Empty accepts any type.
	AllowedContentTypes []string `yaml:"allowed_content_types"`

	// CacheControl is sent with every stored object.
	CacheControl string `yaml:"cache_control" default:"max-age=3600"`

	// SkipAnalysis disables the AI step of Upload.
	SkipAnalysis bool `yaml:"skip_analysis"`

	// TagStyle is used when an upload does not name one.
	TagStyle string `yaml:"tag_style" default:"neutral" validate:"oneof=neutral playful seo"`

	Thumbnail ThumbnailConfig `yaml:"thumbnail"`
}

// ThumbnailConfig controls the downscaled copy stored next to each uploaded image.
type ThumbnailConfig struct {
	Enabled bool `yaml:"enabled"`

	// Width of the thumbnail in pixels; the height keeps the aspect ratio.
	Width int `yaml:"width" default:"300" validate:"gt=0"`

	// Suffix is appended to the object name before the extension.
	Suffix string `yaml:"suffix" default:"_thumb" validate:"required,excludesall=/"`
}
