package s3wr

// Config defines the configuration options for the Amazon S3 client.
type Config struct {
	// Region is the AWS region of the bucket (e.g., "eu-central-1").
	Region string `yaml:"region" validate:"required"`

	// Bucket is the bucket all objects are stored in.
	Bucket string `yaml:"bucket" validate:"required"`

	// Endpoint overrides the S3 endpoint for S3-compatible services. Optional.
	Endpoint string `yaml:"endpoint" validate:"omitempty,url"`

	// AccessKey and SecretKey set static credentials.
	// When AccessKey is empty the default AWS credential chain is used.
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key" mask:"true"`

	// UsePathStyle addresses the bucket in the path instead of the host name.
	UsePathStyle bool `yaml:"use_path_style" default:"false"`

	// PublicBaseURL is the origin public URLs are built on.
	// When empty the virtual-hosted S3 URL of the bucket is used.
	PublicBaseURL string `yaml:"public_base_url" validate:"omitempty,url"`
}
