package main

import (
	"context"

	"github.com/code19m/errx"

	"github.com/danyloborovskyi/caption-studio-back-sub003/filestore"
	"github.com/danyloborovskyi/caption-studio-back-sub003/filestore/miniowr"
	"github.com/danyloborovskyi/caption-studio-back-sub003/filestore/s3wr"
	"github.com/danyloborovskyi/caption-studio-back-sub003/ingest"
	"github.com/danyloborovskyi/caption-studio-back-sub003/logger"
	"github.com/danyloborovskyi/caption-studio-back-sub003/visionai/openaiwr"
)

const (
	providerMinio = "minio"
	providerS3    = "s3"
)

// Config is the configuration of the capstudio command.
type Config struct {
	Logger  logger.Config `yaml:"logger"`
	Storage StorageConfig `yaml:"storage"`

	// Vision enables image annotation when present.
	Vision *openaiwr.Config `yaml:"vision"`

	Ingest ingest.Config `yaml:"ingest"`
}

// StorageConfig selects and configures the storage backend.
type StorageConfig struct {
	Provider string          `yaml:"provider" default:"minio" validate:"oneof=minio s3"`
	Minio    *miniowr.Config `yaml:"minio" validate:"required_if=Provider minio"`
	S3       *s3wr.Config    `yaml:"s3" validate:"required_if=Provider s3"`
}

func newFileStore(ctx context.Context, cfg StorageConfig) (filestore.FileStore, error) {
	switch cfg.Provider {
	case providerS3:
		return s3wr.New(ctx, *cfg.S3)
	case providerMinio:
		return miniowr.New(*cfg.Minio)
	default:
		return nil, errx.New(
			"unknown storage provider",
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"provider": cfg.Provider}),
		)
	}
}
