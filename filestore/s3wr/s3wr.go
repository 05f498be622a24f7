// Package s3wr provides an Amazon S3 implementation of the filestore.FileStore interface.
package s3wr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/code19m/errx"
	"github.com/samber/lo"

	"github.com/danyloborovskyi/caption-studio-back-sub003/filestore"
)

const (
	codePreconditionFailed = "PreconditionFailed"
	codeNoSuchKey          = "NoSuchKey"
	codeAccessDenied       = "AccessDenied"
)

// s3API is the part of *s3.Client used by Client.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(
		ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options),
	) (*s3.DeleteObjectOutput, error)
	DeleteObjects(
		ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options),
	) (*s3.DeleteObjectsOutput, error)
	ListObjectsV2(
		ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options),
	) (*s3.ListObjectsV2Output, error)
}

// Client implements the filestore.FileStore interface using Amazon S3.
type Client struct {
	client     s3API
	bucket     string
	publicBase *url.URL
}

var _ filestore.FileStore = (*Client)(nil)

// New creates a new S3 filestore client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	loadOpts := []func(*awscfg.LoadOptions) error{awscfg.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	cl := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	base, err := publicBaseURL(cfg)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return newClient(cl, cfg.Bucket, base), nil
}

func newClient(api s3API, bucket string, publicBase *url.URL) *Client {
	return &Client{
		client:     api,
		bucket:     bucket,
		publicBase: publicBase,
	}
}

func publicBaseURL(cfg Config) (*url.URL, error) {
	raw := cfg.PublicBaseURL
	switch {
	case raw != "":
	case cfg.Endpoint != "" && cfg.UsePathStyle:
		raw = cfg.Endpoint + "/" + cfg.Bucket
	default:
		raw = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, errx.New(
			"invalid public base url",
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"public_base_url": raw, "error": err.Error()}),
		)
	}
	return u, nil
}

// UploadFile stores data at the specified path.
// Without Upsert the write is conditional on the key being absent.
func (c *Client) UploadFile(
	ctx context.Context,
	data []byte,
	path string,
	opts filestore.UploadOptions,
) (*filestore.UploadResult, error) {
	opts, err := opts.WithDefaults()
	if err != nil {
		return nil, errx.Wrap(err)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(path),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(opts.ContentType),
		CacheControl:  aws.String(opts.CacheControl),
	}
	if !opts.Upsert {
		input.IfNoneMatch = aws.String("*")
	}

	_, err = c.client.PutObject(ctx, input)
	if err != nil {
		return nil, wrapS3Error(filestore.OpUpload, err, errx.D{"path": path})
	}

	return &filestore.UploadResult{
		Path:      path,
		PublicURL: c.GetPublicURL(path),
	}, nil
}

// DeleteFile removes the object at the specified path.
func (c *Client) DeleteFile(ctx context.Context, path string) (bool, error) {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return false, wrapS3Error(filestore.OpDelete, err, errx.D{"path": path})
	}
	return true, nil
}

// DeleteFiles removes all objects at paths with one DeleteObjects request.
func (c *Client) DeleteFiles(ctx context.Context, paths []string) (bool, error) {
	if len(paths) == 0 {
		return true, nil
	}

	out, err := c.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(c.bucket),
		Delete: &types.Delete{
			Objects: lo.Map(paths, func(p string, _ int) types.ObjectIdentifier {
				return types.ObjectIdentifier{Key: aws.String(p)}
			}),
			Quiet: aws.Bool(true),
		},
	})
	if err != nil {
		return false, wrapS3Error(filestore.OpDeleteBatch, err, errx.D{"paths": paths})
	}

	if len(out.Errors) > 0 {
		failed := lo.Map(out.Errors, func(e types.Error, _ int) string { return aws.ToString(e.Key) })
		msg := aws.ToString(out.Errors[0].Message)
		if msg == "" {
			msg = "batch delete failed"
		}
		return false, filestore.NewStorageError(filestore.OpDeleteBatch, msg, errx.T_Internal, errx.D{
			"paths":        paths,
			"failed_paths": failed,
		})
	}
	return true, nil
}

// GetPublicURL returns the public URL of the object at the specified path.
func (c *Client) GetPublicURL(path string) string {
	return c.publicBase.JoinPath(path).String()
}

// FileExists lists the parent directory of p, narrowed to keys starting with the
// object name, and looks for the exact key. Listing errors yield false.
func (c *Client) FileExists(ctx context.Context, p string) bool {
	dir, name := path.Split(p)
	if name == "" {
		return false
	}

	out, err := c.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:    aws.String(c.bucket),
		Prefix:    aws.String(dir + name),
		Delimiter: aws.String("/"),
	})
	if err != nil {
		return false
	}

	return lo.ContainsBy(out.Contents, func(o types.Object) bool {
		return aws.ToString(o.Key) == dir+name
	})
}

// wrapS3Error converts S3 API errors to filestore storage errors.
func wrapS3Error(op string, err error, details errx.D) error {
	t := errx.T_Internal
	msg := err.Error()

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if m := apiErr.ErrorMessage(); m != "" {
			msg = m
		}
		switch apiErr.ErrorCode() {
		case codePreconditionFailed:
			t = errx.T_Conflict
		case codeNoSuchKey:
			t = errx.T_NotFound
		case codeAccessDenied:
			t = errx.T_Forbidden
		}
	}

	return filestore.NewStorageError(op, msg, t, details)
}
