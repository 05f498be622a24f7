// Package miniowr provides a MinIO implementation of the filestore.FileStore interface.
// It works with any S3-compatible endpoint reachable through minio-go.
package miniowr

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"path"

	"github.com/code19m/errx"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/danyloborovskyi/caption-studio-back-sub003/filestore"
)

const (
	codeNoSuchKey    = "NoSuchKey"
	codeNotFound     = "NotFound"
	codeAccessDenied = "AccessDenied"

	msgAlreadyExists = "The resource already exists"
)

// objectAPI is the part of *minio.Client used by Client.
type objectAPI interface {
	PutObject(
		ctx context.Context,
		bucketName, objectName string,
		reader io.Reader,
		objectSize int64,
		opts minio.PutObjectOptions,
	) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	RemoveObjects(
		ctx context.Context,
		bucketName string,
		objectsCh <-chan minio.ObjectInfo,
		opts minio.RemoveObjectsOptions,
	) <-chan minio.RemoveObjectError
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

// Client implements the filestore.FileStore interface using MinIO.
type Client struct {
	client     objectAPI
	bucket     string
	publicBase *url.URL
}

var _ filestore.FileStore = (*Client)(nil)

// New creates a new MinIO filestore client.
// The bucket is expected to exist and to allow anonymous reads when public URLs are served directly.
func New(cfg Config) (*Client, error) {
	cl, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errx.Wrap(err)
	}

	base, err := publicBaseURL(cfg, cl.EndpointURL())
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return newClient(cl, cfg.Bucket, base), nil
}

func newClient(api objectAPI, bucket string, publicBase *url.URL) *Client {
	return &Client{
		client:     api,
		bucket:     bucket,
		publicBase: publicBase,
	}
}

func publicBaseURL(cfg Config, endpoint *url.URL) (*url.URL, error) {
	if cfg.PublicBaseURL != "" {
		u, err := url.Parse(cfg.PublicBaseURL)
		if err != nil {
			return nil, errx.New(
				"invalid public base url",
				errx.WithType(errx.T_Validation),
				errx.WithDetails(errx.D{"public_base_url": cfg.PublicBaseURL, "error": err.Error()}),
			)
		}
		return u, nil
	}
	return endpoint.JoinPath(cfg.Bucket), nil
}

// UploadFile stores data at the specified path.
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

	if !opts.Upsert {
		exists, statErr := c.objectExists(ctx, path)
		if statErr != nil {
			return nil, errx.Wrap(statErr)
		}
		if exists {
			return nil, filestore.NewStorageError(
				filestore.OpUpload, msgAlreadyExists, errx.T_Conflict, errx.D{"path": path},
			)
		}
	}

	_, err = c.client.PutObject(ctx, c.bucket, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  opts.ContentType,
		CacheControl: opts.CacheControl,
	})
	if err != nil {
		return nil, wrapMinioError(filestore.OpUpload, err, errx.D{"path": path})
	}

	return &filestore.UploadResult{
		Path:      path,
		PublicURL: c.GetPublicURL(path),
	}, nil
}

// DeleteFile removes the object at the specified path.
func (c *Client) DeleteFile(ctx context.Context, path string) (bool, error) {
	err := c.client.RemoveObject(ctx, c.bucket, path, minio.RemoveObjectOptions{})
	if err != nil {
		return false, wrapMinioError(filestore.OpDelete, err, errx.D{"path": path})
	}
	return true, nil
}

// DeleteFiles removes all objects at paths with a single multi-object delete.
func (c *Client) DeleteFiles(ctx context.Context, paths []string) (bool, error) {
	if len(paths) == 0 {
		return true, nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(paths))
	for _, p := range paths {
		objectsCh <- minio.ObjectInfo{Key: p}
	}
	close(objectsCh)

	var (
		failed []string
		msg    string
	)
	for rmErr := range c.client.RemoveObjects(ctx, c.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		failed = append(failed, rmErr.ObjectName)
		if msg == "" && rmErr.Err != nil {
			msg = backendMessage(rmErr.Err)
		}
	}

	if len(failed) > 0 {
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

// FileExists lists the parent directory of p, narrowed to entries starting with
// the object name, and looks for the exact key.
// Any listing error yields false: callers get a possible false negative instead of an error.
func (c *Client) FileExists(ctx context.Context, p string) bool {
	dir, name := path.Split(p)
	if name == "" {
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range c.client.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{Prefix: dir + name}) {
		if obj.Err != nil {
			return false
		}
		if obj.Key == dir+name {
			return true
		}
	}
	return false
}

func (c *Client) objectExists(ctx context.Context, path string) (bool, error) {
	_, err := c.client.StatObject(ctx, c.bucket, path, minio.StatObjectOptions{})
	if err != nil {
		code := minio.ToErrorResponse(err).Code
		if code == codeNoSuchKey || code == codeNotFound {
			return false, nil
		}
		return false, wrapMinioError(filestore.OpUpload, err, errx.D{"path": path})
	}
	return true, nil
}

// wrapMinioError converts MinIO errors to filestore storage errors.
func wrapMinioError(op string, err error, details errx.D) error {
	t := errx.T_Internal
	switch minio.ToErrorResponse(err).Code {
	case codeNoSuchKey, codeNotFound:
		t = errx.T_NotFound
	case codeAccessDenied:
		t = errx.T_Forbidden
	}
	return filestore.NewStorageError(op, backendMessage(err), t, details)
}

func backendMessage(err error) string {
	if msg := minio.ToErrorResponse(err).Message; msg != "" {
		return msg
	}
	return err.Error()
}
