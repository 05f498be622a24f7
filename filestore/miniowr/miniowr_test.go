package miniowr

import (
	"context"
	"errors"
	"io"
	"net/url"
	"testing"

	"github.com/code19m/errx"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danyloborovskyi/caption-studio-back-sub003/filestore"
)

type putCall struct {
	bucket string
	object string
	data   []byte
	opts   minio.PutObjectOptions
}

type fakeMinio struct {
	objects map[string][]byte

	putErr    error
	statErr   error
	removeErr error
	listErr   error
	batchErrs map[string]error

	puts       []putCall
	removed    []string
	listPrefix string
}

func newFakeMinio() *fakeMinio {
	return &fakeMinio{objects: map[string][]byte{}}
}

func (f *fakeMinio) PutObject(
	_ context.Context,
	bucket, object string,
	reader io.Reader,
	_ int64,
	opts minio.PutObjectOptions,
) (minio.UploadInfo, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.puts = append(f.puts, putCall{bucket: bucket, object: object, data: data, opts: opts})
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	f.objects[object] = data
	return minio.UploadInfo{Bucket: bucket, Key: object, Size: int64(len(data))}, nil
}

func (f *fakeMinio) StatObject(
	_ context.Context,
	_, object string,
	_ minio.StatObjectOptions,
) (minio.ObjectInfo, error) {
	if f.statErr != nil {
		return minio.ObjectInfo{}, f.statErr
	}
	if _, ok := f.objects[object]; !ok {
		return minio.ObjectInfo{}, minio.ErrorResponse{Code: codeNoSuchKey, Message: "The specified key does not exist."}
	}
	return minio.ObjectInfo{Key: object}, nil
}

func (f *fakeMinio) RemoveObject(_ context.Context, _, object string, _ minio.RemoveObjectOptions) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, object)
	delete(f.objects, object)
	return nil
}

func (f *fakeMinio) RemoveObjects(
	_ context.Context,
	_ string,
	objectsCh <-chan minio.ObjectInfo,
	_ minio.RemoveObjectsOptions,
) <-chan minio.RemoveObjectError {
	out := make(chan minio.RemoveObjectError, len(objectsCh))
	for obj := range objectsCh {
		if err, ok := f.batchErrs[obj.Key]; ok {
			out <- minio.RemoveObjectError{ObjectName: obj.Key, Err: err}
			continue
		}
		f.removed = append(f.removed, obj.Key)
		delete(f.objects, obj.Key)
	}
	close(out)
	return out
}

func (f *fakeMinio) ListObjects(_ context.Context, _ string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	f.listPrefix = opts.Prefix
	out := make(chan minio.ObjectInfo, len(f.objects)+1)
	if f.listErr != nil {
		out <- minio.ObjectInfo{Err: f.listErr}
		close(out)
		return out
	}
	for key := range f.objects {
		if len(key) >= len(opts.Prefix) && key[:len(opts.Prefix)] == opts.Prefix {
			out <- minio.ObjectInfo{Key: key}
		}
	}
	close(out)
	return out
}

func newTestClient(t *testing.T, fake *fakeMinio) *Client {
	t.Helper()
	base, err := url.Parse("http://localhost:9000/media")
	require.NoError(t, err)
	return newClient(fake, "media", base)
}

func TestUploadFile(t *testing.T) {
	fake := newFakeMinio()
	c := newTestClient(t, fake)
	data := make([]byte, 2097152)

	res, err := c.UploadFile(t.Context(), data, "uploads/u1/cat.png", filestore.UploadOptions{ContentType: "image/png"})

	require.NoError(t, err)
	assert.Equal(t, "uploads/u1/cat.png", res.Path)
	assert.Equal(t, "http://localhost:9000/media/uploads/u1/cat.png", res.PublicURL)
	require.Len(t, fake.puts, 1)
	assert.Equal(t, "media", fake.puts[0].bucket)
	assert.Equal(t, "image/png", fake.puts[0].opts.ContentType)
	assert.Equal(t, "max-age=3600", fake.puts[0].opts.CacheControl)
	assert.Len(t, fake.puts[0].data, 2097152)
}

func TestUploadFile_DefaultContentType(t *testing.T) {
	fake := newFakeMinio()
	c := newTestClient(t, fake)

	_, err := c.UploadFile(t.Context(), []byte("x"), "a.bin", filestore.UploadOptions{})

	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", fake.puts[0].opts.ContentType)
}

func TestUploadFile_ExistingObject(t *testing.T) {
	tests := []struct {
		name    string
		upsert  bool
		wantErr bool
	}{
		{name: "without upsert fails", upsert: false, wantErr: true},
		{name: "with upsert overwrites", upsert: true, wantErr: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fake := newFakeMinio()
			fake.objects["a.png"] = []byte("old")
			c := newTestClient(t, fake)

			_, err := c.UploadFile(t.Context(), []byte("new"), "a.png", filestore.UploadOptions{Upsert: tc.upsert})

			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, filestore.IsStorageError(err))
				assert.Equal(t, errx.T_Conflict, errx.AsErrorX(err).Type())
				assert.Equal(t, []byte("old"), fake.objects["a.png"])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []byte("new"), fake.objects["a.png"])
		})
	}
}

func TestUploadFile_BackendRejects(t *testing.T) {
	fake := newFakeMinio()
	fake.putErr = minio.ErrorResponse{Code: "QuotaExceeded", Message: "Storage quota exceeded"}
	c := newTestClient(t, fake)

	_, err := c.UploadFile(t.Context(), []byte("x"), "a.png", filestore.UploadOptions{})

	require.Error(t, err)
	assert.True(t, filestore.IsStorageError(err))
	assert.Contains(t, err.Error(), "Storage quota exceeded")
}

func TestUploadFile_StatFailurePropagates(t *testing.T) {
	fake := newFakeMinio()
	fake.statErr = minio.ErrorResponse{Code: codeAccessDenied, Message: "Access Denied."}
	c := newTestClient(t, fake)

	_, err := c.UploadFile(t.Context(), []byte("x"), "a.png", filestore.UploadOptions{})

	require.Error(t, err)
	assert.True(t, filestore.IsStorageError(err))
	assert.Empty(t, fake.puts)
}

func TestDeleteFile(t *testing.T) {
	fake := newFakeMinio()
	fake.objects["a.png"] = []byte("x")
	c := newTestClient(t, fake)

	ok, err := c.DeleteFile(t.Context(), "a.png")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"a.png"}, fake.removed)
}

func TestDeleteFile_BackendRejects(t *testing.T) {
	fake := newFakeMinio()
	fake.removeErr = errors.New("connection reset by peer")
	c := newTestClient(t, fake)

	ok, err := c.DeleteFile(t.Context(), "a.png")

	require.Error(t, err)
	assert.False(t, ok)
	assert.True(t, filestore.IsStorageError(err))
	assert.Contains(t, err.Error(), "connection reset by peer")
}

func TestDeleteFiles(t *testing.T) {
	fake := newFakeMinio()
	fake.objects["a.png"] = []byte("a")
	fake.objects["b.png"] = []byte("b")
	c := newTestClient(t, fake)

	ok, err := c.DeleteFiles(t.Context(), []string{"a.png", "b.png"})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, fake.objects)
}

func TestDeleteFiles_BatchFailure(t *testing.T) {
	fake := newFakeMinio()
	fake.batchErrs = map[string]error{
		"a.png": minio.ErrorResponse{Code: codeAccessDenied, Message: "Access Denied."},
		"b.png": minio.ErrorResponse{Code: codeAccessDenied, Message: "Access Denied."},
	}
	c := newTestClient(t, fake)

	ok, err := c.DeleteFiles(t.Context(), []string{"a.png", "b.png"})

	require.Error(t, err)
	assert.False(t, ok)
	assert.True(t, filestore.IsStorageError(err))
	details := errx.AsErrorX(err).Details()
	assert.Equal(t, []string{"a.png", "b.png"}, details["paths"])
	assert.Equal(t, filestore.OpDeleteBatch, details["operation"])
}

func TestDeleteFiles_Empty(t *testing.T) {
	c := newTestClient(t, newFakeMinio())

	ok, err := c.DeleteFiles(t.Context(), nil)

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGetPublicURL(t *testing.T) {
	c := newTestClient(t, newFakeMinio())

	assert.Equal(t, "http://localhost:9000/media/uploads/a%20b.png", c.GetPublicURL("uploads/a b.png"))
}

func TestPublicBaseURL(t *testing.T) {
	endpoint, err := url.Parse("https://s3.example.com")
	require.NoError(t, err)

	u, err := publicBaseURL(Config{Bucket: "media"}, endpoint)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.com/media", u.String())

	u, err = publicBaseURL(Config{Bucket: "media", PublicBaseURL: "https://cdn.example.com"}, endpoint)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com", u.String())
}

func TestFileExists(t *testing.T) {
	fake := newFakeMinio()
	fake.objects["uploads/u1/cat.png"] = []byte("x")
	fake.objects["uploads/u1/cat.png.bak"] = []byte("x")
	fake.objects["uploads/u1/dog.png"] = []byte("x")
	c := newTestClient(t, fake)

	assert.True(t, c.FileExists(t.Context(), "uploads/u1/cat.png"))
	assert.Equal(t, "uploads/u1/cat.png", fake.listPrefix)
	assert.False(t, c.FileExists(t.Context(), "uploads/u1/cat"))
	assert.False(t, c.FileExists(t.Context(), "uploads/u2/cat.png"))
	assert.False(t, c.FileExists(t.Context(), "uploads/u1/"))
}

func TestFileExists_ListingErrorIsFalse(t *testing.T) {
	fake := newFakeMinio()
	fake.objects["a.png"] = []byte("x")
	fake.listErr = errors.New("network unreachable")
	c := newTestClient(t, fake)

	assert.False(t, c.FileExists(t.Context(), "a.png"))
}
