package ingest

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/code19m/errx"
	"github.com/disintegration/imaging"

	"github.com/danyloborovskyi/caption-studio-back-sub003/filestore"
)

// thumbnailPath inserts suffix before the extension of p.
func thumbnailPath(p, suffix string) string {
	ext := filepath.Ext(p)
	return strings.TrimSuffix(p, ext) + suffix + ext
}

// storeThumbnail uploads a downscaled copy of an image next to the original.
// It is best-effort: failures are logged and yield nil.
func (s *Service) storeThumbnail(ctx context.Context, data []byte, originalPath string) *filestore.UploadResult {
	log := s.log.WithContext(ctx)
	thumbPath := thumbnailPath(originalPath, s.cfg.Thumbnail.Suffix)

	thumb, err := makeThumbnail(data, thumbPath, s.cfg.Thumbnail.Width)
	if err != nil {
		log.Warnx(err)
		return nil
	}

	res, err := s.store.UploadFile(ctx, thumb, thumbPath, filestore.UploadOptions{
		ContentType:  filestore.DetectContentType(thumbPath, thumb),
		CacheControl: s.cfg.CacheControl,
		Upsert:       true,
	})
	if err != nil {
		log.Warnx(err)
		return nil
	}
	return res
}

// makeThumbnail resizes the image to width pixels, never upscaling, and encodes
// it in the format implied by name (JPEG when unknown).
func makeThumbnail(data []byte, name string, width int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"thumbnail": name}))
	}

	if img.Bounds().Dx() > width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		format = imaging.JPEG
	}

	var buf bytes.Buffer
	err = imaging.Encode(&buf, img, format)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"thumbnail": name}))
	}
	return buf.Bytes(), nil
}
