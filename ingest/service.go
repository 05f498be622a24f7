// Package ingest runs the upload flow of a file: store the bytes, build the
// File record and, for images, annotate it with an AI description and tags.
//
// Storage failures abort the operation. AI failures never do: the record is
// returned un-annotated with status failed.
package ingest

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/danyloborovskyi/caption-studio-back-sub003/filerecord"
	"github.com/danyloborovskyi/caption-studio-back-sub003/filestore"
	"github.com/danyloborovskyi/caption-studio-back-sub003/logger"
	"github.com/danyloborovskyi/caption-studio-back-sub003/meta"
	"github.com/danyloborovskyi/caption-studio-back-sub003/val"
	"github.com/danyloborovskyi/caption-studio-back-sub003/visionai"
)

// Service is the upload pipeline.
type Service struct {
	cfg   Config
	store filestore.FileStore
	ai    visionai.Service
	log   logger.Logger

	now   func() time.Time
	newID func() string
}

// New creates a Service. ai may be nil, which disables annotation.
func New(cfg Config, store filestore.FileStore, ai visionai.Service, log logger.Logger) (*Service, error) {
	err := defaults.Set(&cfg)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	err = val.ValidateSchema(cfg)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return &Service{
		cfg:   cfg,
		store: store,
		ai:    ai,
		log:   log.Named("ingest"),
		now:   time.Now,
		newID: uuid.NewString,
	}, nil
}

// Upload stores in.Data and returns the resulting File record.
func (s *Service) Upload(ctx context.Context, in Input) (*Result, error) {
	err := val.ValidateSchema(in)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	size := int64(len(in.Data))
	if size > s.cfg.MaxFileSize {
		return nil, errx.New(
			"file is too large",
			errx.WithCode(filestore.CodeFileTooLarge),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"size": size, "max_size": s.cfg.MaxFileSize}),
		)
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = filestore.DetectContentType(in.Filename, in.Data)
	}
	if len(s.cfg.AllowedContentTypes) > 0 && !slices.Contains(s.cfg.AllowedContentTypes, contentType) {
		return nil, errx.New(
			"content type is not allowed",
			errx.WithCode(filestore.CodeUnsupportedContentType),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"content_type": contentType}),
		)
	}

	now := s.now()
	objectPath := path.Join(s.cfg.PathPrefix, in.UserID, s.objectName(in.Filename, now))

	ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{
		meta.RequestUserID: in.UserID,
		meta.FileID:        in.ID,
		meta.FilePath:      objectPath,
	})
	log := s.log.WithContext(ctx)

	stored, err := s.store.UploadFile(ctx, in.Data, objectPath, filestore.UploadOptions{
		ContentType:  contentType,
		CacheControl: s.cfg.CacheControl,
	})
	if err != nil {
		return nil, errx.Wrap(err)
	}
	log.Infof("stored %d bytes as %s", size, contentType)

	res := &Result{
		File: filerecord.New(map[string]any{
			"id":         in.ID,
			"filename":   in.Filename,
			"file_path":  stored.Path,
			"file_size":  size,
			"mime_type":  contentType,
			"public_url": stored.PublicURL,
			"user_id":    in.UserID,
			"status":     filerecord.StatusUploaded,
			"created_at": now,
			"updated_at": now,
		}),
	}

	if !res.File.IsImage() {
		return res, nil
	}

	if s.cfg.Thumbnail.Enabled {
		res.Thumbnail = s.storeThumbnail(ctx, in.Data, stored.Path)
	}

	if s.ai != nil && !s.cfg.SkipAnalysis {
		style := s.cfg.TagStyle
		if in.TagStyle != "" {
			style = in.TagStyle
		}
		file, analysis := s.annotate(ctx, res.File, visionai.ParseTagStyle(style))
		res.File = file
		res.Analysis = &analysis
	}

	return res, nil
}

// Annotate runs the AI step for an already stored image.
// An unsuccessful analysis is not an error: the returned record has status failed.
func (s *Service) Annotate(
	ctx context.Context,
	file *filerecord.File,
	style visionai.TagStyle,
) (*filerecord.File, visionai.Analysis, error) {
	switch {
	case s.ai == nil:
		return nil, visionai.Analysis{}, errx.New(
			"image analysis is not configured",
			errx.WithCode(CodeAnalysisOff),
			errx.WithType(errx.T_Validation),
		)
	case !file.IsImage():
		return nil, visionai.Analysis{}, errx.New(
			"file is not an image",
			errx.WithCode(CodeNotAnImage),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(errx.D{"mime_type": lo.FromPtr(file.MimeType)}),
		)
	case lo.FromPtr(file.PublicURL) == "":
		return nil, visionai.Analysis{}, errx.New(
			"file has no public URL",
			errx.WithCode(CodeMissingURL),
			errx.WithType(errx.T_Validation),
		)
	}

	ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{
		meta.RequestUserID: lo.FromPtr(file.UserID),
		meta.FileID:        file.ID,
		meta.FilePath:      file.FilePath,
	})

	annotated, analysis := s.annotate(ctx, file, visionai.ParseTagStyle(string(style)))
	return annotated, analysis, nil
}

func (s *Service) annotate(
	ctx context.Context,
	file *filerecord.File,
	style visionai.TagStyle,
) (*filerecord.File, visionai.Analysis) {
	log := s.log.WithContext(ctx)

	analysis := s.ai.AnalyzeImage(ctx, lo.FromPtr(file.PublicURL), style)
	if !analysis.Success {
		log.Warnf("image analysis failed: %s", analysis.Error)
		return file.WithStatus(filerecord.StatusFailed), analysis
	}

	log.Debugf("image annotated with %d %s tags", len(analysis.Tags), analysis.TagStyle)
	return file.
		WithAnalysis(lo.FromPtr(analysis.Description), analysis.Tags).
		WithStatus(filerecord.StatusCompleted), analysis
}

// Delete removes the stored object of file and its thumbnail.
func (s *Service) Delete(ctx context.Context, file *filerecord.File) (bool, error) {
	paths, err := s.objectPaths(file)
	if err != nil {
		return false, err
	}

	var ok bool
	if len(paths) == 1 {
		ok, err = s.store.DeleteFile(ctx, paths[0])
	} else {
		ok, err = s.store.DeleteFiles(ctx, paths)
	}
	if err != nil {
		return false, errx.Wrap(err)
	}
	return ok, nil
}

// DeleteMany removes the objects of all files with one batch request.
// A failure is reported for the whole batch; some objects may still be gone.
func (s *Service) DeleteMany(ctx context.Context, files []*filerecord.File) (bool, error) {
	var paths []string
	for _, f := range files {
		p, err := s.objectPaths(f)
		if err != nil {
			return false, err
		}
		paths = append(paths, p...)
	}

	ok, err := s.store.DeleteFiles(ctx, paths)
	if err != nil {
		s.log.WithContext(ctx).Warnx(err)
		return false, errx.Wrap(err)
	}
	return ok, nil
}

// Exists reports whether the object of file is present in storage.
func (s *Service) Exists(ctx context.Context, file *filerecord.File) bool {
	if file.FilePath == "" {
		return false
	}
	return s.store.FileExists(ctx, file.FilePath)
}

func (s *Service) objectPaths(file *filerecord.File) ([]string, error) {
	if file == nil || file.FilePath == "" {
		return nil, errx.New(
			"file has no storage path",
			errx.WithCode(CodeMissingFilePath),
			errx.WithType(errx.T_Validation),
		)
	}

	paths := []string{file.FilePath}
	if s.cfg.Thumbnail.Enabled && file.IsImage() {
		paths = append(paths, thumbnailPath(file.FilePath, s.cfg.Thumbnail.Suffix))
	}
	return paths, nil
}

// objectName builds a collision-free object name: <base>_<uuid>_<date><ext>.
func (s *Service) objectName(filename string, now time.Time) string {
	filename = filepath.Base(filename)
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.Join(strings.Fields(strings.TrimSuffix(filename, filepath.Ext(filename))), "-")
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s_%s_%s%s", base, s.newID(), now.UTC().Format(time.DateOnly), ext)
}
