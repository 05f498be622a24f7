// Command capstudio uploads local files to object storage and annotates images
// with AI-generated descriptions and tags.
//
// Usage:
//
//	capstudio upload -user <id> [-style neutral|playful|seo] <file>...
//	capstudio delete <object-path>...
//
// Configuration is read from ./config/${ENVIRONMENT}.yaml.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/code19m/errx"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/danyloborovskyi/caption-studio-back-sub003/cfgloader"
	"github.com/danyloborovskyi/caption-studio-back-sub003/filerecord"
	"github.com/danyloborovskyi/caption-studio-back-sub003/ingest"
	"github.com/danyloborovskyi/caption-studio-back-sub003/logger"
	"github.com/danyloborovskyi/caption-studio-back-sub003/meta"
	"github.com/danyloborovskyi/caption-studio-back-sub003/visionai"
	"github.com/danyloborovskyi/caption-studio-back-sub003/visionai/openaiwr"
)

const (
	serviceName    = "capstudio"
	serviceVersion = "0.1.0"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg := cfgloader.MustLoad[Config]()
	logger.SetGlobal(cfg.Logger)
	defer func() { _ = logger.Sync() }()
	meta.SetServiceInfo(serviceName, serviceVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = meta.WithServiceInfo(ctx)

	svc, err := buildService(ctx, cfg)
	if err != nil {
		logger.Fatalx(err)
	}

	switch os.Args[1] {
	case "upload":
		err = runUpload(ctx, svc, os.Args[2:])
	case "delete":
		err = runDelete(ctx, svc, os.Args[2:])
	default:
		usage()
	}
	if err != nil {
		logger.Fatalx(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: capstudio upload -user <id> [-style neutral|playful|seo] <file>...")
	fmt.Fprintln(os.Stderr, "       capstudio delete <object-path>...")
	os.Exit(2)
}

func buildService(ctx context.Context, cfg Config) (*ingest.Service, error) {
	store, err := newFileStore(ctx, cfg.Storage)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	var ai visionai.Service
	if cfg.Vision != nil {
		ai, err = openaiwr.New(*cfg.Vision, logger.Global())
		if err != nil {
			return nil, errx.Wrap(err)
		}
	}

	return ingest.New(cfg.Ingest, store, ai, logger.Global())
}

func runUpload(ctx context.Context, svc *ingest.Service, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	userID := fs.String("user", "", "owning user id")
	style := fs.String("style", "", "tag style: neutral, playful or seo")
	_ = fs.Parse(args)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for _, name := range fs.Args() {
		data, err := os.ReadFile(name)
		if err != nil {
			return errx.Wrap(err, errx.WithDetails(errx.D{"file": name}))
		}

		fileCtx := meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{meta.TraceID: uuid.NewString()})
		res, err := svc.Upload(fileCtx, ingest.Input{
			Filename: filepath.Base(name),
			UserID:   *userID,
			Data:     data,
			TagStyle: *style,
		})
		if err != nil {
			return errx.Wrap(err)
		}

		err = enc.Encode(res.File.APIView())
		if err != nil {
			return errx.Wrap(err)
		}
	}
	return nil
}

func runDelete(ctx context.Context, svc *ingest.Service, paths []string) error {
	files := lo.Map(paths, func(p string, _ int) *filerecord.File {
		return filerecord.New(map[string]any{"file_path": p})
	})

	ok, err := svc.DeleteMany(ctx, files)
	if err != nil {
		return errx.Wrap(err)
	}
	logger.Infof("deleted %d objects: %t", len(files), ok)
	return nil
}
