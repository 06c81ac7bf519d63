// Command gofile-upload posts a single local file to the gofile upload API and
// prints the status code and response body.
//
// Usage:
//
//	gofile-upload [flags] [file]
//
// Settings are layered: defaults, then an optional CUE config file, then
// GOFILE_* environment variables, then flags.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/input-output-hk/gofile-uploader/config"
	"github.com/input-output-hk/gofile-uploader/errors"
	"github.com/input-output-hk/gofile-uploader/gofile"
	"github.com/input-output-hk/gofile-uploader/internal/report"
)

// Exit codes.
const (
	exitOK        = 0
	exitConfig    = 1
	exitFile      = 2
	exitTransport = 3
	exitOutput    = 4
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, config.LoadOptions{})
	stop()
	os.Exit(code)
}

type flags struct {
	config      string
	file        string
	fileName    string
	token       string
	folder      string
	endpoint    string
	contentType string
	detect      bool
	timeout     time.Duration
	logLevel    string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, loadOpts config.LoadOptions) int {
	set := flag.NewFlagSet("gofile-upload", flag.ContinueOnError)
	set.SetOutput(stderr)

	var f flags
	set.StringVar(&f.config, "config", "", "path to a CUE config file")
	set.StringVar(&f.file, "file", "", "file to upload")
	set.StringVar(&f.fileName, "name", "", "file name reported to the server (default: base name of the file)")
	set.StringVar(&f.token, "token", "", "account token (env "+config.EnvToken+")")
	set.StringVar(&f.folder, "folder", "", "destination folder id (env "+config.EnvFolderID+")")
	set.StringVar(&f.endpoint, "endpoint", "", "upload URL (default "+gofile.DefaultEndpoint+")")
	set.StringVar(&f.contentType, "content-type", "", "MIME type of the file part (default "+gofile.ContentTypeAPK+")")
	set.BoolVar(&f.detect, "detect-content-type", false, "detect the MIME type from the file content")
	set.DurationVar(&f.timeout, "timeout", 0, "request timeout, 0 for none")
	set.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	set.Usage = func() {
		fmt.Fprintln(set.Output(), "Usage: gofile-upload [flags] [file]")
		set.PrintDefaults()
	}

	if err := set.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitConfig
	}
	if set.NArg() > 1 {
		fmt.Fprintf(stderr, "error: expected at most one file, got %d\n", set.NArg())
		return exitConfig
	}

	if f.config != "" {
		loadOpts.Path = f.config
	}
	cfg, err := config.Load(ctx, loadOpts)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitConfig
	}
	applyFlags(cfg, set, &f)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitConfig
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	if cfg.Source != "" {
		logger.Debug("loaded configuration", "path", cfg.Source)
	}

	opts := append(cfg.UploaderOptions(), gofile.WithLogger(logger))
	if loadOpts.Filesystem != nil {
		opts = append(opts, gofile.WithFilesystem(loadOpts.Filesystem))
	}
	uploader, err := gofile.New(opts...)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitConfig
	}

	resp, err := uploader.Upload(ctx, cfg.UploadRequest())
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitCode(err)
	}

	if err := report.Print(stdout, resp); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitOutput
	}
	return exitOK
}

// applyFlags overrides cfg with the flags given on the command line.
// Unset flags leave the lower layers untouched.
func applyFlags(cfg *config.Config, set *flag.FlagSet, f *flags) {
	set.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "file":
			cfg.FilePath = f.file
		case "name":
			cfg.FileName = f.fileName
		case "token":
			cfg.Token = f.token
		case "folder":
			cfg.FolderID = f.folder
		case "endpoint":
			cfg.Endpoint = f.endpoint
		case "content-type":
			cfg.ContentType = f.contentType
		case "detect-content-type":
			cfg.DetectContentType = f.detect
		case "timeout":
			cfg.Timeout = f.timeout
		case "log-level":
			cfg.LogLevel = f.logLevel
		}
	})

	if set.NArg() == 1 {
		cfg.FilePath = set.Arg(0)
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, gofile.ErrFileAccess):
		return exitFile
	case errors.Is(err, gofile.ErrTransport):
		return exitTransport
	default:
		return exitConfig
	}
}
