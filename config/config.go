// Package config resolves the settings of a single upload run.
//
// Settings come from four layers, later layers winning:
//
//  1. built-in defaults (Default)
//  2. an optional CUE file, either given explicitly or found in the XDG config
//     directories as gofile-upload/config.cue
//  3. GOFILE_* environment variables
//  4. command line flags, applied by the caller
//
// # Basic Usage
//
//	cfg, err := config.Load(ctx, config.LoadOptions{Path: "upload.cue"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// A config file looks like:
//
//	file:     "/workspace/naxobrowser.apk"
//	token:    "..."
//	folderId: "847f384f-..."
//	timeout:  "5m"
//	headers: "Accept-Language": "en-US"
//
// The token and folder identifier are opaque and never validated.
package config

import (
	"log/slog"
	"time"

	"github.com/input-output-hk/gofile-uploader/gofile"
)

// Config holds everything needed for one upload.
type Config struct {
	// FilePath is the local file to upload.
	FilePath string

	// FileName overrides the name reported to the server.
	FileName string

	// Token is the account token.
	Token string

	// FolderID is the destination folder identifier.
	FolderID string

	// Endpoint is the upload URL.
	Endpoint string

	// ContentType is the MIME type of the file part.
	ContentType string

	// DetectContentType sniffs the file instead of using ContentType.
	DetectContentType bool

	// Timeout bounds the request. Zero means no timeout.
	Timeout time.Duration

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// Headers are merged over the default browser header set.
	Headers map[string]string

	// Source records the config file that was applied, if any.
	Source string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Endpoint:    gofile.DefaultEndpoint,
		ContentType: gofile.ContentTypeAPK,
		LogLevel:    "info",
		Headers:     map[string]string{},
	}
}

// SlogLevel converts LogLevel to a slog.Level. Unknown values map to Info;
// Validate rejects them beforehand.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// UploaderOptions translates the configuration into uploader options.
func (c *Config) UploaderOptions() []gofile.Option {
	return []gofile.Option{
		gofile.WithEndpoint(c.Endpoint),
		gofile.WithContentType(c.ContentType),
		gofile.WithContentTypeDetection(c.DetectContentType),
		gofile.WithTimeout(c.Timeout),
		gofile.WithHeaders(c.Headers),
	}
}

// UploadRequest builds the request for this run.
func (c *Config) UploadRequest() gofile.UploadRequest {
	return gofile.UploadRequest{
		FilePath: c.FilePath,
		FileName: c.FileName,
		Token:    c.Token,
		FolderID: c.FolderID,
	}
}
