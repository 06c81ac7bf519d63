package gofile

import (
	"log/slog"
	"time"

	"github.com/imroc/req/v3"

	"github.com/input-output-hk/gofile-uploader/fs"
)

// uploaderOptions holds configuration options for the Uploader.
type uploaderOptions struct {
	logger      *slog.Logger
	endpoint    string
	headers     map[string]string
	filesystem  fs.Filesystem
	httpClient  *req.Client
	timeout     time.Duration
	contentType string
	detect      bool
}

// Option is a functional option for configuring the Uploader.
type Option func(*uploaderOptions)

// WithLogger configures the uploader with a logger.
// If logger is nil, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *uploaderOptions) {
		opts.logger = logger
	}
}

// WithEndpoint overrides the upload URL. Default is DefaultEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(opts *uploaderOptions) {
		opts.endpoint = endpoint
	}
}

// WithHeaders merges headers over the default browser header set.
// An empty value removes the header.
func WithHeaders(headers map[string]string) Option {
	return func(opts *uploaderOptions) {
		for k, v := range headers {
			opts.headers[k] = v
		}
	}
}

// WithFilesystem sets the filesystem the upload source is read from.
// Default is the native filesystem.
func WithFilesystem(filesystem fs.Filesystem) Option {
	return func(opts *uploaderOptions) {
		if filesystem != nil {
			opts.filesystem = filesystem
		}
	}
}

// WithHTTPClient sets the req client used for the POST. The client is used as
// is: its logger and timeout are left untouched, and WithTimeout adds a
// per-request deadline on top.
func WithHTTPClient(client *req.Client) Option {
	return func(opts *uploaderOptions) {
		if client != nil {
			opts.httpClient = client
		}
	}
}

// WithTimeout bounds the whole request. Zero, the default, means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *uploaderOptions) {
		if timeout >= 0 {
			opts.timeout = timeout
		}
	}
}

// WithContentType sets the MIME type attached to the file part.
// Default is ContentTypeAPK.
func WithContentType(contentType string) Option {
	return func(opts *uploaderOptions) {
		if contentType != "" {
			opts.contentType = contentType
		}
	}
}

// WithContentTypeDetection makes the uploader sniff the file content and use
// the detected MIME type instead of the configured one.
func WithContentTypeDetection(enabled bool) Option {
	return func(opts *uploaderOptions) {
		opts.detect = enabled
	}
}

// defaultOptions returns the default configuration options.
func defaultOptions() *uploaderOptions {
	return &uploaderOptions{
		logger:      nil,
		endpoint:    DefaultEndpoint,
		headers:     DefaultHeaders(),
		filesystem:  nil,
		httpClient:  nil,
		timeout:     0,
		contentType: ContentTypeAPK,
		detect:      false,
	}
}

// applyOptions applies the given options to the uploader options.
func applyOptions(opts *uploaderOptions, options []Option) {
	for _, option := range options {
		option(opts)
	}
}
