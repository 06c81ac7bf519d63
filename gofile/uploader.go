package gofile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/imroc/req/v3"

	"github.com/input-output-hk/gofile-uploader/errors"
	"github.com/input-output-hk/gofile-uploader/fs"
	"github.com/input-output-hk/gofile-uploader/fs/billy"
)

// UploadRequest describes a single upload. It is consumed by exactly one POST.
type UploadRequest struct {
	// FilePath is the local file to upload. Required.
	FilePath string

	// FileName is the name reported in the file part. Defaults to the base name of FilePath.
	FileName string

	// Token is the account token. Opaque, sent as is.
	Token string

	// FolderID is the destination folder identifier. Opaque, sent as is.
	FolderID string

	// ContentType overrides the uploader's content type for this request.
	ContentType string
}

// Uploader performs single-shot multipart uploads.
//
// An Uploader is immutable after New and safe for concurrent use; each Upload
// call opens its own file handle and issues its own request.
type Uploader struct {
	client      *req.Client
	endpoint    string
	headers     map[string]string
	fs          fs.Filesystem
	logger      *slog.Logger
	timeout     time.Duration
	contentType string
	detect      bool
}

// New creates an Uploader with the provided options.
func New(opts ...Option) (*Uploader, error) {
	options := defaultOptions()
	applyOptions(options, opts)

	if err := ValidateEndpoint(options.endpoint); err != nil {
		return nil, err
	}

	filesystem := options.filesystem
	if filesystem == nil {
		filesystem = billy.NewNativeFS()
	}

	client := options.httpClient
	if client == nil {
		// Timeouts are applied per request through the context.
		client = req.C().
			SetTimeout(0).
			SetLogger(newReqLogger(options.logger))
	}

	headers := make(map[string]string, len(options.headers))
	for k, v := range options.headers {
		if v != "" {
			headers[k] = v
		}
	}

	return &Uploader{
		client:      client,
		endpoint:    options.endpoint,
		headers:     headers,
		fs:          filesystem,
		logger:      options.logger,
		timeout:     options.timeout,
		contentType: options.contentType,
		detect:      options.detect,
	}, nil
}

// Endpoint returns the URL uploads are posted to.
func (u *Uploader) Endpoint() string {
	return u.endpoint
}

// Upload opens the file, posts it once and returns the decoded response.
//
// A missing or unreadable file fails with ErrFileAccess before any network
// activity. A connection or timeout failure fails with ErrTransport. Any HTTP
// response, whatever its status code or body, is returned without error; a body
// that is not JSON is reported through Response.DecodeErr.
func (u *Uploader) Upload(ctx context.Context, r UploadRequest) (*Response, error) {
	if r.FilePath == "" {
		return nil, errors.New(errors.CodeInvalidInput, "file path is required").WithSentinel(ErrFileAccess)
	}

	file, info, err := u.open(ctx, r.FilePath)
	if err != nil {
		return nil, err
	}
	defer u.release(ctx, file)

	name := r.FileName
	if name == "" {
		name = filepath.Base(r.FilePath)
	}

	contentType := r.ContentType
	if contentType == "" {
		contentType = u.contentType
	}
	contentType, err = u.resolveContentType(ctx, file, contentType)
	if err != nil {
		return nil, err
	}

	body, formContentType, err := buildForm(file, name, contentType, r.Token, r.FolderID)
	if err != nil {
		return nil, err
	}

	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	if u.logger != nil {
		u.logger.InfoContext(ctx, "uploading file",
			"endpoint", u.endpoint,
			"file", name,
			"size", info.Size(),
			"content_type", contentType,
		)
	}

	resp, err := u.client.R().
		SetContext(ctx).
		SetHeaders(u.headers).
		SetContentType(formContentType).
		SetBodyBytes(body).
		Post(u.endpoint)
	if err != nil {
		if u.logger != nil {
			u.logger.ErrorContext(ctx, "upload request failed",
				"endpoint", u.endpoint,
				"error", err,
			)
		}
		return nil, transportError(err, u.endpoint)
	}

	raw, err := resp.ToBytes()
	if err != nil {
		return nil, transportError(err, u.endpoint)
	}

	out := newResponse(resp.StatusCode, resp.Header, raw)
	if u.logger != nil {
		u.logger.InfoContext(ctx, "upload completed",
			"status_code", out.StatusCode,
			"json", out.IsJSON(),
		)
		if out.DecodeErr != nil {
			u.logger.WarnContext(ctx, "response is not JSON",
				"status_code", out.StatusCode,
				"error", out.DecodeErr,
			)
		}
	}

	return out, nil
}

// open stats and opens the upload source.
func (u *Uploader) open(ctx context.Context, path string) (fs.File, iofs.FileInfo, error) {
	info, err := u.fs.Stat(path)
	if err != nil {
		return nil, nil, u.fileError(ctx, fileAccessError(err, path, "cannot stat file"))
	}
	if info.IsDir() {
		return nil, nil, u.fileError(ctx, errors.New(errors.CodeInvalidInput, "path is a directory").
			WithContext(map[string]interface{}{"path": path}).
			WithSentinel(ErrFileAccess))
	}

	file, err := u.fs.Open(path)
	if err != nil {
		return nil, nil, u.fileError(ctx, fileAccessError(err, path, "cannot open file"))
	}

	if u.logger != nil {
		u.logger.DebugContext(ctx, "opened file", "path", path, "size", info.Size())
	}
	return file, info, nil
}

func (u *Uploader) fileError(ctx context.Context, err error) error {
	if u.logger != nil {
		u.logger.ErrorContext(ctx, "cannot access file", "error", err)
	}
	return err
}

// release closes the file handle. Close failures are logged, never returned.
func (u *Uploader) release(ctx context.Context, file fs.File) {
	if err := file.Close(); err != nil && u.logger != nil {
		u.logger.WarnContext(ctx, "failed to close file", "path", file.Name(), "error", err)
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// buildForm reads file once and assembles the token, folderId and file parts.
func buildForm(file fs.File, fileName, contentType, token, folderID string) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField(FieldToken, token); err != nil {
		return nil, "", errors.Wrap(err, errors.CodeUploadFailed, "cannot write token field")
	}
	if err := w.WriteField(FieldFolderID, folderID); err != nil {
		return nil, "", errors.Wrap(err, errors.CodeUploadFailed, "cannot write folderId field")
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		FieldFile, quoteEscaper.Replace(fileName)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", errors.Wrap(err, errors.CodeUploadFailed, "cannot create file part")
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fileAccessError(err, file.Name(), "cannot read file")
	}

	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, errors.CodeUploadFailed, "cannot finalize multipart body")
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}

// ValidateEndpoint reports whether endpoint is an absolute http or https URL
// with a host. Failures carry CodeInvalidConfig.
func ValidateEndpoint(endpoint string) error {
	if endpoint == "" {
		return errors.New(errors.CodeInvalidConfig, "endpoint is required")
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return errors.WrapWithContext(err, errors.CodeInvalidConfig,
			fmt.Sprintf("endpoint %q is not a valid URL", endpoint),
			map[string]interface{}{"endpoint": endpoint})
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return errors.Newf(errors.CodeInvalidConfig, "endpoint %q must be an absolute http(s) URL", endpoint)
	}
	return nil
}
