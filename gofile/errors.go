package gofile

import (
	"context"
	stderrors "errors"
	iofs "io/fs"
	"net"

	"github.com/input-output-hk/gofile-uploader/errors"
)

var (
	// ErrFileAccess is returned when the upload source is missing or unreadable.
	// No request has been sent when this error is returned.
	ErrFileAccess = stderrors.New("gofile: file access error")

	// ErrTransport is returned when the connection cannot be established or the
	// server does not respond. The request is never retried.
	ErrTransport = stderrors.New("gofile: transport error")
)

// fileAccessError classifies a failure to open or read the upload source.
func fileAccessError(err error, path, message string) error {
	var code errors.ErrorCode
	switch {
	case stderrors.Is(err, iofs.ErrNotExist):
		code = errors.CodeNotFound
	case stderrors.Is(err, iofs.ErrPermission):
		code = errors.CodeForbidden
	default:
		code = errors.CodeInvalidInput
	}

	return errors.WrapWithContext(err, code, message, map[string]interface{}{
		"path": path,
	}).WithSentinel(ErrFileAccess)
}

// transportError classifies a failed POST.
func transportError(err error, endpoint string) error {
	code := errors.CodeNetwork
	var netErr net.Error
	if stderrors.Is(err, context.DeadlineExceeded) || (stderrors.As(err, &netErr) && netErr.Timeout()) {
		code = errors.CodeTimeout
	}

	return errors.WrapWithContext(err, code, "upload request failed", map[string]interface{}{
		"endpoint": endpoint,
	}).WithSentinel(ErrTransport)
}
