// Package gofile uploads a single local file to the gofile.io upload API.
//
// An Uploader performs exactly one multipart/form-data POST per Upload call.
// The request carries three form parts, token, folderId and file, plus a static
// set of browser headers. The response body is decoded as JSON when possible;
// a body that is not JSON is not an error and is exposed as raw text together
// with the decoding failure.
//
// There is no retry: a transport failure is returned to the caller as is.
// The source file is opened before any network activity, so a missing or
// unreadable file never produces a request, and the handle is always released
// before Upload returns.
//
// # Usage
//
//	up, err := gofile.New(gofile.WithLogger(slog.Default()))
//	if err != nil {
//	    return err
//	}
//	resp, err := up.Upload(ctx, gofile.UploadRequest{
//	    FilePath: "/workspace/app.apk",
//	    Token:    token,
//	    FolderID: folderID,
//	})
//
// The token is sent in the request body only and is never logged.
package gofile
