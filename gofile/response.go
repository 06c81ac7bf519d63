package gofile

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/input-output-hk/gofile-uploader/errors"
)

// Response is the outcome of an upload that reached the server.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Header holds the response headers.
	Header http.Header

	// Body is the raw response body.
	Body []byte

	// JSON is the decoded body, nil when DecodeErr is set.
	// Numbers are kept as json.Number so values round-trip unmodified.
	JSON any

	// DecodeErr records why the body could not be decoded as JSON.
	DecodeErr error
}

// UploadResult is the envelope returned by the upload API.
type UploadResult struct {
	// Status is "ok" on success, an error identifier otherwise.
	Status string `json:"status"`

	// Data describes the stored file.
	Data UploadData `json:"data"`
}

// UploadData describes a file stored by the upload API.
type UploadData struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	Size             int64    `json:"size"`
	MD5              string   `json:"md5"`
	Mimetype         string   `json:"mimetype"`
	CreateTime       int64    `json:"createTime"`
	ModTime          int64    `json:"modTime"`
	DownloadPage     string   `json:"downloadPage"`
	ParentFolder     string   `json:"parentFolder"`
	ParentFolderCode string   `json:"parentFolderCode"`
	GuestToken       string   `json:"guestToken,omitempty"`
	Servers          []string `json:"servers,omitempty"`
}

// OK reports whether the API accepted the upload.
func (r *UploadResult) OK() bool {
	return r.Status == StatusOK
}

func newResponse(statusCode int, header http.Header, body []byte) *Response {
	resp := &Response{
		StatusCode: statusCode,
		Header:     header,
		Body:       body,
	}
	resp.JSON, resp.DecodeErr = decodeJSON(body)
	return resp
}

// IsJSON reports whether the body decoded as JSON.
func (r *Response) IsJSON() bool {
	return r.DecodeErr == nil
}

// Text returns the body as text.
func (r *Response) Text() string {
	return string(r.Body)
}

// Result decodes the body into the typed upload envelope.
func (r *Response) Result() (*UploadResult, error) {
	if r.DecodeErr != nil {
		return nil, errors.Wrap(r.DecodeErr, errors.CodeInvalidInput, "response is not JSON")
	}

	var result UploadResult
	if err := json.Unmarshal(r.JSONBody(), &result); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "response is not an upload result")
	}
	return &result, nil
}

// utf8BOM may prefix bodies from servers that encode as utf-8-sig.
var utf8BOM = []byte("\ufeff")

// JSONBody returns the body without a leading byte-order mark, ready for the
// encoding/json functions. It is nil when the body is not JSON.
func (r *Response) JSONBody() []byte {
	if !r.IsJSON() {
		return nil
	}
	return bytes.TrimPrefix(r.Body, utf8BOM)
}

// decodeJSON decodes a whole body. A leading byte-order mark is ignored;
// trailing data after the first value is an error.
func decodeJSON(body []byte) (any, error) {
	body = bytes.TrimPrefix(body, utf8BOM)

	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
