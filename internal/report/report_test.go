package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/gofile-uploader/gofile"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestPrint_JSON(t *testing.T) {
	body := `{"status":"ok","data":{"size":18446744073709551615,"name":"naxo.apk","id":"b1"}}`
	resp := &gofile.Response{StatusCode: 200, Body: []byte(body + "\n")}

	var out strings.Builder
	require.NoError(t, Print(&out, resp))

	want := `Status Code: 200
JSON Response:
{
  "status": "ok",
  "data": {
    "size": 18446744073709551615,
    "name": "naxo.apk",
    "id": "b1"
  }
}
`
	assert.Equal(t, want, out.String())
}

func TestPrint_JSONWithByteOrderMark(t *testing.T) {
	resp := &gofile.Response{StatusCode: 200, Body: []byte("\ufeff{\"status\":\"ok\"}")}

	var out strings.Builder
	require.NoError(t, Print(&out, resp))
	assert.Equal(t, "Status Code: 200\nJSON Response:\n{\n  \"status\": \"ok\"\n}\n", out.String())
}

func TestPrint_NonJSON(t *testing.T) {
	resp := &gofile.Response{
		StatusCode: 502,
		Body:       []byte("Bad Gateway"),
		DecodeErr:  errors.New("invalid character 'B' looking for beginning of value"),
	}

	var out strings.Builder
	require.NoError(t, Print(&out, resp))

	want := `Status Code: 502
Error decoding response: invalid character 'B' looking for beginning of value
Raw response:
Bad Gateway
`
	assert.Equal(t, want, out.String())
}

func TestPrint_EmptyBody(t *testing.T) {
	resp := &gofile.Response{StatusCode: 204, DecodeErr: errors.New("unexpected end of JSON input")}

	var out strings.Builder
	require.NoError(t, Print(&out, resp))
	assert.Equal(t, "Status Code: 204\nError decoding response: unexpected end of JSON input\nRaw response:\n", out.String())
}

func TestPrint_Errors(t *testing.T) {
	require.Error(t, Print(&strings.Builder{}, nil))

	err := Print(failingWriter{}, &gofile.Response{StatusCode: 200, Body: []byte(`{}`)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed pipe")
}
