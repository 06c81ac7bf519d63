// Package report renders the outcome of an upload for the console.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/input-output-hk/gofile-uploader/gofile"
)

const indent = "  "

// Print writes the status code followed by the indented JSON body, or by the
// decode failure and the raw body when the response is not JSON.
// Key order and number literals are kept as the server sent them.
func Print(w io.Writer, resp *gofile.Response) error {
	if resp == nil {
		return fmt.Errorf("report: nil response")
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Status Code: %d\n", resp.StatusCode)

	if resp.IsJSON() {
		buf.WriteString("JSON Response:\n")
		if err := json.Indent(&buf, bytes.TrimSpace(resp.JSONBody()), "", indent); err != nil {
			return fmt.Errorf("report: indent response: %w", err)
		}
		buf.WriteByte('\n')
	} else {
		fmt.Fprintf(&buf, "Error decoding response: %v\n", resp.DecodeErr)
		buf.WriteString("Raw response:\n")
		buf.Write(resp.Body)
		if len(resp.Body) > 0 && resp.Body[len(resp.Body)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("report: write: %w", err)
	}
	return nil
}
