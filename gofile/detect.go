package gofile

import (
	"context"
	"io"

	"github.com/gabriel-vasile/mimetype"

	"github.com/input-output-hk/gofile-uploader/fs"
)

const contentTypeZip = "application/zip"

// resolveContentType returns the MIME type for the file part.
// With detection enabled the sniffed type wins; otherwise want is kept and a
// mismatch is only logged. The file is rewound before returning.
func (u *Uploader) resolveContentType(ctx context.Context, file fs.File, want string) (string, error) {
	if !u.detect && u.logger == nil {
		return want, nil
	}

	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fileAccessError(err, file.Name(), "cannot read file")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fileAccessError(err, file.Name(), "cannot rewind file")
	}

	if u.detect {
		if u.logger != nil {
			u.logger.DebugContext(ctx, "detected content type", "content_type", detected.String())
		}
		return detected.String(), nil
	}

	if !compatible(detected, want) {
		u.logger.WarnContext(ctx, "file content does not match content type",
			"content_type", want,
			"detected", detected.String(),
		)
	}
	return want, nil
}

// compatible reports whether the sniffed type, or one of its parents, is want.
// APKs are zip archives, so a zip is accepted for ContentTypeAPK.
func compatible(detected *mimetype.MIME, want string) bool {
	for m := detected; m != nil; m = m.Parent() {
		if m.Is(want) {
			return true
		}
		if want == ContentTypeAPK && m.Is(contentTypeZip) {
			return true
		}
	}
	return false
}
