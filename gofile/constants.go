package gofile

// Wire-level constants of the upload API.
const (
	// DefaultEndpoint is the gofile.io upload URL.
	DefaultEndpoint = "https://upload.gofile.io/uploadfile"

	// ContentTypeAPK is the MIME type attached to the file part by default.
	ContentTypeAPK = "application/vnd.android.package-archive"

	// FieldToken is the form field carrying the account token.
	FieldToken = "token"

	// FieldFolderID is the form field carrying the destination folder identifier.
	FieldFolderID = "folderId"

	// FieldFile is the form field carrying the file content.
	FieldFile = "file"

	// StatusOK is the value of the "status" member of a successful API reply.
	StatusOK = "ok"
)
