package file

import "errors"

var (
	// Upload validation
	ErrMIMETypeNotAllowed = errors.New("MIME type is not allowed")
	ErrEmptyFile          = errors.New("file is empty")
	ErrFileTooLarge       = errors.New("file size exceeds maximum allowed size")
	ErrMissingExtension   = errors.New("file has no extension")
	ErrExtensionMismatch  = errors.New("file extension does not match MIME type")
	ErrDoubleExtension    = errors.New("file has a double extension")
	ErrSignatureMismatch  = errors.New("file content does not match MIME type")

	// ErrUnknownMIMEType is raised as a panic by ValidateSignature: asking for
	// a signature the table does not define is a defect in the caller.
	ErrUnknownMIMEType = errors.New("no signature registered for MIME type")

	ErrInvalidMIMETable = errors.New("invalid MIME table")
	ErrNilFileHeader    = errors.New("file header is nil")
	ErrInvalidUpload    = errors.New("upload rejected")
	ErrInvalidPath      = errors.New("invalid path")

	// Storage
	ErrFileNotFound            = errors.New("file not found")
	ErrIsDirectory             = errors.New("path is a directory")
	ErrFailedToOpenFile        = errors.New("failed to open file")
	ErrFailedToReadFile        = errors.New("failed to read file")
	ErrFailedToWriteFile       = errors.New("failed to write file")
	ErrFailedToCreateFile      = errors.New("failed to create file")
	ErrFailedToDeleteFile      = errors.New("failed to delete file")
	ErrFailedToCreateDirectory = errors.New("failed to create directory")
	ErrFailedToStatPath        = errors.New("failed to stat path")
	ErrFailedToGetAbsolutePath = errors.New("failed to get absolute path")

	// S3
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrRequestTimeout     = errors.New("request timed out")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
	ErrOperationTimeout   = errors.New("operation timed out")
	ErrOperationCanceled  = errors.New("operation canceled")

	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
)
