package file

import (
	"fmt"
	"path"
	"slices"
	"strings"
)

// DefaultMaxSize is the upload ceiling used when WithMaxSize is not given.
const DefaultMaxSize int64 = 5 << 20

// Result is the outcome of a validation. Message is meant for the end user;
// Err carries the matching sentinel for errors.Is.
type Result struct {
	Valid   bool
	Message string
	Err     error
}

func ok() Result { return Result{Valid: true} }

func fail(err error, format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...), Err: err}
}

type options struct {
	maxSize int64
	table   MIMETable
}

type Option func(*options)

// WithMaxSize overrides DefaultMaxSize. Non-positive values are ignored.
func WithMaxSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

// WithMIMETable replaces the built-in allow-list.
func WithMIMETable(t MIMETable) Option {
	return func(o *options) {
		if len(t) > 0 {
			o.table = t
		}
	}
}

func newOptions(opts []Option) options {
	o := options{maxSize: DefaultMaxSize, table: defaultTable}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ValidateBasics checks upload metadata and stops at the first failure:
// MIME allow-list, non-empty, size ceiling, extension present, no double
// extension, extension registered for the MIME type.
func ValidateBasics(u Upload, opts ...Option) Result {
	o := newOptions(opts)

	mt, entry, allowed := o.table.Lookup(u.Type())
	if !allowed {
		return fail(ErrMIMETypeNotAllowed, "file type %q is not allowed", mt)
	}

	size := u.Size()
	if size <= 0 {
		return fail(ErrEmptyFile, "file is empty")
	}
	if size > o.maxSize {
		return fail(ErrFileTooLarge, "file is too large: maximum size is %s", humanSize(o.maxSize))
	}

	segments := strings.Split(baseName(u.Name()), ".")
	ext := strings.ToLower(segments[len(segments)-1])
	if len(segments) < 2 || ext == "" {
		return fail(ErrMissingExtension, "file has no extension")
	}
	// Checked before the MIME match so "photo.jpg.exe"-style names report
	// the double extension rather than a mismatch.
	if len(segments) > 2 && looksLikeExtension(segments[len(segments)-2]) {
		return fail(ErrDoubleExtension, "file has a double extension")
	}
	if !slices.Contains(entry.Extensions, ext) {
		return fail(ErrExtensionMismatch, "file extension .%s does not match type %s", ext, mt)
	}

	return ok()
}

// ValidateSignature checks the leading bytes of the content against the
// declared MIME type. A MIME type missing from the table is a programmer
// error and panics with ErrUnknownMIMEType.
func ValidateSignature(mimeType string, head []byte, opts ...Option) Result {
	o := newOptions(opts)

	mt, entry, found := o.table.Lookup(mimeType)
	if !found {
		panic(fmt.Errorf("%w: %q", ErrUnknownMIMEType, mt))
	}
	if !entry.matches(head) {
		return fail(ErrSignatureMismatch, "file content does not match type %s", mt)
	}
	return ok()
}

// ValidateUpload runs ValidateBasics and, when it passes, ValidateSignature
// over the first HeadSize bytes.
func ValidateUpload(u Upload, opts ...Option) Result {
	if res := ValidateBasics(u, opts...); !res.Valid {
		return res
	}

	head, err := u.Head(HeadSize)
	if err != nil {
		return fail(err, "file could not be read")
	}
	return ValidateSignature(u.Type(), head, opts...)
}

// baseName drops any client-supplied directories.
func baseName(name string) string {
	return path.Base(strings.ReplaceAll(name, `\`, "/"))
}

// looksLikeExtension reports whether s is a short alphanumeric run such as
// "jpg" or "exe".
func looksLikeExtension(s string) bool {
	if s == "" || len(s) > 4 {
		return false
	}
	for _, r := range s {
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9') {
			return false
		}
	}
	return true
}

func humanSize(n int64) string {
	const unit = 1024
	switch {
	case n >= unit*unit:
		return fmt.Sprintf("%.1f MB", float64(n)/(unit*unit))
	case n >= unit:
		return fmt.Sprintf("%.1f KB", float64(n)/unit)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
