// Package file gatekeeps uploads before they reach storage.
//
// ValidateBasics checks upload metadata in a fixed order and reports the
// first failure only:
//
//  1. the declared MIME type is in the allow-list (JPEG, PNG, WebP, SVG by default)
//  2. the file is not empty
//  3. the size is within the ceiling (5 MiB unless WithMaxSize is given)
//  4. the name has an extension
//  5. the name has no double extension such as photo.jpg.exe
//  6. the extension is registered for the declared MIME type
//
// ValidateSignature then compares the first bytes of the content with the
// format's magic number, since names and declared types are chosen by the
// client. ValidateUpload runs both:
//
//	res := file.ValidateUpload(file.FromFileHeader(fh), file.WithMaxSize(2<<20))
//	if !res.Valid {
//		return httpError(http.StatusBadRequest, res.Message)
//	}
//
// The allow-list can be replaced at startup with a YAML profile read by
// LoadMIMETable and passed through WithMIMETable.
//
// SanitizeStoragePath turns a client-influenced key into a safe relative
// path or rejects it. Rejected keys must be replaced by a freshly generated
// one.
//
// LocalStorage and S3Storage implement Storage. Both sanitize keys and
// validate uploads before writing.
package file
