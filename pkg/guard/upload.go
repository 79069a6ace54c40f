package guard

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/inputguard/pkg/file"
	"github.com/dmitrymomot/inputguard/pkg/logger"
	"github.com/dmitrymomot/inputguard/pkg/threat"
)

// multipartMemory is how much of a multipart form is kept in memory before
// spilling to temporary files.
const multipartMemory = 8 << 20

// Upload extracts one file from a multipart request and validates it with
// file.ValidateUpload, capped at MaxUploadBytes. The client filename is also
// scanned; a finding is reported and, under PolicyReject, refused with
// ErrSuspiciousInput. Rejected uploads return the file sentinel wrapped with
// the user-facing message.
func (g *Guard) Upload(w http.ResponseWriter, r *http.Request, field string, opts ...file.Option) (file.Upload, error) {
	// Headroom for the other multipart parts and boundaries.
	r.Body = http.MaxBytesReader(w, r.Body, g.cfg.MaxUploadBytes+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, ErrBodyTooLarge
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingUpload, field)
	}
	u := file.FromFileHeader(headers[0])

	if f, found := g.scanner.ScanString(u.Name()); found {
		f.Path = field + ".filename"
		g.report(r.Context(), []threat.Finding{f})
		if g.cfg.Policy == PolicyReject {
			return nil, ErrSuspiciousInput
		}
	}

	opts = append([]file.Option{file.WithMaxSize(g.cfg.MaxUploadBytes)}, opts...)
	if res := file.ValidateUpload(u, opts...); !res.Valid {
		g.log.WarnContext(r.Context(), "upload rejected",
			logger.Error(res.Err),
			slog.String("field", field),
		)
		return nil, fmt.Errorf("%w: %s", res.Err, res.Message)
	}
	return u, nil
}
