package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmitrymomot/inputguard/pkg/audit"
	"github.com/dmitrymomot/inputguard/pkg/clientip"
	"github.com/dmitrymomot/inputguard/pkg/file"
	"github.com/dmitrymomot/inputguard/pkg/guard"
	"github.com/dmitrymomot/inputguard/pkg/logger"
	"github.com/dmitrymomot/inputguard/pkg/requestid"
	"github.com/dmitrymomot/inputguard/pkg/sanitizer"
	"github.com/dmitrymomot/inputguard/pkg/validator"
)

const (
	actionRegistration   = "account.registration"
	actionUploadSaved    = "upload.saved"
	actionUploadRejected = "upload.rejected"

	uploadField = "file"
)

type api struct {
	guard      *guard.Guard
	audit      *audit.Logger
	files      file.Storage
	validation []file.Option
	health     func(context.Context) error
}

func newRouter(a *api, proxyHeaders []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware(proxyHeaders...))

	r.Get("/healthz", a.healthz)
	r.Post("/sanitize", a.sanitize)

	r.Group(func(r chi.Router) {
		r.Use(a.guard.Middleware)
		r.Post("/register", a.register)
		r.Post("/uploads", a.upload)
	})
	return r
}

type issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type registrationResponse struct {
	Email        string             `json:"email"`
	BusinessName string             `json:"business_name"`
	TaxID        string             `json:"tax_id,omitempty"`
	Phone        string             `json:"phone,omitempty"`
	Description  string             `json:"description,omitempty"`
	Website      string             `json:"website,omitempty"`
	Address      *validator.Address `json:"address,omitempty"`
}

func (a *api) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in, err := guard.DecodeJSON[validator.Registration](r, a.guard.Config().MaxBodyBytes)
	if err != nil {
		writeDecodeError(w, err)
		return
	}

	res := validator.RegistrationSchema(in)
	if !res.OK() {
		issues := make([]issue, 0, len(res.Issues()))
		for _, e := range res.Issues() {
			issues = append(issues, issue{Field: e.Field, Message: e.Message, Code: e.TranslationKey})
		}
		a.record(ctx, a.audit.LogFailure(ctx, actionRegistration, audit.WithMetadata("fields", res.Issues().Fields())))
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": "validation failed", "issues": issues})
		return
	}

	out := res.Value()
	a.record(ctx, a.audit.Log(ctx, actionRegistration, audit.WithUserID(out.Email)))
	writeJSON(w, http.StatusOK, registrationResponse{
		Email:        out.Email,
		BusinessName: out.BusinessName,
		TaxID:        out.TaxID,
		Phone:        out.Phone,
		Description:  out.Description,
		Website:      out.Website,
		Address:      out.Address,
	})
}

// sanitize cleans an arbitrary JSON object. Query flags: strict strips all
// markup, deep recurses into nested objects, arrays walks list elements.
func (a *api) sanitize(w http.ResponseWriter, r *http.Request) {
	in, err := guard.DecodeJSON[map[string]any](r, a.guard.Config().MaxBodyBytes)
	if err != nil {
		writeDecodeError(w, err)
		return
	}

	q := r.URL.Query()
	opts := sanitizer.Options{
		StripAllHTML: queryFlag(q.Get("strict")),
		Deep:         queryFlag(q.Get("deep")),
		WalkArrays:   queryFlag(q.Get("arrays")),
	}
	writeJSON(w, http.StatusOK, sanitizer.SanitizeMap(in, opts))
}

type uploadResponse struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MIMEType string `json:"mime_type"`
	URL      string `json:"url"`
}

func (a *api) upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	u, err := a.guard.Upload(w, r, uploadField, a.validation...)
	if err != nil {
		a.record(ctx, a.audit.LogError(ctx, actionUploadRejected, err))
		writeUploadError(w, err)
		return
	}

	key := fmt.Sprintf("uploads/%s%s", uuid.NewString(), path.Ext(u.Name()))
	f, err := a.files.Save(ctx, key, u)
	if err != nil {
		a.record(ctx, a.audit.LogError(ctx, actionUploadRejected, err))
		writeUploadError(w, err)
		return
	}

	a.record(ctx, a.audit.Log(ctx, actionUploadSaved,
		audit.WithResource("file", f.Key),
		audit.WithMetadata("mime_type", f.MIMEType),
		audit.WithMetadata("size", f.Size),
	))
	writeJSON(w, http.StatusCreated, uploadResponse{
		Key:      f.Key,
		Name:     f.Name,
		Size:     f.Size,
		MIMEType: f.MIMEType,
		URL:      a.files.URL(f.Key),
	})
}

func (a *api) healthz(w http.ResponseWriter, r *http.Request) {
	if a.health != nil {
		if err := a.health(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "healthcheck failed", logger.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// record logs audit failures; they never fail the request.
func (a *api) record(ctx context.Context, err error) {
	if err != nil {
		slog.ErrorContext(ctx, "failed to record audit event", logger.Error(err))
	}
}

func writeDecodeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, guard.ErrBodyTooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
	case errors.Is(err, guard.ErrUnsupportedMedia):
		writeJSON(w, http.StatusUnsupportedMediaType, map[string]string{"error": "expected application/json"})
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
}

func writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, guard.ErrBodyTooLarge), errors.Is(err, file.ErrFileTooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "file too large"})
	case errors.Is(err, guard.ErrSuspiciousInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
	case errors.Is(err, guard.ErrMissingUpload), errors.Is(err, guard.ErrInvalidBody):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing file"})
	case errors.Is(err, file.ErrMIMETypeNotAllowed),
		errors.Is(err, file.ErrEmptyFile),
		errors.Is(err, file.ErrMissingExtension),
		errors.Is(err, file.ErrExtensionMismatch),
		errors.Is(err, file.ErrDoubleExtension),
		errors.Is(err, file.ErrSignatureMismatch),
		errors.Is(err, file.ErrInvalidUpload):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "file rejected"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", logger.Error(err))
	}
}

func queryFlag(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}
