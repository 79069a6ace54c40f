package guard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DecodeJSON strictly decodes a JSON body into T: unknown fields, trailing
// data and bodies over maxBytes are errors. Non-positive maxBytes means the
// 1 MiB default.
func DecodeJSON[T any](r *http.Request, maxBytes int64) (T, error) {
	var v T

	if !isJSON(r.Header.Get("Content-Type")) {
		return v, fmt.Errorf("%w: expected application/json", ErrUnsupportedMedia)
	}
	if maxBytes <= 0 {
		maxBytes = DefaultConfig().MaxBodyBytes
	}
	if r.Body == nil {
		return v, fmt.Errorf("%w: empty body", ErrInvalidBody)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
	if err != nil {
		return v, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if int64(len(body)) > maxBytes {
		return v, ErrBodyTooLarge
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, fmt.Errorf("%w: empty body", ErrInvalidBody)
		}
		return v, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if dec.More() {
		return v, fmt.Errorf("%w: unexpected data after JSON value", ErrInvalidBody)
	}
	return v, nil
}
