package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultMaxJSONBytes caps JSON request bodies.
const DefaultMaxJSONBytes = 1 << 20

// JSON decodes an application/json body into the target struct.
// Unknown fields are rejected. A request without a body binds nothing and
// form bodies are left to Form.
func JSON() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
			return nil
		}

		mediaType := mediaTypeOf(r)
		if mediaType == "" {
			return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
		}
		if mediaType == "multipart/form-data" || mediaType == "application/x-www-form-urlencoded" {
			return ErrBinderNotApplicable
		}
		if mediaType != "application/json" {
			return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, mediaType)
		}

		decoder := json.NewDecoder(io.LimitReader(r.Body, DefaultMaxJSONBytes+1))
		decoder.DisallowUnknownFields()

		if err := decoder.Decode(v); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			switch {
			case errors.Is(err, io.EOF):
				return nil
			case errors.Is(err, io.ErrUnexpectedEOF):
				if r.ContentLength > DefaultMaxJSONBytes {
					return ErrRequestTooLarge
				}
				return fmt.Errorf("%w: unexpected end of input", ErrInvalidJSON)
			case errors.As(err, &syntaxErr):
				return fmt.Errorf("%w: malformed at offset %d", ErrInvalidJSON, syntaxErr.Offset)
			case errors.As(err, &typeErr):
				return fmt.Errorf("%w: field %q must be %s", ErrInvalidJSON, typeErr.Field, typeErr.Type)
			default:
				return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
			}
		}

		var extra json.RawMessage
		if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
		}

		return nil
	}
}
