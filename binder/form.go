package binder

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"
)

// DefaultMaxMemory is the multipart memory threshold before spilling to disk.
const DefaultMaxMemory = 10 << 20

var (
	fileHeaderType  = reflect.TypeOf((*multipart.FileHeader)(nil))
	fileHeadersType = reflect.TypeOf([]*multipart.FileHeader(nil))
)

// Form binds urlencoded and multipart bodies. Fields tagged `form:"name"`
// receive values; *multipart.FileHeader or []*multipart.FileHeader fields
// tagged `file:"name"` receive uploads. Other content types are skipped
// with ErrBinderNotApplicable so Form can be combined with JSON.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		var (
			values map[string][]string
			files  map[string][]*multipart.FileHeader
		)

		switch mediaTypeOf(r) {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.PostForm
		case "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				var maxErr *http.MaxBytesError
				if errors.As(err, &maxErr) {
					return ErrRequestTooLarge
				}
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.MultipartForm.Value
			files = r.MultipartForm.File
		case "":
			if r.ContentLength == 0 {
				return ErrBinderNotApplicable
			}
			return fmt.Errorf("%w: expected a form content type", ErrMissingContentType)
		default:
			return ErrBinderNotApplicable
		}

		if err := bindToStruct(v, "form", values, ErrInvalidForm); err != nil {
			return err
		}
		return bindFiles(v, files)
	}
}

func bindFiles(v any, files map[string][]*multipart.FileHeader) error {
	rv, err := structValue(v)
	if err != nil {
		return err
	}
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		name := sf.Tag.Get("file")
		if name == "" || name == "-" || !field.CanSet() {
			continue
		}

		headers := files[name]
		if len(headers) == 0 {
			continue
		}

		switch sf.Type {
		case fileHeaderType:
			field.Set(reflect.ValueOf(headers[0]))
		case fileHeadersType:
			field.Set(reflect.ValueOf(headers))
		default:
			return fmt.Errorf("%w: field %s has unsupported file type %s", ErrInvalidForm, sf.Name, sf.Type)
		}
	}
	return nil
}

func mediaTypeOf(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
	}
	return mediaType
}
