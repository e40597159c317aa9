package binder

import "errors"

var (
	// ErrBinderNotApplicable tells handler.Wrap to skip a binder that does
	// not handle the request's content type.
	ErrBinderNotApplicable = errors.New("binder not applicable")

	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrRequestTooLarge      = errors.New("request body too large")
	ErrInvalidJSON          = errors.New("invalid JSON")
	ErrInvalidForm          = errors.New("invalid form data")
	ErrInvalidQuery         = errors.New("invalid query parameter")
	ErrInvalidPath          = errors.New("invalid path parameter")
	ErrInvalidTarget        = errors.New("bind target must be a non-nil pointer to struct")
)

// IsBindError reports whether err was produced by a binder because the
// request itself was malformed.
func IsBindError(err error) bool {
	for _, target := range []error{
		ErrUnsupportedMediaType, ErrMissingContentType, ErrRequestTooLarge,
		ErrInvalidJSON, ErrInvalidForm, ErrInvalidQuery, ErrInvalidPath,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
