/*
Package req provides helper functions for HTTP request parsing and data binding.

It encapsulates JSON body binding with strict field checking and a request
body size cap, returning typed errors the handlers can pass straight to resp.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Bini-2002/campuscraft/internal/pkg/errs"
)

// MaxJSONBodySize caps the size of a JSON request body (1 MB).
const MaxJSONBodySize int64 = 1 << 20

// BindJSON binds the JSON request body to the destination struct dst.
// Unknown fields and trailing content are rejected.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
