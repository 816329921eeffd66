package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/shopinger/shopinger/internal/domain"
)

// validate holds the shared validator instance. Struct tags on request types
// drive all request validation.
var validate = validator.New(validator.WithRequiredStructEnabled())

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// DecodeJSON decodes the request body into dst and runs struct validation.
// Returns a domain EINVALID error describing the first problem found.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.Invalid("request.decode", fmt.Sprintf("invalid request body: %v", err))
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return domain.Invalid("request.validate",
				fmt.Sprintf("field %s failed validation: %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return domain.Invalid("request.validate", "request failed validation")
	}
	return nil
}

// PathInt64 parses a numeric path segment, e.g. a user or receipt id.
func PathInt64(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("request.path", fmt.Sprintf("invalid %s: %q", name, raw))
	}
	return id, nil
}
