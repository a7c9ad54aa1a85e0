package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/angelmondragon/procureflow-backend/pkg/errors"
)

// ParseQueryEnum reads an optional enum query parameter. An absent value
// returns the zero T.
func ParseQueryEnum[T ~string](r *http.Request, key string, parse func(string) (T, error)) (T, error) {
	var zero T
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return zero, nil
	}
	value, err := parse(raw)
	if err != nil {
		return zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid query parameter").WithDetails(map[string]any{"field": key, "value": raw})
	}
	return value, nil
}

// QueryString returns the trimmed query parameter.
func QueryString(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}
