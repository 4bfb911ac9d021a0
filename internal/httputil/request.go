package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// maxJSONBody caps JSON request bodies; images never travel as JSON.
const maxJSONBody = 1 << 20

// ParseJSON decodes JSON from the request body into the given destination.
// Unknown fields are ignored so clients may echo back server-assigned fields
// (id, createdAt) without failing.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

// QueryParam returns a trimmed query parameter, or "" when absent
func QueryParam(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// SplitList splits a comma separated form value, trimming entries and
// dropping empty ones. Returns an empty, non-nil slice for "".
func SplitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
