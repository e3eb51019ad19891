package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/user/taskmanager-go/apperror"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// DecodeJSON decodes a JSON object body into dst. Malformed JSON and
// type mismatches (for example "completed": "true") are ValidationErrors.
func DecodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return apperror.NewValidationError("invalid request body", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return apperror.NewValidationError("request body is required", nil)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return apperror.NewValidationError("invalid request body: "+jsonProblem(err), err)
	}
	return nil
}

// DecodePatch enforces an update allow-list: every top-level key of the JSON object body
// must be in allowed, otherwise nothing is decoded and a ValidationError is returned.
// Only then is the body decoded into dst, which should use pointer fields so absent keys
// can be told apart from zero values.
func DecodePatch(r *http.Request, dst any, allowed ...string) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return apperror.NewValidationError("invalid request body", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return apperror.NewValidationError("request body must be a JSON object", err)
	}

	allowSet := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		allowSet[a] = true
	}
	var rejected []string
	for key := range fields {
		if !allowSet[key] {
			rejected = append(rejected, key)
		}
	}
	if len(rejected) > 0 {
		sort.Strings(rejected)
		return apperror.NewValidationError(fmt.Sprintf("Invalid updates! Not allowed: %v", rejected), nil)
	}

	// A null would decode to a nil pointer and read as "unchanged".
	var nulls []string
	for key, raw := range fields {
		if string(bytes.TrimSpace(raw)) == "null" {
			nulls = append(nulls, key)
		}
	}
	if len(nulls) > 0 {
		sort.Strings(nulls)
		return apperror.NewValidationError(fmt.Sprintf("%s must not be null", strings.Join(nulls, ", ")), nil)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return apperror.NewValidationError(jsonProblem(err), err)
	}
	return nil
}

func jsonProblem(err error) string {
	if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
		return fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type)
	}
	return err.Error()
}
