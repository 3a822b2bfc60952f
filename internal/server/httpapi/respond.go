package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/todoapp/internal/common"
)

const maxBodyBytes = 1 << 20

var errBadJSON = errors.New("invalid JSON body")

type errorResponse struct {
	Error   string              `json:"error"`
	Details []common.FieldError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeValidation(w http.ResponseWriter, ve *common.ValidationError) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Validation failed", Details: ve.Details})
}

// bodyFields decodes a JSON object body into its raw fields. An empty body
// is an empty object; anything after the object is rejected.
func bodyFields(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, errBadJSON
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errBadJSON
	}
	return fields, nil
}

// lookup returns the raw value of key; JSON null counts as absent.
func lookup(fields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := fields[key]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return nil, false
	}
	return raw, true
}

func asString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func asBool(raw json.RawMessage) (bool, bool) {
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, false
	}
	return b, true
}

// rawValue decodes raw for echoing back in a validation detail.
func rawValue(raw json.RawMessage) any {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

// stringField returns the string under key, or "" when it is absent or not
// a string.
func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := lookup(fields, key)
	if !ok {
		return ""
	}
	s, _ := asString(raw)
	return s
}
