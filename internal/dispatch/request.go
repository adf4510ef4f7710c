package dispatch

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-workshop-service/internal/apperror"
)

// Request is one invocation of a handler, independent of the transport.
type Request struct {
	Method  string
	Body    []byte
	Query   map[string]string
	Headers map[string]string
}

// Header looks a header up case-insensitively.
func (r *Request) Header(name string) string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

func (r *Request) QueryParam(name string) string {
	if r.Query == nil {
		return ""
	}
	return strings.TrimSpace(r.Query[name])
}

// Decode unmarshals the JSON body into dest. An empty body decodes as {}.
func (r *Request) Decode(dest interface{}) error {
	body := bytes.TrimSpace(r.Body)
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return apperror.Validation("invalid request body: %v", err)
	}
	return nil
}

// QueryID parses a required positive integer query parameter.
func (r *Request) QueryID(name string) (int64, error) {
	raw := r.QueryParam(name)
	if raw == "" {
		return 0, apperror.Validation("%s is required", name)
	}
	return ParseID(raw, name)
}

func ParseID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation("%s must be a positive integer", name)
	}
	return id, nil
}

// RequireID rejects a missing or non-positive identifier from a JSON body.
func RequireID(id *int64, name string) (int64, error) {
	if id == nil || *id <= 0 {
		return 0, apperror.Validation("%s is required", name)
	}
	return *id, nil
}

// ResolveID takes the id from the decoded body when present, else from the query.
func (r *Request) ResolveID(bodyID *int64, name string) (int64, error) {
	if bodyID != nil {
		return RequireID(bodyID, name)
	}
	return r.QueryID(name)
}
