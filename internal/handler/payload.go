package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/sakif/forum-api/internal/apperror"
	"github.com/sakif/forum-api/internal/model"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Sanitizer strips HTML from string values of incoming payloads. It is off
// by default (server.sanitize_html); a nil *Sanitizer or one built with
// enabled=false leaves payloads untouched. Responses are JSON-encoded, which
// already escapes <, > and &.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer(enabled bool) *Sanitizer {
	if !enabled {
		return &Sanitizer{}
	}
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// String removes every tag from s. The strict policy escapes the text it
// keeps, so entities are decoded again to store plain text.
func (s *Sanitizer) String(v string) string {
	if s == nil || s.policy == nil {
		return v
	}
	return html.UnescapeString(s.policy.Sanitize(v))
}

// Payload sanitizes the top-level string values of p in place. A value
// that was sent non-blank but holds nothing besides markup is rejected
// rather than turned into a missing property. Values of other types are
// left for the entity constructors to reject.
func (s *Sanitizer) Payload(p model.Payload) error {
	for k, v := range p {
		str, ok := v.(string)
		if !ok {
			continue
		}
		clean := s.String(str)
		if strings.TrimSpace(clean) == "" && strings.TrimSpace(str) != "" {
			return apperror.ValidationFailed(k, fmt.Sprintf("%s must contain text, not only HTML markup", k))
		}
		p[k] = clean
	}
	return nil
}

// decodePayload reads a JSON object body into a Payload. Values keep their
// JSON types (string, float64, bool, ...) so the entity constructors can
// report type mismatches. A null body decodes to an empty payload.
func decodePayload(w http.ResponseWriter, r *http.Request, s *Sanitizer) (model.Payload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var p model.Payload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperror.ValidationFailed("body", "request body is too large")
		}
		return nil, apperror.ValidationFailed("body", "request body must be a JSON object")
	}
	if p == nil {
		p = model.Payload{}
	}

	if err := s.Payload(p); err != nil {
		return nil, err
	}
	return p, nil
}
