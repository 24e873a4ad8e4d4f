package errors

import (
	"encoding/json"
	"maps"
	"net/http"

	"github.com/go-chi/render"
)

// ProblemDetails is an RFC 7807 problem document. Extensions are written
// beside the standard members and cannot override them.
type ProblemDetails struct {
	Type     string
	Title    string
	Status   int
	Detail   string
	Instance string

	Extensions map[string]interface{}
}

// NewProblemDetails builds a problem for status. An empty title falls back
// to the HTTP status text.
func NewProblemDetails(status int, problemType, title, detail, instance string) *ProblemDetails {
	if title == "" {
		title = http.StatusText(status)
	}
	return &ProblemDetails{
		Type:       problemType,
		Title:      title,
		Status:     status,
		Detail:     detail,
		Instance:   instance,
		Extensions: map[string]interface{}{},
	}
}

// WithExtension sets an extension member
func (pd *ProblemDetails) WithExtension(key string, value interface{}) *ProblemDetails {
	pd.Extensions[key] = value
	return pd
}

// Render sets the response status for chi/render
func (pd *ProblemDetails) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, pd.Status)
	return nil
}

func (pd *ProblemDetails) MarshalJSON() ([]byte, error) {
	doc := maps.Clone(pd.Extensions)
	if doc == nil {
		doc = map[string]interface{}{}
	}

	doc["type"] = pd.Type
	doc["title"] = pd.Title
	doc["status"] = pd.Status
	if pd.Detail != "" {
		doc["detail"] = pd.Detail
	}
	if pd.Instance != "" {
		doc["instance"] = pd.Instance
	}

	return json.Marshal(doc)
}
