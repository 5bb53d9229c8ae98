package server

import (
	"net/http"
	"strings"

	"github.com/nitevelour/liveapi/models"
)

type performerResponse struct {
	OK       bool   `json:"ok"`
	Version  string `json:"version"`
	NotFound bool   `json:"notFound"`

	// Legacy alias: older front-ends read `model`.
	Performer models.Performer `json:"performer"`
	Model     models.Performer `json:"model"`

	Live  bool   `json:"live"`
	Error string `json:"error,omitempty"`
}

func (s *Server) handlePerformer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Version: apiVersion, Error: "method_not_allowed"})
		return
	}

	q := r.URL.Query()
	system := strings.TrimSpace(q.Get("brand"))
	if system == "" {
		system = strings.TrimSpace(q.Get("system"))
	}
	name := strings.TrimSpace(q.Get("name"))

	if system == "" || name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Version: apiVersion,
			Error:   "Missing required query params: brand and name",
		})
		return
	}

	allowRaw := q.Get("raw") == "1"
	res := s.resolver.Resolve(r.Context(), system, name, allowRaw)

	if res.NotFound {
		writeJSON(w, http.StatusOK, performerResponse{
			OK:       true,
			Version:  apiVersion,
			NotFound: true,
			Error:    res.Diagnostic,
		})
		return
	}

	writeJSON(w, http.StatusOK, performerResponse{
		OK:        true,
		Version:   apiVersion,
		Performer: res.Performer,
		Model:     res.Performer,
		Live:      res.Live,
	})
}
