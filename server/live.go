package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/nitevelour/liveapi/classify"
	"github.com/nitevelour/liveapi/config"
	"github.com/nitevelour/liveapi/models"
	"github.com/nitevelour/liveapi/scan"
)

type liveResponse struct {
	OK             bool   `json:"ok"`
	Version        string `json:"version"`
	Count          int    `json:"count"`
	Total          int    `json:"total"`
	Page           int    `json:"page"`
	Size           int    `json:"size"`
	Topic          string `json:"topic"`
	TopicRequested bool   `json:"topicRequested"`
	TopicApplied   bool   `json:"topicApplied"`

	// The window is exposed under three keys; older front-ends read the
	// legacy aliases.
	Performers []models.Performer `json:"performers"`
	Models     []models.Performer `json:"models"`
	Items      []models.Performer `json:"items"`

	Debug *debugInfo `json:"debug,omitempty"`
}

type debugInfo struct {
	Requested debugRequested `json:"requested"`
	Upstream  debugUpstream  `json:"upstream"`
	Matches   debugMatches   `json:"matches"`
}

type debugRequested struct {
	Brands      string `json:"brands"`
	Gender      string `json:"gender"`
	Search      string `json:"search"`
	Live        string `json:"live"`
	Topic       string `json:"topic"`
	StrictTopic bool   `json:"strictTopic"`
}

type debugUpstream struct {
	PagesFetched int `json:"pagesFetched"`
	PageSize     int `json:"pageSize"`
	ItemsSeen    int `json:"itemsSeen"`
	ItemsParsed  int `json:"itemsParsed"`
}

type debugMatches struct {
	BaseCollected  int `json:"baseCollected"`
	TopicCollected int `json:"topicCollected"`
	ServedPool     int `json:"servedPool"`
}

type errorResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Version: apiVersion, Error: "method_not_allowed"})
		return
	}

	q := r.URL.Query()

	page := clampInt(intParam(q, "page", 1), 1, 999)
	size := clampInt(intParam(q, "size", 24), 1, 60)

	brandsParam := strings.TrimSpace(q.Get("brands"))
	if brandsParam == "" {
		brandsParam = strings.TrimSpace(q.Get("brand"))
	}
	brands := parseBrands(brandsParam)
	if len(brands) == 0 {
		brands = config.DefaultBrands
	}

	crit := scan.Criteria{
		Page:        page,
		Size:        size,
		Brands:      brands,
		Gender:      classify.NormalizeGender(q.Get("gender")),
		Search:      strings.TrimSpace(q.Get("search")),
		Topic:       strings.TrimSpace(q.Get("topic")),
		StrictTopic: parseBool(q.Get("strictTopic"), false),
		LiveOnly:    parseBool(q.Get("live"), true),
		Debug:       parseBool(q.Get("debug"), false),
	}

	if !s.cfg.HasCredentials() {
		slog.Error("rejecting listing request", slog.Any("error", config.ErrMissingCredentials))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Version: apiVersion, Error: "missing_crak_config"})
		return
	}

	res, err := s.scanner.Run(r.Context(), crit)
	if err != nil {
		slog.Error("scan failed", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Version: apiVersion,
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	assembled := scan.Assemble(res, crit)

	resp := liveResponse{
		OK:             true,
		Version:        apiVersion,
		Count:          len(assembled.Window),
		Total:          assembled.Total,
		Page:           page,
		Size:           size,
		Topic:          crit.Topic,
		TopicRequested: crit.TopicRequested(),
		TopicApplied:   assembled.TopicApplied,
		Performers:     assembled.Window,
		Models:         assembled.Window,
		Items:          assembled.Window,
	}

	if crit.Debug {
		requestedBrands := brandsParam
		if requestedBrands == "" {
			requestedBrands = "(all)"
		}
		resp.Debug = &debugInfo{
			Requested: debugRequested{
				Brands:      requestedBrands,
				Gender:      string(crit.Gender),
				Search:      crit.Search,
				Live:        strconv.FormatBool(crit.LiveOnly),
				Topic:       crit.Topic,
				StrictTopic: crit.StrictTopic,
			},
			Upstream: debugUpstream{
				PagesFetched: res.PagesFetched,
				PageSize:     s.cfg.UpstreamPageSize,
				ItemsSeen:    res.ItemsSeen,
				ItemsParsed:  res.ItemsParsed,
			},
			Matches: debugMatches{
				BaseCollected:  len(res.Served),
				TopicCollected: len(res.Topic),
				ServedPool:     assembled.Total,
			},
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
