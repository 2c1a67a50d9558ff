package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"shortforge/internal/service"
)

const (
	defaultVideoLength = 60
	defaultAspectRatio = "9:16"
)

type generateRequest struct {
	Topic       string `json:"topic"`
	VideoLength *int   `json:"video_length"`
	Ratio       string `json:"ratio"`
}

type generateResponse struct {
	Status    string `json:"status"`
	JobID     string `json:"job_id"`
	StatusURL string `json:"status_url"`
}

// Generate accepts a generation request, queues the job, and returns 202
// with the identifier before any pipeline work starts.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		a.error(w, http.StatusBadRequest, "Missing topic")
		return
	}
	length := defaultVideoLength
	if req.VideoLength != nil {
		length = *req.VideoLength
	}
	if length <= 0 {
		a.error(w, http.StatusBadRequest, "video_length must be a positive integer")
		return
	}
	ratio := strings.TrimSpace(req.Ratio)
	if ratio == "" {
		ratio = defaultAspectRatio
	}

	baseURL := requestBaseURL(r)
	jobID, err := a.Jobs.Submit(r.Context(), service.SubmitRequest{
		Topic:         req.Topic,
		LengthSeconds: length,
		AspectRatio:   ratio,
		BaseURL:       baseURL,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("handlers: submit failed")
		a.error(w, http.StatusInternalServerError, "failed to queue job")
		return
	}

	a.json(w, http.StatusAccepted, generateResponse{
		Status:    "submitted",
		JobID:     jobID,
		StatusURL: baseURL + "/status/" + jobID,
	})
}

// requestBaseURL reconstructs scheme and host as seen by the server, with no
// trailing slash.
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	} else if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
