package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"onsightnow/internal/launch"
	"onsightnow/pkg/platform/httputil"
)

// Launcher starts a meeting from a CRM record.
type Launcher interface {
	Launch(ctx context.Context, req launch.Request) (*launch.Result, error)
}

type LaunchHandler struct {
	launcher Launcher
	logger   *slog.Logger
}

func NewLaunchHandler(l Launcher, logger *slog.Logger) *LaunchHandler {
	return &LaunchHandler{launcher: l, logger: logger}
}

func (h *LaunchHandler) Register(r chi.Router) {
	r.Post("/api/launch", h.handleLaunch)
}

type launchResponse struct {
	MeetingURL string `json:"meetingUrl"`
}

// handleLaunch returns only the join URL; the resolved emails stay server side.
func (h *LaunchHandler) handleLaunch(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeJSON[launch.Request](w, r, h.logger)
	if !ok {
		return
	}
	res, err := h.launcher.Launch(r.Context(), *req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, launchResponse{MeetingURL: res.MeetingURL})
}
