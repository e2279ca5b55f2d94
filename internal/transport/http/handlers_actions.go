// Package httptransport exposes the CRM custom actions and the launch flow
// over HTTP. Handlers stay thin; the plugins hold the logic.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"onsightnow/internal/plugin"
	"onsightnow/pkg/platform/httputil"
	"onsightnow/pkg/requestcontext"
)

// ActionPath is the Web API path under which the custom actions are bound.
const ActionPath = "/api/data/v9.2"

// Executor runs a plugin against a host context.
type Executor interface {
	Execute(ctx context.Context, host plugin.Host) error
}

// ActionHandler serves new_ScheduleNOWMeeting and new_IdaChat.
type ActionHandler struct {
	meeting Executor
	chat    Executor
	env     func() map[string]string
	logger  *slog.Logger
}

func NewActionHandler(meeting, chat Executor, env func() map[string]string, logger *slog.Logger) *ActionHandler {
	return &ActionHandler{meeting: meeting, chat: chat, env: env, logger: logger}
}

func (h *ActionHandler) Register(r chi.Router) {
	r.Post(ActionPath+"/new_ScheduleNOWMeeting", h.handleScheduleMeeting)
	r.Post(ActionPath+"/new_IdaChat", h.handleIdaChat)
}

type scheduleMeetingRequest struct {
	ParticipantEmails string `json:"ParticipantEmails"`
}

type scheduleMeetingResponse struct {
	MeetingURL string `json:"MeetingUrl"`
}

// handleScheduleMeeting returns 200 with an empty MeetingUrl when the
// meetings endpoint rejected the request.
func (h *ActionHandler) handleScheduleMeeting(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeJSON[scheduleMeetingRequest](w, r, h.logger)
	if !ok {
		return
	}
	host := h.host(map[string]any{plugin.InputParticipantEmails: req.ParticipantEmails})
	err := h.meeting.Execute(r.Context(), host)
	h.flushTraces(r, host)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, scheduleMeetingResponse{
		MeetingURL: host.OutputString(plugin.OutputMeetingURL),
	})
}

type idaChatRequest struct {
	ChatInput string `json:"ChatInput"`
}

type idaChatResponse struct {
	ChatOutput string `json:"ChatOutput"`
}

func (h *ActionHandler) handleIdaChat(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeJSON[idaChatRequest](w, r, h.logger)
	if !ok {
		return
	}
	host := h.host(map[string]any{plugin.InputChatInput: req.ChatInput})
	err := h.chat.Execute(r.Context(), host)
	h.flushTraces(r, host)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, idaChatResponse{
		ChatOutput: host.OutputString(plugin.OutputChatOutput),
	})
}

func (h *ActionHandler) host(inputs map[string]any) *plugin.MemoryHost {
	return plugin.NewMemoryHost(h.env(), inputs)
}

// flushTraces copies the plugin trace sink to the debug log. Trace lines can
// carry participant emails, so they stay below the default level.
func (h *ActionHandler) flushTraces(r *http.Request, host *plugin.MemoryHost) {
	for _, line := range host.Traces() {
		h.logger.DebugContext(r.Context(), "plugin trace",
			"request_id", requestcontext.RequestID(r.Context()),
			"line", line,
		)
	}
}
