package onsightstub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"onsightnow/internal/onsight/models"
	"onsightnow/pkg/domain"
	"onsightnow/pkg/platform/httputil"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope"`
}

type oauthError struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func writeOAuthError(w http.ResponseWriter, status int, code, desc string) {
	httputil.WriteJSON(w, status, oauthError{Error: code, Description: desc})
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeOAuthError(w, http.StatusBadRequest, "invalid_request", "malformed form body")
		return
	}
	if grant := domain.GrantType(r.PostForm.Get("grant_type")); !grant.IsValid() {
		writeOAuthError(w, http.StatusBadRequest, "unsupported_grant_type", fmt.Sprintf("grant_type %q is not supported", grant))
		return
	}

	clientID, secret, basic := r.BasicAuth()
	if !basic {
		clientID, secret = r.PostForm.Get("client_id"), r.PostForm.Get("client_secret")
	}
	if !s.authenticate(clientID, secret) {
		s.logger.WarnContext(r.Context(), "token request rejected", "client_id", clientID)
		writeOAuthError(w, http.StatusUnauthorized, "invalid_client", "client authentication failed")
		return
	}

	scopes, ok := requestedScopes(r.PostForm.Get("scope"))
	if !ok {
		writeOAuthError(w, http.StatusBadRequest, "invalid_scope", "requested scope is not grantable")
		return
	}
	token, err := s.tokens.Issue(clientID, scopes)
	if err != nil {
		writeOAuthError(w, http.StatusInternalServerError, "server_error", "")
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	httputil.WriteJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
		Scope:       strings.Join(scopes, " "),
	})
}

type meetingRecord struct {
	owner    string
	response models.CreateMeetingResponse
}

func (s *Server) handleCreateMeeting(w http.ResponseWriter, r *http.Request) {
	var req models.MeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOAuthError(w, http.StatusBadRequest, "invalid_request", "malformed meeting body")
		return
	}
	emails := lo.Compact(req.Participants.Emails)
	if len(emails) == 0 {
		writeOAuthError(w, http.StatusBadRequest, "invalid_request", "at least one participant email is required")
		return
	}
	if err := req.Validate(); err != nil {
		writeOAuthError(w, http.StatusUnprocessableEntity, "invalid_request", err.Error())
		return
	}
	start, _ := req.Start()
	end, _ := req.End()

	id := uuid.New()
	resp := models.CreateMeetingResponse{
		ID:          id,
		Topic:       req.Topic,
		AllowGuests: req.AllowGuests,
		StartTime:   start,
		EndTime:     end,
		Message:     req.Message,
		IsPrivate:   req.IsPrivate,
		Culture:     "en-US",
		Participants: lo.Map(emails, func(email string, _ int) models.Participant {
			return models.Participant{
				Email:     email,
				ID:        uuid.New(),
				MeetingID: id,
				TenantID:  s.tenantID,
			}
		}),
		JoinURL:  s.joinBase + "/" + id.String(),
		TenantID: s.tenantID,
	}

	owner := claimsFrom(r.Context()).ClientID
	s.mu.Lock()
	s.meetings[id] = meetingRecord{owner: owner, response: resp}
	s.mu.Unlock()

	s.logger.InfoContext(r.Context(), "meeting created",
		"meeting_id", id.String(),
		"participants", len(emails),
	)
	httputil.WriteJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetMeeting(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeOAuthError(w, http.StatusBadRequest, "invalid_request", "meeting id must be a uuid")
		return
	}
	s.mu.RLock()
	rec, ok := s.meetings[id]
	s.mu.RUnlock()
	if !ok || rec.owner != claimsFrom(r.Context()).ClientID {
		writeOAuthError(w, http.StatusNotFound, "not_found", "meeting not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec.response)
}

// VariableTurn is the chat variable the stub increments on every reply.
const VariableTurn = "turn"

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOAuthError(w, http.StatusBadRequest, "invalid_request", "malformed chat body")
		return
	}
	if len(req.ChatHistory) == 0 {
		writeOAuthError(w, http.StatusBadRequest, "invalid_request", "chatHistory must not be empty")
		return
	}

	turn := 1
	if prev, ok := models.Lookup(req.Variables, VariableTurn); ok {
		if n, err := strconv.Atoi(prev); err == nil {
			turn = n + 1
		}
	}
	vars := lo.Filter(req.Variables, func(v models.Variable, _ int) bool { return v.Key != VariableTurn })
	vars = append(vars, models.Variable{Key: VariableTurn, Value: strconv.Itoa(turn)})

	last := req.ChatHistory[len(req.ChatHistory)-1]
	httputil.WriteJSON(w, http.StatusOK, models.ChatResponse{
		Value:     fmt.Sprintf("Ida (turn %d) received from %s: %s", turn, last.UserName, last.Content),
		Variables: vars,
	})
}
