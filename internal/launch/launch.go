// Package launch starts a meeting from a CRM form: it resolves the current
// user's email and the email of the record's contact, then schedules a
// meeting between them.
package launch

//go:generate mockgen -source=launch.go -destination=mocks/launch_mock.go -package=mocks EmailResolver,MeetingRunner

import (
	"context"
	"log/slog"
	"strings"

	"onsightnow/internal/platform/logger"
	"onsightnow/internal/platform/privacy"
	"onsightnow/internal/plugin"
	"onsightnow/internal/resolver"
	"onsightnow/pkg/domain"
	"onsightnow/pkg/validation"
)

// EmailResolver resolves the email reachable from a record.
type EmailResolver interface {
	ResolveEmail(ctx context.Context, entityType, id string, target resolver.CallTarget) (string, error)
}

// MeetingRunner executes the meeting plugin against a host.
type MeetingRunner interface {
	Execute(ctx context.Context, host plugin.Host) error
}

// Request is what the form command sends.
type Request struct {
	UserID         string `json:"userId" validate:"required"`
	EntityType     string `json:"entityType" validate:"required"`
	EntityID       string `json:"entityId" validate:"required"`
	CallTargetType string `json:"callTargetType"`
}

// Result carries the participants and the join URL. An empty MeetingURL
// means the service declined; callers should not navigate.
type Result struct {
	Caller     string `json:"caller"`
	Callee     string `json:"callee"`
	MeetingURL string `json:"meetingUrl"`
}

// Launcher wires resolution to the meeting plugin.
type Launcher struct {
	resolver EmailResolver
	meetings MeetingRunner
	env      func() map[string]string
	logger   *slog.Logger
}

// New creates a Launcher. env supplies the host environment variables for
// each invocation.
func New(r EmailResolver, m MeetingRunner, env func() map[string]string, l *slog.Logger) *Launcher {
	if l == nil {
		l = logger.Discard()
	}
	return &Launcher{resolver: r, meetings: m, env: env, logger: l}
}

// Launch resolves the caller, then the callee, and schedules the meeting.
// The two resolutions run one after the other.
func (l *Launcher) Launch(ctx context.Context, req Request) (*Result, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	userID, err := domain.ParseUserID(req.UserID)
	if err != nil {
		return nil, err
	}
	recordID, err := domain.ParseRecordID(req.EntityID)
	if err != nil {
		return nil, err
	}

	caller, err := l.resolver.ResolveEmail(ctx, resolver.EntitySystemUser, userID.String(), "")
	if err != nil {
		return nil, err
	}
	target := resolver.ParseTarget(req.CallTargetType)
	callee, err := l.resolver.ResolveEmail(ctx, req.EntityType, recordID.String(), target)
	if err != nil {
		return nil, err
	}

	host := plugin.NewMemoryHost(l.env(), map[string]any{
		plugin.InputParticipantEmails: strings.Join([]string{caller, callee}, ","),
	})
	if err := l.meetings.Execute(ctx, host); err != nil {
		return nil, err
	}

	res := &Result{
		Caller:     caller,
		Callee:     callee,
		MeetingURL: host.OutputString(plugin.OutputMeetingURL),
	}
	l.logger.InfoContext(ctx, "meeting launched",
		"entity_type", req.EntityType,
		"call_target", string(target),
		"caller", privacy.MaskEmail(caller),
		"callee", privacy.MaskEmail(callee),
		"soft_fail", res.MeetingURL == "",
	)
	return res, nil
}
