package plugin

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"onsightnow/internal/onsight/models"
	"onsightnow/internal/platform/tracer"
	dErrors "onsightnow/pkg/domain-errors"
	s "onsightnow/pkg/string"
	"onsightnow/pkg/validation"
)

// Parameter names of the meeting action.
const (
	InputParticipantEmails = "ParticipantEmails"
	OutputMeetingURL       = "MeetingUrl"
)

// MeetingPlugin schedules a meeting with the participants named in
// ParticipantEmails and writes the join URL to MeetingUrl. An empty URL means
// the service declined the request.
type MeetingPlugin struct {
	base
}

// NewMeetingPlugin creates the meeting plugin.
func NewMeetingPlugin(opts ...Option) *MeetingPlugin {
	return &MeetingPlugin{base: newBase(opts)}
}

func (p *MeetingPlugin) Name() string { return "ScheduleNOWMeeting" }

func (p *MeetingPlugin) Execute(ctx context.Context, host Host) error {
	return p.run(ctx, p.Name(), host, func(ctx context.Context) error {
		return p.execute(ctx, host)
	})
}

func (p *MeetingPlugin) execute(ctx context.Context, host Host) error {
	cfg, err := LoadConfig(host.Environment())
	if err != nil {
		return err
	}

	raw, _ := host.Input(InputParticipantEmails)
	list, _ := raw.(string)
	emails, err := ParseParticipants(list)
	if err != nil {
		return err
	}
	host.Trace("Participants: %s", strings.Join(emails, ","))
	p.logger.DebugContext(ctx, "scheduling meeting",
		"participants", len(emails),
		"participant_hashes", lo.Map(emails, func(e string, _ int) string { return tracer.HashEmail(e) }),
	)

	req := models.NewMeetingRequest(p.now(ctx), emails)
	if err := req.Validate(); err != nil {
		return err
	}

	joinURL, err := p.client(cfg).ScheduleMeeting(ctx, req)
	if err != nil {
		return err
	}
	if joinURL == "" {
		host.Trace("Meeting service declined the request; no join URL")
	}
	host.SetOutput(OutputMeetingURL, joinURL)
	return nil
}

// ParseParticipants splits a comma-separated email list. Blank entries are
// dropped and duplicates kept. An empty result or a malformed address is
// validation_failed.
func ParseParticipants(list string) ([]string, error) {
	emails := s.SplitList(list, ",")
	if len(emails) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "ParticipantEmails is required")
	}
	if bad, found := lo.Find(emails, func(e string) bool { return !validation.IsEmail(e) }); found {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid participant email "+bad)
	}
	return emails, nil
}
