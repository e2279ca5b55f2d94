// Package models holds the wire types exchanged with the Onsight NOW service.
package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "onsightnow/pkg/domain-errors"
)

// TimeLayout is the local-time-with-offset format used for meeting times.
const TimeLayout = "2006-01-02T15:04:05-07:00"

// Unbounded stands in for a missing start or end time. It is the largest
// representable meeting time, so an open end never precedes any start.
var Unbounded = time.Date(9999, time.December, 31, 23, 59, 59, 999999900, time.UTC)

// Meeting request defaults.
const (
	DefaultTopic    = "My Onsight NOW Meeting"
	DefaultMessage  = "Please join me in an Onsight NOW meeting."
	DefaultDuration = 30 * time.Minute
)

// MeetingRequest is the body of POST {meetingsEndpoint}. Times travel as
// strings; an empty string means unbounded.
type MeetingRequest struct {
	Topic        string              `json:"topic"`
	Message      string              `json:"message"`
	AllowGuests  bool                `json:"allowGuests"`
	StartTime    string              `json:"startTime"`
	EndTime      string              `json:"endTime"`
	IsPrivate    bool                `json:"isPrivate"`
	Participants MeetingParticipants `json:"participants"`
}

// MeetingParticipants lists invitees. Both lists are always serialized.
type MeetingParticipants struct {
	Emails       []string `json:"emails"`
	PhoneNumbers []string `json:"phoneNumbers"`
}

// NewMeetingRequest returns a request with the standard topic and message,
// guests allowed, starting at now and lasting DefaultDuration.
func NewMeetingRequest(now time.Time, emails []string) *MeetingRequest {
	r := &MeetingRequest{
		Topic:       DefaultTopic,
		Message:     DefaultMessage,
		AllowGuests: true,
		Participants: MeetingParticipants{
			Emails:       emails,
			PhoneNumbers: []string{},
		},
	}
	r.SetStart(now)
	r.SetEnd(now.Add(DefaultDuration))
	return r
}

// Start returns the parsed start time, or Unbounded when unset.
func (r *MeetingRequest) Start() (time.Time, error) {
	return parseMeetingTime(r.StartTime)
}

// End returns the parsed end time, or Unbounded when unset.
func (r *MeetingRequest) End() (time.Time, error) {
	return parseMeetingTime(r.EndTime)
}

func (r *MeetingRequest) SetStart(t time.Time) { r.StartTime = formatMeetingTime(t) }

func (r *MeetingRequest) SetEnd(t time.Time) { r.EndTime = formatMeetingTime(t) }

// Validate checks both times parse and the end does not precede the start.
func (r *MeetingRequest) Validate() error {
	start, err := r.Start()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "invalid meeting start time")
	}
	end, err := r.End()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "invalid meeting end time")
	}
	if end.Before(start) {
		return dErrors.New(dErrors.CodeValidation, "meeting end time precedes start time")
	}
	return nil
}

func parseMeetingTime(s string) (time.Time, error) {
	if s == "" {
		return Unbounded, nil
	}
	return time.Parse(TimeLayout, s)
}

func formatMeetingTime(t time.Time) string {
	if t.Equal(Unbounded) {
		return ""
	}
	return t.Format(TimeLayout)
}

// CreateMeetingResponse is the meetings endpoint's success body.
type CreateMeetingResponse struct {
	ID           uuid.UUID     `json:"id"`
	OwnerID      *uuid.UUID    `json:"ownerId"`
	Topic        string        `json:"topic"`
	AllowGuests  bool          `json:"allowGuests"`
	StartTime    time.Time     `json:"startTime"`
	EndTime      time.Time     `json:"endTime"`
	Message      string        `json:"message"`
	IsPrivate    bool          `json:"private"`
	Culture      string        `json:"culture"`
	Participants []Participant `json:"participants"`
	JoinURL      string        `json:"joinUrl"`
	TenantID     uuid.UUID     `json:"tenantId"`
}

// Participant is one invitee record of a created meeting.
type Participant struct {
	Type         int       `json:"type"`
	Email        string    `json:"email"`
	ID           uuid.UUID `json:"id"`
	MeetingID    uuid.UUID `json:"meetingId"`
	InviteStatus int       `json:"inviteStatus"`
	TenantID     uuid.UUID `json:"tenantId"`
}
