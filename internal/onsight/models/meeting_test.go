package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "onsightnow/pkg/domain-errors"
)

func TestNewMeetingRequest(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.FixedZone("PDT", -7*3600))
	req := NewMeetingRequest(now, []string{"a@contoso.com", "b@contoso.com"})

	assert.Equal(t, DefaultTopic, req.Topic)
	assert.Equal(t, DefaultMessage, req.Message)
	assert.True(t, req.AllowGuests)
	assert.False(t, req.IsPrivate)
	assert.Equal(t, "2024-05-01T09:00:00-07:00", req.StartTime)
	assert.Equal(t, "2024-05-01T09:30:00-07:00", req.EndTime)
	assert.NoError(t, req.Validate())
}

func TestMeetingRequest_WireShape(t *testing.T) {
	req := NewMeetingRequest(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), []string{"a@contoso.com"})
	body, err := json.Marshal(req)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(body, &wire))
	for _, key := range []string{"topic", "message", "allowGuests", "startTime", "endTime", "isPrivate", "participants"} {
		assert.Contains(t, wire, key)
	}
	assert.Equal(t, "2024-05-01T09:00:00+00:00", wire["startTime"])
	participants := wire["participants"].(map[string]any)
	assert.Equal(t, []any{"a@contoso.com"}, participants["emails"])
	assert.Equal(t, []any{}, participants["phoneNumbers"])
}

func TestMeetingRequest_Unbounded(t *testing.T) {
	req := &MeetingRequest{}

	start, err := req.Start()
	require.NoError(t, err)
	end, err := req.End()
	require.NoError(t, err)
	assert.True(t, start.Equal(Unbounded))
	assert.True(t, end.Equal(Unbounded))
	assert.NoError(t, req.Validate())

	req.SetEnd(Unbounded)
	assert.Equal(t, "", req.EndTime)
}

func TestMeetingRequest_Validate(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("end before start", func(t *testing.T) {
		req := &MeetingRequest{}
		req.SetStart(now)
		req.SetEnd(now.Add(-time.Minute))
		assert.True(t, dErrors.HasCode(req.Validate(), dErrors.CodeValidation))
	})

	t.Run("end equal to start", func(t *testing.T) {
		req := &MeetingRequest{}
		req.SetStart(now)
		req.SetEnd(now)
		assert.NoError(t, req.Validate())
	})

	t.Run("open end", func(t *testing.T) {
		req := &MeetingRequest{}
		req.SetStart(now)
		assert.NoError(t, req.Validate())
	})

	t.Run("unparseable start", func(t *testing.T) {
		req := &MeetingRequest{StartTime: "tomorrow"}
		assert.True(t, dErrors.HasCode(req.Validate(), dErrors.CodeValidation))
	})
}

func TestCreateMeetingResponse_Decode(t *testing.T) {
	body := `{
		"id": "3f2c1b8e-8d7a-4d63-9b1f-2a1e4d5c6b7a",
		"ownerId": null,
		"topic": "My Onsight NOW Meeting",
		"allowGuests": true,
		"startTime": "2024-05-01T09:00:00-07:00",
		"endTime": "2024-05-01T09:30:00-07:00",
		"private": false,
		"participants": [{"type": 1, "email": "a@contoso.com", "id": "5a6b7c8d-0000-4000-8000-000000000001",
			"meetingId": "3f2c1b8e-8d7a-4d63-9b1f-2a1e4d5c6b7a", "inviteStatus": 0,
			"tenantId": "11111111-2222-4333-8444-555555555555"}],
		"joinUrl": "https://onsightnow.com/join/abc",
		"tenantId": "11111111-2222-4333-8444-555555555555"
	}`

	var resp CreateMeetingResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, "https://onsightnow.com/join/abc", resp.JoinURL)
	assert.Nil(t, resp.OwnerID)
	require.Len(t, resp.Participants, 1)
	assert.Equal(t, resp.ID, resp.Participants[0].MeetingID)
	assert.Equal(t, resp.TenantID, resp.Participants[0].TenantID)
}
