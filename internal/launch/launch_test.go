package launch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"onsightnow/internal/launch/mocks"
	"onsightnow/internal/plugin"
	"onsightnow/internal/recordstore"
	"onsightnow/internal/resolver"
	dErrors "onsightnow/pkg/domain-errors"
)

const (
	userID      = "a0000000-0000-0000-0000-000000000001"
	workOrderID = "d0000000-0000-0000-0000-000000000001"
)

type LaunchSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	resolver *mocks.MockEmailResolver
	meetings *mocks.MockMeetingRunner
	launcher *Launcher
}

func TestLaunchSuite(t *testing.T) {
	suite.Run(t, new(LaunchSuite))
}

func (s *LaunchSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.resolver = mocks.NewMockEmailResolver(s.ctrl)
	s.meetings = mocks.NewMockMeetingRunner(s.ctrl)
	env := func() map[string]string { return map[string]string{plugin.EnvClientID: "id"} }
	s.launcher = New(s.resolver, s.meetings, env, nil)
}

func (s *LaunchSuite) request(target string) Request {
	return Request{
		UserID:         "{" + userID + "}",
		EntityType:     resolver.EntityWorkOrder,
		EntityID:       workOrderID,
		CallTargetType: target,
	}
}

func (s *LaunchSuite) TestResolvesCallerThenCallee() {
	gomock.InOrder(
		s.resolver.EXPECT().
			ResolveEmail(gomock.Any(), resolver.EntitySystemUser, userID, gomock.Any()).
			Return("dispatcher@contoso.com", nil),
		s.resolver.EXPECT().
			ResolveEmail(gomock.Any(), resolver.EntityWorkOrder, workOrderID, resolver.TargetFieldTech).
			Return("tech@contoso.com", nil),
		s.meetings.EXPECT().Execute(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, host plugin.Host) error {
				v, _ := host.Input(plugin.InputParticipantEmails)
				s.Equal("dispatcher@contoso.com,tech@contoso.com", v)
				s.Equal("id", host.Environment()[plugin.EnvClientID])
				host.SetOutput(plugin.OutputMeetingURL, "https://now.test/join/1")
				return nil
			}),
	)

	res, err := s.launcher.Launch(context.Background(), s.request("fieldtech"))

	s.Require().NoError(err)
	s.Equal("https://now.test/join/1", res.MeetingURL)
	s.Equal("dispatcher@contoso.com", res.Caller)
	s.Equal("tech@contoso.com", res.Callee)
}

func (s *LaunchSuite) TestEmptyTargetCallsExpert() {
	s.resolver.EXPECT().ResolveEmail(gomock.Any(), resolver.EntitySystemUser, gomock.Any(), gomock.Any()).Return("me@contoso.com", nil)
	s.resolver.EXPECT().
		ResolveEmail(gomock.Any(), resolver.EntityWorkOrder, workOrderID, resolver.TargetRemoteExpert).
		Return("expert@contoso.com", nil)
	s.meetings.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil)

	res, err := s.launcher.Launch(context.Background(), s.request(""))

	s.Require().NoError(err)
	s.Equal("", res.MeetingURL)
}

func (s *LaunchSuite) TestCallerFailureStopsBeforeCallee() {
	failure := &resolver.ResolutionFailure{Step: 0, EntityType: resolver.EntitySystemUser, ID: userID, Err: recordstore.ErrNotFound}
	s.resolver.EXPECT().ResolveEmail(gomock.Any(), resolver.EntitySystemUser, userID, gomock.Any()).Return("", failure)

	_, err := s.launcher.Launch(context.Background(), s.request("fieldtech"))

	s.ErrorIs(err, failure)
}

func (s *LaunchSuite) TestInvalidRequest() {
	tests := []struct {
		name string
		req  Request
	}{
		{"missing user", Request{EntityType: resolver.EntityWorkOrder, EntityID: workOrderID}},
		{"missing entity type", Request{UserID: userID, EntityID: workOrderID}},
		{"bad entity id", Request{UserID: userID, EntityType: resolver.EntityWorkOrder, EntityID: "WO-1"}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.launcher.Launch(context.Background(), tt.req)
			s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func (s *LaunchSuite) TestPluginErrorPropagates() {
	s.resolver.EXPECT().ResolveEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("x@contoso.com", nil).Times(2)
	s.meetings.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(dErrors.New(dErrors.CodeAuth, "token request failed"))

	_, err := s.launcher.Launch(context.Background(), s.request("expert"))

	s.True(dErrors.HasCode(err, dErrors.CodeAuth))
}
