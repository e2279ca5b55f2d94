package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"onsightnow/internal/platform/metrics"
	"onsightnow/internal/recordstore"
	"onsightnow/internal/resolver/mocks"
	dErrors "onsightnow/pkg/domain-errors"
)

const (
	userID     = "a0000000-0000-0000-0000-000000000001"
	resourceID = "b0000000-0000-0000-0000-000000000001"
	bookingID  = "c0000000-0000-0000-0000-000000000001"
	workOrder  = "d0000000-0000-0000-0000-000000000001"
	expertID   = "b0000000-0000-0000-0000-000000000002"
	expertUser = "a0000000-0000-0000-0000-000000000002"
	bookingsNm = "msdyn_msdyn_workorder_bookableresourcebooking_WorkOrder"
)

type ResolverSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	store    *mocks.MockRecordStore
	metrics  *metrics.Metrics
	resolver *Resolver
}

func (s *ResolverSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockRecordStore(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.resolver = New(s.store, WithMetrics(s.metrics))
}

func (s *ResolverSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) TestSingleStepReturnsExtractedValue() {
	s.store.EXPECT().
		Retrieve(gomock.Any(), EntitySystemUser, userID, recordstore.Query{Select: "internalemailaddress"}).
		Return(recordstore.Record{"internalemailaddress": "dispatcher@contoso.com"}, nil)

	value, err := s.resolver.Resolve(context.Background(), SystemUserToEmail(), userID)

	s.Require().NoError(err)
	s.Equal("dispatcher@contoso.com", value)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ResolverSteps.WithLabelValues(EntitySystemUser, metrics.OutcomeSuccess)))
}

func (s *ResolverSuite) TestStepsRunInOrderFeedingEachOutputForward() {
	gomock.InOrder(
		s.store.EXPECT().
			Retrieve(gomock.Any(), EntityBooking, bookingID, recordstore.Query{Select: "_resource_value"}).
			Return(recordstore.Record{"_resource_value": resourceID}, nil),
		s.store.EXPECT().
			Retrieve(gomock.Any(), EntityBookableResource, resourceID, recordstore.Query{Select: "_userid_value"}).
			Return(recordstore.Record{"_userid_value": userID}, nil),
		s.store.EXPECT().
			Retrieve(gomock.Any(), EntitySystemUser, userID, recordstore.Query{Select: "internalemailaddress"}).
			Return(recordstore.Record{"internalemailaddress": "tech@contoso.com"}, nil),
	)

	value, err := s.resolver.Resolve(context.Background(), BookingToEmail(), bookingID)

	s.Require().NoError(err)
	s.Equal("tech@contoso.com", value)
}

func (s *ResolverSuite) TestExpandTakesFirstRelatedRecord() {
	expandQuery := recordstore.Query{Expand: bookingsNm + "($select=bookableresourcebookingid)"}
	s.store.EXPECT().
		Retrieve(gomock.Any(), EntityWorkOrder, workOrder, expandQuery).
		Return(recordstore.Record{bookingsNm: []any{
			map[string]any{"bookableresourcebookingid": bookingID},
			map[string]any{"bookableresourcebookingid": "c0000000-0000-0000-0000-000000000009"},
		}}, nil)

	chain := WorkOrderToEmail(TargetFieldTech)[:1]
	value, err := s.resolver.Resolve(context.Background(), chain, workOrder)

	s.Require().NoError(err)
	s.Equal(bookingID, value)
}

func (s *ResolverSuite) TestExpandOnEmptyCollectionReturnsRecord() {
	rec := recordstore.Record{bookingsNm: []any{}}
	s.store.EXPECT().Retrieve(gomock.Any(), EntityWorkOrder, workOrder, gomock.Any()).Return(rec, nil)

	chain := WorkOrderToEmail(TargetFieldTech)[:1]
	value, err := s.resolver.Resolve(context.Background(), chain, workOrder)

	s.Require().NoError(err)
	s.Equal(rec, value)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ResolverSteps.WithLabelValues(EntityWorkOrder, metrics.OutcomeFallback)))
}

func (s *ResolverSuite) TestExpandOnAbsentCollectionReturnsRecord() {
	rec := recordstore.Record{"msdyn_name": "WO-00042"}
	s.store.EXPECT().Retrieve(gomock.Any(), EntityWorkOrder, workOrder, gomock.Any()).Return(rec, nil)

	chain := WorkOrderToEmail(TargetFieldTech)[:1]
	value, err := s.resolver.Resolve(context.Background(), chain, workOrder)

	s.Require().NoError(err)
	s.Equal(rec, value)
}

func (s *ResolverSuite) TestFallbackRecordCannotFeedNextStep() {
	s.store.EXPECT().
		Retrieve(gomock.Any(), EntityWorkOrder, workOrder, gomock.Any()).
		Return(recordstore.Record{bookingsNm: []any{}}, nil)

	_, err := s.resolver.Resolve(context.Background(), WorkOrderToEmail(TargetFieldTech), workOrder)

	var failure *ResolutionFailure
	s.Require().True(errors.As(err, &failure))
	s.Equal(1, failure.Step)
	s.Equal(EntityBooking, failure.EntityType)
	s.True(dErrors.HasCode(err, dErrors.CodeResolution))
}

func (s *ResolverSuite) TestStoreFailureCarriesStepEntityAndID() {
	gomock.InOrder(
		s.store.EXPECT().
			Retrieve(gomock.Any(), EntityBookableResource, resourceID, gomock.Any()).
			Return(recordstore.Record{"_userid_value": userID}, nil),
		s.store.EXPECT().
			Retrieve(gomock.Any(), EntitySystemUser, userID, gomock.Any()).
			Return(nil, recordstore.ErrAccessDenied),
	)

	_, err := s.resolver.Resolve(context.Background(), BookableResourceToEmail(), resourceID)

	var failure *ResolutionFailure
	s.Require().True(errors.As(err, &failure))
	s.Equal(1, failure.Step)
	s.Equal(EntitySystemUser, failure.EntityType)
	s.Equal(userID, failure.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeResolution))
	s.True(errors.Is(err, recordstore.ErrAccessDenied))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ResolverSteps.WithLabelValues(EntitySystemUser, metrics.OutcomeFailure)))
}

func (s *ResolverSuite) TestNoRetryOnFailure() {
	s.store.EXPECT().
		Retrieve(gomock.Any(), EntitySystemUser, userID, gomock.Any()).
		Return(nil, recordstore.ErrNotFound).
		Times(1)

	_, err := s.resolver.Resolve(context.Background(), SystemUserToEmail(), userID)
	s.True(errors.Is(err, recordstore.ErrNotFound))
}

func (s *ResolverSuite) TestEmptyChainIsValidationError() {
	_, err := s.resolver.Resolve(context.Background(), Chain{}, userID)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ResolverSuite) TestEmptyStartIDFailsBeforeLookup() {
	_, err := s.resolver.Resolve(context.Background(), SystemUserToEmail(), "")

	var failure *ResolutionFailure
	s.Require().True(errors.As(err, &failure))
	s.Equal(0, failure.Step)
}

func (s *ResolverSuite) TestResolveEmail_RemoteExpert() {
	gomock.InOrder(
		s.store.EXPECT().
			Retrieve(gomock.Any(), EntityWorkOrder, workOrder, recordstore.Query{Select: "_msdyn_supportcontact_value"}).
			Return(recordstore.Record{"_msdyn_supportcontact_value": expertID}, nil),
		s.store.EXPECT().
			Retrieve(gomock.Any(), EntityBookableResource, expertID, gomock.Any()).
			Return(recordstore.Record{"_userid_value": expertUser}, nil),
		s.store.EXPECT().
			Retrieve(gomock.Any(), EntitySystemUser, expertUser, gomock.Any()).
			Return(recordstore.Record{"internalemailaddress": "expert@contoso.com"}, nil),
	)

	email, err := s.resolver.ResolveEmail(context.Background(), EntityWorkOrder, workOrder, TargetRemoteExpert)

	s.Require().NoError(err)
	s.Equal("expert@contoso.com", email)
}

func (s *ResolverSuite) TestResolveEmail_NullLeafIsFailure() {
	s.store.EXPECT().
		Retrieve(gomock.Any(), EntitySystemUser, userID, gomock.Any()).
		Return(recordstore.Record{"internalemailaddress": nil}, nil)

	_, err := s.resolver.ResolveEmail(context.Background(), EntitySystemUser, userID, "")

	var failure *ResolutionFailure
	s.Require().True(errors.As(err, &failure))
	s.Equal(0, failure.Step)
	s.Equal(userID, failure.ID)
}

func (s *ResolverSuite) TestResolveEmail_UnknownEntityType() {
	_, err := s.resolver.ResolveEmail(context.Background(), "account", userID, "")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

// TestResolveEmail_AgainstMemoryStore walks the field technician chain end to
// end with Web API projection applied by the store.
func TestResolveEmail_AgainstMemoryStore(t *testing.T) {
	store := recordstore.NewMemoryStore()
	store.Put(EntityWorkOrder, workOrder, recordstore.Record{
		"_msdyn_supportcontact_value": expertID,
		bookingsNm: []any{
			map[string]any{"bookableresourcebookingid": bookingID, "name": "morning"},
		},
	})
	store.Put(EntityBooking, bookingID, recordstore.Record{"_resource_value": resourceID})
	store.Put(EntityBookableResource, resourceID, recordstore.Record{"_userid_value": userID})
	store.Put(EntityBookableResource, expertID, recordstore.Record{"_userid_value": expertUser})
	store.Put(EntitySystemUser, userID, recordstore.Record{"internalemailaddress": "tech@contoso.com"})
	store.Put(EntitySystemUser, expertUser, recordstore.Record{"internalemailaddress": "expert@contoso.com"})

	r := New(store)
	ctx := context.Background()

	tech, err := r.ResolveEmail(ctx, EntityWorkOrder, workOrder, ParseTarget("fieldtech"))
	if err != nil {
		t.Fatalf("field tech: %v", err)
	}
	expert, err := r.ResolveEmail(ctx, EntityWorkOrder, workOrder, ParseTarget("expert"))
	if err != nil {
		t.Fatalf("expert: %v", err)
	}
	if tech != "tech@contoso.com" || expert != "expert@contoso.com" {
		t.Fatalf("got tech=%q expert=%q", tech, expert)
	}
}
