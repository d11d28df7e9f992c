//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/restriction"
	"staybook/internal/infra"
	"staybook/internal/infra/db"
	"staybook/internal/pkg/clock"
	"staybook/internal/pkg/config"
	"staybook/internal/pkg/errs"
	"staybook/internal/usecase/commands"
	"staybook/internal/usecase/shared"
	"staybook/tests/common/builder"
	queriesmock "staybook/tests/mock/queries"
	sharedmock "staybook/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingCommandsTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockUoW      *sharedmock.MockUnitOfWork
	mockTx       *sharedmock.MockTx
	mockReads    *sharedmock.MockCommandReads
	mockBookings *sharedmock.MockBookingRepository
	mockAudit    *sharedmock.MockAuditRepository
	mockQueries  *queriesmock.MockBookingQueries
	clock        *clock.MockClock
	cmds         commands.BookingCommands
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUoW = sharedmock.NewMockUnitOfWork(s.mockCtrl)
	s.mockTx = sharedmock.NewMockTx(s.mockCtrl)
	s.mockReads = sharedmock.NewMockCommandReads(s.mockCtrl)
	s.mockBookings = sharedmock.NewMockBookingRepository(s.mockCtrl)
	s.mockAudit = sharedmock.NewMockAuditRepository(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Now())

	s.mockTx.EXPECT().Bookings().Return(s.mockBookings).AnyTimes()
	s.mockTx.EXPECT().Audit().Return(s.mockAudit).AnyTimes()
	s.mockTx.EXPECT().Reads().Return(s.mockReads).AnyTimes()
	s.mockTx.EXPECT().DB().Return(db.DBTX(nil)).AnyTimes()
	s.mockUoW.EXPECT().Reads().Return(s.mockReads).AnyTimes()

	s.cmds = commands.NewBookingCommands(
		s.mockUoW,
		s.mockQueries,
		pricing.NewCalculator("USD"),
		s.clock,
		config.BookingConfig{MaxStayNights: 365, Currency: "USD"},
	)
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

// expectPropertyLock routes the locked transaction callback through the
// suite's mock Tx.
func (s *BookingCommandsTestSuite) expectPropertyLock(propertyID uuid.UUID) {
	s.mockUoW.EXPECT().WithinPropertyLock(gomock.Any(), propertyID, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ uuid.UUID, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.mockTx)
		}).Times(1)
}

func (s *BookingCommandsTestSuite) expectWithin() {
	s.mockUoW.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.mockTx)
		}).Times(1)
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingCommandsTestSuite) TestCreate() {
	s.Run("success: full decision pass creates a pending booking", func() {
		b := builder.NewBookingBuilder().WithNightlyRate(3000)
		input := b.BuildCreateInput()
		view := b.BuildViewQuery()

		s.mockReads.EXPECT().PropertyByID(gomock.Any(), b.PropertyID).
			Return(b.BuildPropertySnapshot(), nil).Times(1)
		s.mockReads.EXPECT().GuestByID(gomock.Any(), b.GuestID).
			Return(b.BuildGuestSnapshot(), nil).Times(1)

		s.expectPropertyLock(b.PropertyID)
		s.mockReads.EXPECT().Conflicts(gomock.Any(), b.PropertyID, gomock.Any()).
			Return(nil, nil).Times(1)
		s.mockReads.EXPECT().Restrictions(gomock.Any(), b.PropertyID).
			Return(restriction.Set{}, nil).Times(1)
		s.mockReads.EXPECT().PricingRules(gomock.Any(), b.PropertyID).
			Return(b.BuildRuleSet(), nil).Times(1)

		var created *booking.Booking
		s.mockBookings.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, entity *booking.Booking) (uuid.UUID, error) {
				created = entity
				return entity.ID(), nil
			}).Times(1)
		s.mockAudit.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, entry shared.AuditEntry) error {
				s.Equal(shared.AuditActionCreate, entry.Action)
				s.Equal(shared.AuditEntityBooking, entry.EntityType)
				return nil
			}).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).
			Return(view, nil).Times(1)

		result, err := s.cmds.Create(context.Background(), input)
		s.Require().NoError(err)
		s.Equal(view, result)

		s.Require().NotNil(created)
		s.Equal(booking.StatusPending, created.Status())
		s.Equal(created.Stay().Nights()*3000, int(created.TotalPrice().Cents()))
	})

	s.Run("error: overlapping booking yields ConflictError", func() {
		b := builder.NewBookingBuilder()
		input := b.BuildCreateInput()

		s.mockReads.EXPECT().PropertyByID(gomock.Any(), b.PropertyID).
			Return(b.BuildPropertySnapshot(), nil).Times(1)
		s.mockReads.EXPECT().GuestByID(gomock.Any(), b.GuestID).
			Return(b.BuildGuestSnapshot(), nil).Times(1)

		s.expectPropertyLock(b.PropertyID)
		existing := b.BuildConflict()
		s.mockReads.EXPECT().Conflicts(gomock.Any(), b.PropertyID, gomock.Any()).
			Return([]shared.BookingConflict{existing}, nil).Times(1)

		_, err := s.cmds.Create(context.Background(), input)
		s.Require().Error(err)

		var conflictErr *commands.ConflictError
		s.Require().ErrorAs(err, &conflictErr)
		s.Require().Len(conflictErr.Conflicts, 1)
		s.Equal(existing.ID, conflictErr.Conflicts[0].ID)
		s.ErrorIs(err, errs.ErrBookingConflict)
	})

	s.Run("error: restriction violations are all reported", func() {
		b := builder.NewBookingBuilder().WithStay(time.Now().AddDate(0, 0, 7), 2)
		input := b.BuildCreateInput()

		s.mockReads.EXPECT().PropertyByID(gomock.Any(), b.PropertyID).
			Return(b.BuildPropertySnapshot(), nil).Times(1)
		s.mockReads.EXPECT().GuestByID(gomock.Any(), b.GuestID).
			Return(b.BuildGuestSnapshot(), nil).Times(1)

		s.expectPropertyLock(b.PropertyID)
		s.mockReads.EXPECT().Conflicts(gomock.Any(), b.PropertyID, gomock.Any()).
			Return(nil, nil).Times(1)
		rules := restriction.Set{
			MinStay: []restriction.MinStayRule{{
				RuleMeta: restriction.RuleMeta{ID: uuid.New(), Active: true},
				Nights:   5,
			}},
			MaxGuests: []restriction.MaxGuestsRule{{
				RuleMeta: restriction.RuleMeta{ID: uuid.New(), Active: true},
				Limit:    1,
			}},
		}
		s.mockReads.EXPECT().Restrictions(gomock.Any(), b.PropertyID).
			Return(rules, nil).Times(1)

		_, err := s.cmds.Create(context.Background(), input)
		s.Require().Error(err)

		var restrictionErr *commands.RestrictionError
		s.Require().ErrorAs(err, &restrictionErr)
		s.Len(restrictionErr.Violations, 2)
		s.ErrorIs(err, errs.ErrRestrictionBlocked)
	})

	s.Run("error: property capacity applies without a rule row", func() {
		b := builder.NewBookingBuilder().WithGuests(5, 3)
		input := b.BuildCreateInput()

		snap := b.BuildPropertySnapshot()
		snap.MaxGuests = 6
		s.mockReads.EXPECT().PropertyByID(gomock.Any(), b.PropertyID).
			Return(snap, nil).Times(1)
		s.mockReads.EXPECT().GuestByID(gomock.Any(), b.GuestID).
			Return(b.BuildGuestSnapshot(), nil).Times(1)

		s.expectPropertyLock(b.PropertyID)
		s.mockReads.EXPECT().Conflicts(gomock.Any(), b.PropertyID, gomock.Any()).
			Return(nil, nil).Times(1)
		s.mockReads.EXPECT().Restrictions(gomock.Any(), b.PropertyID).
			Return(restriction.Set{}, nil).Times(1)

		_, err := s.cmds.Create(context.Background(), input)

		var restrictionErr *commands.RestrictionError
		s.Require().ErrorAs(err, &restrictionErr)
		s.Require().Len(restrictionErr.Violations, 1)
		s.Equal(restriction.KindMaxGuests, restrictionErr.Violations[0].Kind)
	})

	s.Run("error: inactive property", func() {
		b := builder.NewBookingBuilder()
		snap := b.BuildPropertySnapshot()
		snap.Active = false
		s.mockReads.EXPECT().PropertyByID(gomock.Any(), b.PropertyID).
			Return(snap, nil).Times(1)

		_, err := s.cmds.Create(context.Background(), b.BuildCreateInput())
		s.ErrorIs(err, errs.ErrPropertyInactive)
	})

	s.Run("error: unknown property", func() {
		b := builder.NewBookingBuilder()
		s.mockReads.EXPECT().PropertyByID(gomock.Any(), b.PropertyID).
			Return(nil, infra.WrapRepoErr("property not found", nil, infra.KindNotFound)).Times(1)

		_, err := s.cmds.Create(context.Background(), b.BuildCreateInput())
		s.ErrorIs(err, errs.ErrPropertyNotFound)
	})

	s.Run("error: blacklisted guest", func() {
		b := builder.NewBookingBuilder()
		s.mockReads.EXPECT().PropertyByID(gomock.Any(), b.PropertyID).
			Return(b.BuildPropertySnapshot(), nil).Times(1)
		guest := b.BuildGuestSnapshot()
		guest.Blacklisted = true
		s.mockReads.EXPECT().GuestByID(gomock.Any(), b.GuestID).
			Return(guest, nil).Times(1)

		_, err := s.cmds.Create(context.Background(), b.BuildCreateInput())
		s.ErrorIs(err, errs.ErrGuestBlacklisted)
	})

	s.Run("error: no base rate for the property", func() {
		b := builder.NewBookingBuilder()
		input := b.BuildCreateInput()

		s.mockReads.EXPECT().PropertyByID(gomock.Any(), b.PropertyID).
			Return(b.BuildPropertySnapshot(), nil).Times(1)
		s.mockReads.EXPECT().GuestByID(gomock.Any(), b.GuestID).
			Return(b.BuildGuestSnapshot(), nil).Times(1)

		s.expectPropertyLock(b.PropertyID)
		s.mockReads.EXPECT().Conflicts(gomock.Any(), b.PropertyID, gomock.Any()).
			Return(nil, nil).Times(1)
		s.mockReads.EXPECT().Restrictions(gomock.Any(), b.PropertyID).
			Return(restriction.Set{}, nil).Times(1)
		s.mockReads.EXPECT().PricingRules(gomock.Any(), b.PropertyID).
			Return(pricing.RuleSet{}, nil).Times(1)

		_, err := s.cmds.Create(context.Background(), input)
		s.ErrorIs(err, errs.ErrNoBaseRate)
	})

	s.Run("error: insert hitting the exclusion constraint maps to conflict", func() {
		b := builder.NewBookingBuilder()
		input := b.BuildCreateInput()

		s.mockReads.EXPECT().PropertyByID(gomock.Any(), b.PropertyID).
			Return(b.BuildPropertySnapshot(), nil).Times(1)
		s.mockReads.EXPECT().GuestByID(gomock.Any(), b.GuestID).
			Return(b.BuildGuestSnapshot(), nil).Times(1)

		s.expectPropertyLock(b.PropertyID)
		s.mockReads.EXPECT().Conflicts(gomock.Any(), b.PropertyID, gomock.Any()).
			Return(nil, nil).Times(1)
		s.mockReads.EXPECT().Restrictions(gomock.Any(), b.PropertyID).
			Return(restriction.Set{}, nil).Times(1)
		s.mockReads.EXPECT().PricingRules(gomock.Any(), b.PropertyID).
			Return(b.BuildRuleSet(), nil).Times(1)
		s.mockBookings.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("booking overlap", nil, infra.KindConflict)).Times(1)

		_, err := s.cmds.Create(context.Background(), input)

		var conflictErr *commands.ConflictError
		s.Require().ErrorAs(err, &conflictErr)
		s.Empty(conflictErr.Conflicts)
	})

	s.Run("error: field validation rejects bad input before any read", func() {
		cases := []struct {
			name   string
			mutate func(*commands.CreateBookingInput)
			field  string
		}{
			{
				name:   "missing property",
				mutate: func(i *commands.CreateBookingInput) { i.PropertyID = uuid.Nil },
				field:  "property_id",
			},
			{
				name:   "missing guest",
				mutate: func(i *commands.CreateBookingInput) { i.GuestID = uuid.Nil },
				field:  "guest_id",
			},
			{
				name:   "check-in in the past",
				mutate: func(i *commands.CreateBookingInput) { i.CheckIn = time.Now().AddDate(0, 0, -2) },
				field:  "check_in",
			},
			{
				name: "check-out not after check-in",
				mutate: func(i *commands.CreateBookingInput) {
					i.CheckOut = i.CheckIn
				},
				field: "check_out",
			},
			{
				name:   "zero adults",
				mutate: func(i *commands.CreateBookingInput) { i.Adults = 0 },
				field:  "adults",
			},
			{
				name:   "negative children",
				mutate: func(i *commands.CreateBookingInput) { i.Children = -1 },
				field:  "children",
			},
			{
				name: "stay over the configured cap",
				mutate: func(i *commands.CreateBookingInput) {
					i.CheckOut = i.CheckIn.AddDate(0, 0, 400)
				},
				field: "check_out",
			},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				input := builder.NewBookingBuilder().BuildCreateInput()
				tc.mutate(&input)

				_, err := s.cmds.Create(context.Background(), input)

				var validationErr *commands.ValidationError
				s.Require().ErrorAs(err, &validationErr)
				fields := make([]string, len(validationErr.Violations))
				for i, v := range validationErr.Violations {
					fields[i] = v.Field
				}
				s.Contains(fields, tc.field)
			})
		}
	})
}

// ================================================================================
// TestUpdate
// ================================================================================

func (s *BookingCommandsTestSuite) TestUpdate() {
	confirmed := booking.StatusConfirmed.String()

	s.Run("success: legal status transition is persisted and audited", func() {
		entity, err := builder.NewBookingBuilder().BuildDomain()
		s.Require().NoError(err)
		id := entity.ID()
		view := builder.NewBookingBuilder().BuildViewQuery()

		s.expectWithin()
		s.mockReads.EXPECT().BookingByID(gomock.Any(), id).Return(entity, nil).Times(1)
		s.mockBookings.EXPECT().Update(gomock.Any(), gomock.Any(), entity, booking.StatusPending).Return(nil).Times(1)
		s.mockAudit.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, entry shared.AuditEntry) error {
				s.Equal(shared.AuditActionUpdate, entry.Action)
				s.Equal([]string{"status"}, entry.ChangedFields)
				s.Equal("pending", entry.OldValues["status"])
				s.Equal("confirmed", entry.NewValues["status"])
				return nil
			}).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(view, nil).Times(1)

		result, err := s.cmds.Update(context.Background(), id, commands.UpdateBookingInput{Status: &confirmed})
		s.Require().NoError(err)
		s.Equal(view, result)
		s.Equal(booking.StatusConfirmed, entity.Status())
	})

	s.Run("success: empty diff is a no-op without an audit record", func() {
		entity, err := builder.NewBookingBuilder().BuildDomain()
		s.Require().NoError(err)
		id := entity.ID()
		view := builder.NewBookingBuilder().BuildViewQuery()

		s.expectWithin()
		s.mockReads.EXPECT().BookingByID(gomock.Any(), id).Return(entity, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(view, nil).Times(1)

		_, err = s.cmds.Update(context.Background(), id, commands.UpdateBookingInput{})
		s.Require().NoError(err)
	})

	s.Run("success: setting the current status again changes nothing", func() {
		entity, err := builder.NewBookingBuilder().BuildDomain()
		s.Require().NoError(err)
		id := entity.ID()
		pending := booking.StatusPending.String()
		view := builder.NewBookingBuilder().BuildViewQuery()

		s.expectWithin()
		s.mockReads.EXPECT().BookingByID(gomock.Any(), id).Return(entity, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(view, nil).Times(1)

		_, err = s.cmds.Update(context.Background(), id, commands.UpdateBookingInput{Status: &pending})
		s.Require().NoError(err)
	})

	s.Run("error: illegal transition yields StateError", func() {
		entity, err := builder.NewBookingBuilder().BuildDomain()
		s.Require().NoError(err)
		id := entity.ID()
		checkedOut := booking.StatusCheckedOut.String()

		s.expectWithin()
		s.mockReads.EXPECT().BookingByID(gomock.Any(), id).Return(entity, nil).Times(1)

		_, err = s.cmds.Update(context.Background(), id, commands.UpdateBookingInput{Status: &checkedOut})

		var stateErr *commands.StateError
		s.Require().ErrorAs(err, &stateErr)
		s.Equal("pending", stateErr.From)
		s.Equal("checked_out", stateErr.To)
		s.ErrorIs(err, errs.ErrInvalidTransition)
	})

	s.Run("error: booking not found", func() {
		id := uuid.New()
		s.expectWithin()
		s.mockReads.EXPECT().BookingByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)).Times(1)

		_, err := s.cmds.Update(context.Background(), id, commands.UpdateBookingInput{Status: &confirmed})
		s.ErrorIs(err, errs.ErrBookingNotFound)
	})

	s.Run("error: concurrent status change surfaces as StateError", func() {
		entity, err := builder.NewBookingBuilder().BuildDomain()
		s.Require().NoError(err)
		id := entity.ID()

		s.expectWithin()
		s.mockReads.EXPECT().BookingByID(gomock.Any(), id).Return(entity, nil).Times(1)
		s.mockBookings.EXPECT().Update(gomock.Any(), gomock.Any(), entity, booking.StatusPending).
			Return(infra.WrapRepoErr("booking status changed since read", nil, infra.KindConflict)).Times(1)

		_, err = s.cmds.Update(context.Background(), id, commands.UpdateBookingInput{Status: &confirmed})

		var stateErr *commands.StateError
		s.Require().ErrorAs(err, &stateErr)
		s.Equal("pending", stateErr.From)
		s.Equal("confirmed", stateErr.To)
	})

	s.Run("error: allow-list validation", func() {
		badStatus := "sideways"
		badPayment := "partial"
		zero := 0
		one := 1

		cases := []struct {
			name  string
			input commands.UpdateBookingInput
		}{
			{name: "unknown status", input: commands.UpdateBookingInput{Status: &badStatus}},
			{name: "unknown payment status", input: commands.UpdateBookingInput{PaymentStatus: &badPayment}},
			{name: "zero adults", input: commands.UpdateBookingInput{Adults: &zero, Children: &zero}},
			{name: "adults without children", input: commands.UpdateBookingInput{Adults: &one}},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				_, err := s.cmds.Update(context.Background(), uuid.New(), tc.input)

				var validationErr *commands.ValidationError
				s.Require().ErrorAs(err, &validationErr)
			})
		}
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *BookingCommandsTestSuite) TestCancel() {
	s.Run("success: pending booking is cancelled with a reason", func() {
		entity, err := builder.NewBookingBuilder().BuildDomain()
		s.Require().NoError(err)
		id := entity.ID()
		view := builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).BuildViewQuery()

		s.expectWithin()
		s.mockReads.EXPECT().BookingByID(gomock.Any(), id).Return(entity, nil).Times(1)
		s.mockBookings.EXPECT().Update(gomock.Any(), gomock.Any(), entity, booking.StatusPending).Return(nil).Times(1)
		s.mockAudit.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, entry shared.AuditEntry) error {
				s.Equal(shared.AuditActionCancel, entry.Action)
				s.Equal("change of plans", entry.NewValues["cancellation_reason"])
				return nil
			}).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(view, nil).Times(1)

		result, err := s.cmds.Cancel(context.Background(), id, "change of plans")
		s.Require().NoError(err)
		s.Equal(view, result)
		s.Equal(booking.StatusCancelled, entity.Status())
		s.Require().NotNil(entity.CancellationReason())
		s.Equal("change of plans", *entity.CancellationReason())
	})

	s.Run("error: checked-out booking cannot be cancelled", func() {
		entity, err := builder.NewBookingBuilder().WithStatus(booking.StatusCheckedOut).BuildDomain()
		s.Require().NoError(err)
		id := entity.ID()

		s.expectWithin()
		s.mockReads.EXPECT().BookingByID(gomock.Any(), id).Return(entity, nil).Times(1)

		_, err = s.cmds.Cancel(context.Background(), id, "too late")

		var stateErr *commands.StateError
		s.Require().ErrorAs(err, &stateErr)
		s.Equal("checked_out", stateErr.From)
	})

	s.Run("error: cancelling twice fails", func() {
		entity, err := builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).BuildDomain()
		s.Require().NoError(err)
		id := entity.ID()

		s.expectWithin()
		s.mockReads.EXPECT().BookingByID(gomock.Any(), id).Return(entity, nil).Times(1)

		_, err = s.cmds.Cancel(context.Background(), id, "again")

		var stateErr *commands.StateError
		s.Require().ErrorAs(err, &stateErr)
	})

	s.Run("error: booking not found", func() {
		id := uuid.New()
		s.expectWithin()
		s.mockReads.EXPECT().BookingByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)).Times(1)

		_, err := s.cmds.Cancel(context.Background(), id, "missing")
		s.ErrorIs(err, errs.ErrBookingNotFound)
	})

	s.Run("error: cancel racing a concurrent transition yields StateError", func() {
		entity, err := builder.NewBookingBuilder().BuildDomain()
		s.Require().NoError(err)
		id := entity.ID()

		s.expectWithin()
		s.mockReads.EXPECT().BookingByID(gomock.Any(), id).Return(entity, nil).Times(1)
		s.mockBookings.EXPECT().Update(gomock.Any(), gomock.Any(), entity, booking.StatusPending).
			Return(infra.WrapRepoErr("booking status changed since read", nil, infra.KindConflict)).Times(1)

		_, err = s.cmds.Cancel(context.Background(), id, "raced")

		var stateErr *commands.StateError
		s.Require().ErrorAs(err, &stateErr)
		s.Equal("pending", stateErr.From)
		s.Equal("cancelled", stateErr.To)
	})
}
