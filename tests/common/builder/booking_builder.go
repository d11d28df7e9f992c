//go:build unit || e2e

package builder

import (
	"fmt"
	"time"

	dombooking "staybook/internal/domain/booking"
	"staybook/internal/domain/pricing"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/money"
	reqdto "staybook/internal/handler/dto/request"
	"staybook/internal/usecase/commands"
	"staybook/internal/usecase/queries"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	PropertyID       uuid.UUID
	PropertyName     string
	GuestID          uuid.UUID
	GuestName        string
	CheckIn          time.Time
	CheckOut         time.Time
	Adults           int
	Children         int
	NightlyRateCents int64
	Currency         string
	Status           dombooking.Status
	SpecialRequests  string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now()
	checkIn := daterange.Midnight(now.AddDate(0, 0, 7))
	return &BookingBuilder{
		PropertyID:       uuid.New(),
		PropertyName:     "Seaside Cottage",
		GuestID:          uuid.New(),
		GuestName:        "Jamie Guest",
		CheckIn:          checkIn,
		CheckOut:         checkIn.AddDate(0, 0, 3),
		Adults:           2,
		Children:         0,
		NightlyRateCents: 10000,
		Currency:         "USD",
		Status:           dombooking.StatusPending,
		SpecialRequests:  "",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods

func (b *BookingBuilder) Stay() daterange.DateRange {
	stay, err := daterange.New(b.CheckIn, b.CheckOut)
	if err != nil {
		panic(fmt.Sprintf("builder holds an invalid stay: %v", err))
	}
	return stay
}

// BuildQuote produces a single-line quote at the builder's nightly rate.
func (b *BookingBuilder) BuildQuote() pricing.Quote {
	stay := b.Stay()
	nightly := money.New(b.NightlyRateCents)
	total := nightly.MulInt(stay.Nights())
	return pricing.Quote{
		Base:     nightly,
		Total:    total,
		Currency: b.Currency,
		Lines: []pricing.Line{{
			Kind:        pricing.LineBasePrice,
			Description: fmt.Sprintf("Base rate, %d night(s)", stay.Nights()),
			Quantity:    stay.Nights(),
			UnitPrice:   nightly,
			Amount:      total,
		}},
	}
}

// BuildRuleSet is the minimal rule set that prices the builder's stay:
// one active unbounded base rule at the nightly rate.
func (b *BookingBuilder) BuildRuleSet() pricing.RuleSet {
	propertyID := b.PropertyID
	return pricing.RuleSet{
		Base: []pricing.BaseRule{{
			RuleMeta: pricing.RuleMeta{
				ID:         uuid.New(),
				PropertyID: &propertyID,
				Priority:   0,
				Active:     true,
			},
			NightlyRate: money.New(b.NightlyRateCents),
		}},
	}
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	guests, err := dombooking.NewGuestCounts(b.Adults, b.Children)
	if err != nil {
		return nil, err
	}
	entity, err := dombooking.NewBooking(
		b.PropertyID, b.GuestID, b.Stay(), guests, b.BuildQuote(),
		dombooking.NewSpecialRequests(b.SpecialRequests), b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if b.Status != dombooking.StatusPending {
		if err := advanceTo(entity, b.Status, b.UpdatedAt); err != nil {
			return nil, err
		}
	}
	return entity, nil
}

// advanceTo walks the state machine from pending to the target status.
func advanceTo(entity *dombooking.Booking, target dombooking.Status, now time.Time) error {
	path := map[dombooking.Status][]dombooking.Status{
		dombooking.StatusConfirmed:  {dombooking.StatusConfirmed},
		dombooking.StatusCheckedIn:  {dombooking.StatusConfirmed, dombooking.StatusCheckedIn},
		dombooking.StatusCheckedOut: {dombooking.StatusConfirmed, dombooking.StatusCheckedIn, dombooking.StatusCheckedOut},
		dombooking.StatusCancelled:  {dombooking.StatusCancelled},
	}
	for _, next := range path[target] {
		if err := entity.TransitionTo(next, now); err != nil {
			return err
		}
	}
	return nil
}

func (b *BookingBuilder) BuildCreateInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		PropertyID:      b.PropertyID,
		GuestID:         b.GuestID,
		CheckIn:         b.CheckIn,
		CheckOut:        b.CheckOut,
		Adults:          b.Adults,
		Children:        b.Children,
		SpecialRequests: b.SpecialRequests,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	req := reqdto.CreateBookingRequest{
		PropertyID: b.PropertyID,
		GuestID:    b.GuestID,
		CheckIn:    b.CheckIn.Format("2006-01-02"),
		CheckOut:   b.CheckOut.Format("2006-01-02"),
		Adults:     b.Adults,
		Children:   b.Children,
	}
	if b.SpecialRequests != "" {
		requests := b.SpecialRequests
		req.SpecialRequests = &requests
	}
	return req
}

func (b *BookingBuilder) BuildViewQuery() *queries.BookingView {
	id := uuid.New()
	stay := b.Stay()
	total := b.NightlyRateCents * int64(stay.Nights())
	view := &queries.BookingView{
		ID:              id,
		PropertyID:      b.PropertyID,
		PropertyName:    b.PropertyName,
		GuestID:         b.GuestID,
		GuestName:       b.GuestName,
		CheckIn:         stay.CheckIn(),
		CheckOut:        stay.CheckOut(),
		Nights:          stay.Nights(),
		Adults:          b.Adults,
		Children:        b.Children,
		BasePriceCents:  b.NightlyRateCents,
		TotalPriceCents: total,
		Currency:        b.Currency,
		Status:          b.Status.String(),
		PaymentStatus:   dombooking.PaymentPending.String(),
		Breakdown: []queries.BreakdownLineView{{
			Type:           string(pricing.LineBasePrice),
			Description:    fmt.Sprintf("Base rate, %d night(s)", stay.Nights()),
			Quantity:       stay.Nights(),
			UnitPriceCents: b.NightlyRateCents,
			AmountCents:    total,
		}},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.SpecialRequests != "" {
		requests := b.SpecialRequests
		view.SpecialRequests = &requests
	}
	return view
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	stay := b.Stay()
	return &queries.BookingListItem{
		ID:              uuid.New(),
		PropertyID:      b.PropertyID,
		PropertyName:    b.PropertyName,
		CheckIn:         stay.CheckIn(),
		CheckOut:        stay.CheckOut(),
		Status:          b.Status.String(),
		TotalPriceCents: b.NightlyRateCents * int64(stay.Nights()),
		Currency:        b.Currency,
		CreatedAt:       b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildPropertySnapshot() *shared.PropertySnapshot {
	return &shared.PropertySnapshot{
		ID:        b.PropertyID,
		Name:      b.PropertyName,
		MaxGuests: 6,
		Active:    true,
		Currency:  b.Currency,
	}
}

func (b *BookingBuilder) BuildGuestSnapshot() *shared.GuestSnapshot {
	return &shared.GuestSnapshot{
		ID:          b.GuestID,
		Name:        b.GuestName,
		Email:       "jamie@example.com",
		Blacklisted: false,
	}
}

func (b *BookingBuilder) BuildConflict() shared.BookingConflict {
	stay := b.Stay()
	return shared.BookingConflict{
		ID:       uuid.New(),
		CheckIn:  stay.CheckIn(),
		CheckOut: stay.CheckOut(),
		Status:   dombooking.StatusConfirmed.String(),
	}
}

// Fluent builder methods

func (b *BookingBuilder) WithPropertyID(propertyID uuid.UUID) *BookingBuilder {
	b.PropertyID = propertyID
	return b
}

func (b *BookingBuilder) WithGuestID(guestID uuid.UUID) *BookingBuilder {
	b.GuestID = guestID
	return b
}

func (b *BookingBuilder) WithStay(checkIn time.Time, nights int) *BookingBuilder {
	b.CheckIn = daterange.Midnight(checkIn)
	b.CheckOut = b.CheckIn.AddDate(0, 0, nights)
	return b
}

func (b *BookingBuilder) WithGuests(adults, children int) *BookingBuilder {
	b.Adults = adults
	b.Children = children
	return b
}

func (b *BookingBuilder) WithNightlyRate(cents int64) *BookingBuilder {
	b.NightlyRateCents = cents
	return b
}

func (b *BookingBuilder) WithStatus(status dombooking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithSpecialRequests(requests string) *BookingBuilder {
	b.SpecialRequests = requests
	return b
}

func (b *BookingBuilder) WithCreatedAt(createdAt time.Time) *BookingBuilder {
	b.CreatedAt = createdAt
	b.UpdatedAt = createdAt
	return b
}
