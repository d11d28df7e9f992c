//go:build e2e

package booking_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	stdhttptest "net/http/httptest"
	"sync"
	"testing"
	"time"

	"staybook/internal/handler/dto/request"
	"staybook/internal/handler/dto/response"
	"staybook/tests/common/authtest"
	"staybook/tests/common/builder"
	"staybook/tests/common/dbtest"
	"staybook/tests/common/httptest"
	"staybook/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL     = "/api/bookings"
	availabilityURL = "/api/properties/%s/availability?check_in=%s&check_out=%s"
	calendarURL     = "/api/properties/%s/calendar?from=%s&days=%d"

	dateLayout = "2006-01-02"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) token(t *testing.T) string {
	t.Helper()
	return authtest.GetToken(t, s.Router, e2e.E2EClientID, e2e.E2EAPIKey)
}

// stayFrom returns a check-in comfortably in the future so past-date
// validation never interferes with the scenario under test.
func stayFrom(daysAhead int) time.Time {
	return time.Now().UTC().AddDate(0, 0, daysAhead).Truncate(24 * time.Hour)
}

func (s *BookingSuite) createBooking(t *testing.T, token string, reqBody request.CreateBookingRequest) response.BookingResponse {
	t.Helper()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.BookingResponse
	err := httptest.DecodeResponseBody(t, w.Body, &created)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	return created
}

// =============================================================================
// TestCreateBooking - Booking creation API tests
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: Booking created with priced breakdown", func() {
		t := s.T()

		propertyID := dbtest.FindPropertyID(t, s.DB, dbtest.SeedPropertyName)
		guestID := dbtest.FindGuestID(t, s.DB, dbtest.SeedGuestEmail)
		token := s.token(t)

		reqBody := builder.NewBookingBuilder().
			WithPropertyID(propertyID).
			WithGuestID(guestID).
			WithStay(stayFrom(30), 3).
			WithGuests(2, 1).
			BuildCreateRequestDTO()

		created := s.createBooking(t, token, reqBody)

		// Seeded base rate is 100.00 per night with no other rules.
		require.Equal(t, "pending", created.Status)
		require.Equal(t, "pending", created.PaymentStatus)
		require.Equal(t, 3, created.Nights)
		require.Equal(t, int64(30000), created.BasePriceCents)
		require.Equal(t, int64(30000), created.TotalPriceCents)
		require.Equal(t, "USD", created.Currency)
		require.Len(t, created.Breakdown, 1)
		require.Equal(t, "base_price", created.Breakdown[0].Type)

		expected := &response.BookingResponse{
			PropertyID:   propertyID,
			PropertyName: dbtest.SeedPropertyName,
			GuestID:      guestID,
			GuestName:    "Jamie Guest",
			Adults:       2,
			Children:     1,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.BookingResponse{},
				"ID", "CheckIn", "CheckOut", "Nights", "BasePriceCents", "TotalPriceCents",
				"Currency", "Status", "PaymentStatus", "SpecialRequests", "Breakdown",
				"CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &created, opts...); diff != "" {
			t.Errorf("Booking response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Error case: Overlapping stay on the same property is rejected", func() {
		t := s.T()

		propertyID := dbtest.FindPropertyID(t, s.DB, dbtest.SeedPropertyName)
		guestID := dbtest.FindGuestID(t, s.DB, dbtest.SeedGuestEmail)
		token := s.token(t)

		checkIn := stayFrom(40)
		first := builder.NewBookingBuilder().
			WithPropertyID(propertyID).
			WithGuestID(guestID).
			WithStay(checkIn, 4).
			BuildCreateRequestDTO()
		s.createBooking(t, token, first)

		// Second stay starts inside the first one.
		second := builder.NewBookingBuilder().
			WithPropertyID(propertyID).
			WithGuestID(guestID).
			WithStay(checkIn.AddDate(0, 0, 2), 4).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, second, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		require.Contains(t, w.Body.String(), "conflicts")
	})

	s.Run("Normal case: Back-to-back stays do not conflict", func() {
		t := s.T()

		propertyID := dbtest.FindPropertyID(t, s.DB, dbtest.SeedPropertyName)
		guestID := dbtest.FindGuestID(t, s.DB, dbtest.SeedGuestEmail)
		token := s.token(t)

		checkIn := stayFrom(40)
		first := builder.NewBookingBuilder().
			WithPropertyID(propertyID).
			WithGuestID(guestID).
			WithStay(checkIn, 3).
			BuildCreateRequestDTO()
		s.createBooking(t, token, first)

		// Next guest arrives on the previous checkout day.
		second := builder.NewBookingBuilder().
			WithPropertyID(propertyID).
			WithGuestID(guestID).
			WithStay(checkIn.AddDate(0, 0, 3), 3).
			BuildCreateRequestDTO()
		s.createBooking(t, token, second)
	})

	s.Run("Error case: Minimum stay restriction blocks short bookings", func() {
		t := s.T()

		propertyID := dbtest.CreateTestProperty(t, s.DB, "Mountain Lodge", 4)
		dbtest.CreateBaseRate(t, s.DB, propertyID, 150.00)
		dbtest.CreateRestriction(t, s.DB, propertyID, "min_stay", 5)
		guestID := dbtest.FindGuestID(t, s.DB, dbtest.SeedGuestEmail)
		token := s.token(t)

		reqBody := builder.NewBookingBuilder().
			WithPropertyID(propertyID).
			WithGuestID(guestID).
			WithStay(stayFrom(30), 2).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		require.Contains(t, w.Body.String(), "min_stay")
	})

	s.Run("Error case: Party larger than property capacity is rejected", func() {
		t := s.T()

		propertyID := dbtest.CreateTestProperty(t, s.DB, "Tiny Cabin", 2)
		dbtest.CreateBaseRate(t, s.DB, propertyID, 80.00)
		guestID := dbtest.FindGuestID(t, s.DB, dbtest.SeedGuestEmail)
		token := s.token(t)

		reqBody := builder.NewBookingBuilder().
			WithPropertyID(propertyID).
			WithGuestID(guestID).
			WithStay(stayFrom(30), 3).
			WithGuests(3, 1).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		require.Contains(t, w.Body.String(), "max_guests")
	})

	s.Run("Error case: Unknown property returns not found", func() {
		t := s.T()

		guestID := dbtest.FindGuestID(t, s.DB, dbtest.SeedGuestEmail)
		token := s.token(t)

		reqBody := builder.NewBookingBuilder().
			WithPropertyID(uuid.New()).
			WithGuestID(guestID).
			WithStay(stayFrom(30), 3).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})

	s.Run("Auth test - Unauthorized without a token", func() {
		t := s.T()

		propertyID := dbtest.FindPropertyID(t, s.DB, dbtest.SeedPropertyName)
		guestID := dbtest.FindGuestID(t, s.DB, dbtest.SeedGuestEmail)

		reqBody := builder.NewBookingBuilder().
			WithPropertyID(propertyID).
			WithGuestID(guestID).
			WithStay(stayFrom(30), 3).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, "Should reject unauthorized access")
	})
}

// =============================================================================
// TestConcurrentCreation - Double-booking race under simultaneous requests
// =============================================================================

func (s *BookingSuite) TestConcurrentCreation() {
	s.Run("Normal case: Only one of two simultaneous bookings wins", func() {
		t := s.T()

		propertyID := dbtest.FindPropertyID(t, s.DB, dbtest.SeedPropertyName)
		guestID := dbtest.FindGuestID(t, s.DB, dbtest.SeedGuestEmail)
		token := s.token(t)

		checkIn := stayFrom(45)
		reqBody := builder.NewBookingBuilder().
			WithPropertyID(propertyID).
			WithGuestID(guestID).
			WithStay(checkIn, 2).
			BuildCreateRequestDTO()
		payload, err := json.Marshal(reqBody)
		require.NoError(t, err)

		// No assertions inside the goroutines; they only record status
		// codes so a failure cannot call FailNow off the test goroutine.
		codes := make([]int, 2)
		start := make(chan struct{})
		var wg sync.WaitGroup
		for i := range codes {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				req := stdhttptest.NewRequest(http.MethodPost, bookingsURL, bytes.NewReader(payload))
				req.Header.Set("Content-Type", "application/json")
				req.Header.Set("Authorization", "Bearer "+token)
				w := stdhttptest.NewRecorder()
				s.Router.ServeHTTP(w, req)
				codes[i] = w.Code
			}(i)
		}
		close(start)
		wg.Wait()

		require.ElementsMatch(t, []int{http.StatusCreated, http.StatusConflict}, codes,
			"exactly one request may create the booking")

		// The winner occupies the range; the loser left nothing behind.
		url := fmt.Sprintf(availabilityURL, propertyID,
			checkIn.Format(dateLayout), checkIn.AddDate(0, 0, 2).Format(dateLayout))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var availability response.AvailabilityResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &availability))
		require.False(t, availability.Available)
		require.NotNil(t, availability.Conflict)
		require.Equal(t, "pending", availability.Conflict.Status)
	})
}

// =============================================================================
// TestGetBooking - Booking detail retrieval API tests
// =============================================================================

func (s *BookingSuite) TestGetBooking() {
	s.Run("Normal case: Booking retrieved successfully by ID", func() {
		t := s.T()

		propertyID := dbtest.FindPropertyID(t, s.DB, dbtest.SeedPropertyName)
		guestID := dbtest.FindGuestID(t, s.DB, dbtest.SeedGuestEmail)
		token := s.token(t)

		created := s.createBooking(t, token, builder.NewBookingBuilder().
			WithPropertyID(propertyID).
			WithGuestID(guestID).
			WithStay(stayFrom(30), 2).
			BuildCreateRequestDTO())

		url := bookingsURL + "/" + created.ID.String()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var fetched response.BookingResponse
		err := httptest.DecodeResponseBody(t, w.Body, &fetched)
		require.NoError(t, err)

		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.BookingResponse{}, "CheckIn", "CheckOut", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(&created, &fetched, opts...); diff != "" {
			t.Errorf("Booking response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Error case: Returns 404 Not Found for non-existent ID", func() {
		t := s.T()

		token := s.token(t)
		url := bookingsURL + "/" + uuid.New().String()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, token)
		require.Equal(t, http.StatusNotFound, w.Code, "Should return not found for non-existent booking")
	})
}

// =============================================================================
// TestListBookings - Guest booking list API tests
// =============================================================================

func (s *BookingSuite) TestListBookings() {
	type listResponse struct {
		Bookings   []*response.BookingListItemResponse `json:"bookings"`
		NextCursor string                              `json:"next_cursor"`
	}

	s.Run("Normal case: All bookings for a guest are listed", func() {
		t := s.T()

		propertyID := dbtest.FindPropertyID(t, s.DB, dbtest.SeedPropertyName)
		guestID := dbtest.FindGuestID(t, s.DB, dbtest.SeedGuestEmail)
		token := s.token(t)

		checkIn := stayFrom(30)
		s.createBooking(t, token, builder.NewBookingBuilder().
			WithPropertyID(propertyID).WithGuestID(guestID).
			WithStay(checkIn, 2).BuildCreateRequestDTO())
		s.createBooking(t, token, builder.NewBookingBuilder().
			WithPropertyID(propertyID).WithGuestID(guestID).
			WithStay(checkIn.AddDate(0, 0, 10), 2).BuildCreateRequestDTO())

		url := bookingsURL + "?guest_id=" + guestID.String()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var actualRes listResponse
		err := httptest.DecodeResponseBody(t, w.Body, &actualRes)
		require.NoError(t, err)
		require.Len(t, actualRes.Bookings, 2, "Should return 2 bookings")
		require.Empty(t, actualRes.NextCursor, "Single page should carry no cursor")
	})

	s.Run("Normal case: Cursor pagination walks every page exactly once", func() {
		t := s.T()

		propertyID := dbtest.FindPropertyID(t, s.DB, dbtest.SeedPropertyName)
		guestID := dbtest.FindGuestID(t, s.DB, dbtest.SeedGuestEmail)
		token := s.token(t)

		checkIn := stayFrom(30)
		first := s.createBooking(t, token, builder.NewBookingBuilder().
			WithPropertyID(propertyID).WithGuestID(guestID).
			WithStay(checkIn, 2).BuildCreateRequestDTO())
		second := s.createBooking(t, token, builder.NewBookingBuilder().
			WithPropertyID(propertyID).WithGuestID(guestID).
			WithStay(checkIn.AddDate(0, 0, 10), 2).BuildCreateRequestDTO())

		baseURL := bookingsURL + "?guest_id=" + guestID.String() + "&limit=1"
		w1 := httptest.PerformRequest(t, s.Router, http.MethodGet, baseURL, nil, token)
		require.Equal(t, http.StatusOK, w1.Code, w1.Body.String())

		var page1 listResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w1.Body, &page1))
		require.Len(t, page1.Bookings, 1)
		require.NotEmpty(t, page1.NextCursor, "First page should carry a cursor")

		w2 := httptest.PerformRequest(t, s.Router, http.MethodGet, baseURL+"&after="+page1.NextCursor, nil, token)
		require.Equal(t, http.StatusOK, w2.Code, w2.Body.String())

		var page2 listResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w2.Body, &page2))
		require.Len(t, page2.Bookings, 1)

		seen := []uuid.UUID{page1.Bookings[0].ID, page2.Bookings[0].ID}
		require.ElementsMatch(t, []uuid.UUID{first.ID, second.ID}, seen, "Both bookings should appear across pages")
	})

	s.Run("Error case: guest_id is required", func() {
		t := s.T()

		token := s.token(t)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, token)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestUpdateBooking - Booking status update API tests
// =============================================================================

func (s *BookingSuite) TestUpdateBooking() {
	s.Run("Normal case: Pending booking moves to confirmed", func() {
		t := s.T()

		propertyID := dbtest.FindPropertyID(t, s.DB, dbtest.SeedPropertyName)
		guestID := dbtest.FindGuestID(t, s.DB, dbtest.SeedGuestEmail)
		token := s.token(t)

		created := s.createBooking(t, token, builder.NewBookingBuilder().
			WithPropertyID(propertyID).WithGuestID(guestID).
			WithStay(stayFrom(30), 2).BuildCreateRequestDTO())

		confirmed := "confirmed"
		url := bookingsURL + "/" + created.ID.String()
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, url,
			request.UpdateBookingRequest{Status: &confirmed}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &updated))
		require.Equal(t, "confirmed", updated.Status)
		require.NotNil(t, updated.ConfirmedAt, "Confirmation timestamp should be stamped")
	})

	s.Run("Error case: Skipping the lifecycle order is rejected", func() {
		t := s.T()

		propertyID := dbtest.FindPropertyID(t, s.DB, dbtest.SeedPropertyName)
		guestID := dbtest.FindGuestID(t, s.DB, dbtest.SeedGuestEmail)
		token := s.token(t)

		created := s.createBooking(t, token, builder.NewBookingBuilder().
			WithPropertyID(propertyID).WithGuestID(guestID).
			WithStay(stayFrom(30), 2).BuildCreateRequestDTO())

		checkedOut := "checked_out"
		url := bookingsURL + "/" + created.ID.String()
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, url,
			request.UpdateBookingRequest{Status: &checkedOut}, token)
		require.Equal(t, http.StatusConflict, w.Code, "Pending bookings cannot jump to checked_out")
		require.Contains(t, w.Body.String(), "pending")
	})
}

// =============================================================================
// TestCancelAndRebook - Cancellation frees the dates for new bookings
// =============================================================================

func (s *BookingSuite) TestCancelAndRebook() {
	s.Run("Normal case: Cancelled stay can be booked again", func() {
		t := s.T()

		propertyID := dbtest.FindPropertyID(t, s.DB, dbtest.SeedPropertyName)
		guestID := dbtest.FindGuestID(t, s.DB, dbtest.SeedGuestEmail)
		token := s.token(t)

		checkIn := stayFrom(30)
		created := s.createBooking(t, token, builder.NewBookingBuilder().
			WithPropertyID(propertyID).WithGuestID(guestID).
			WithStay(checkIn, 3).BuildCreateRequestDTO())

		cancelURL := bookingsURL + "/" + created.ID.String() + "/cancel"
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, cancelURL,
			request.CancelBookingRequest{Reason: "Change of plans"}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var cancelled response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &cancelled))
		require.Equal(t, "cancelled", cancelled.Status)
		require.NotNil(t, cancelled.CancellationReason)
		require.Equal(t, "Change of plans", *cancelled.CancellationReason)
		require.NotNil(t, cancelled.CancelledAt)

		// The same dates are free again.
		s.createBooking(t, token, builder.NewBookingBuilder().
			WithPropertyID(propertyID).WithGuestID(guestID).
			WithStay(checkIn, 3).BuildCreateRequestDTO())
	})

	s.Run("Error case: Cancelling twice is rejected", func() {
		t := s.T()

		propertyID := dbtest.FindPropertyID(t, s.DB, dbtest.SeedPropertyName)
		guestID := dbtest.FindGuestID(t, s.DB, dbtest.SeedGuestEmail)
		token := s.token(t)

		created := s.createBooking(t, token, builder.NewBookingBuilder().
			WithPropertyID(propertyID).WithGuestID(guestID).
			WithStay(stayFrom(30), 2).BuildCreateRequestDTO())

		cancelURL := bookingsURL + "/" + created.ID.String() + "/cancel"
		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, cancelURL,
			request.CancelBookingRequest{Reason: "First cancellation"}, token)
		require.Equal(t, http.StatusOK, w1.Code, w1.Body.String())

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, cancelURL,
			request.CancelBookingRequest{Reason: "Second cancellation"}, token)
		require.Equal(t, http.StatusConflict, w2.Code, "Cancelled bookings stay cancelled")
	})
}

// =============================================================================
// TestAvailability - Public availability check and calendar API tests
// =============================================================================

func (s *BookingSuite) TestAvailability() {
	s.Run("Normal case: Occupied range reports the blocking booking", func() {
		t := s.T()

		propertyID := dbtest.FindPropertyID(t, s.DB, dbtest.SeedPropertyName)
		guestID := dbtest.FindGuestID(t, s.DB, dbtest.SeedGuestEmail)
		token := s.token(t)

		checkIn := stayFrom(30)
		created := s.createBooking(t, token, builder.NewBookingBuilder().
			WithPropertyID(propertyID).WithGuestID(guestID).
			WithStay(checkIn, 3).BuildCreateRequestDTO())

		// Availability reads are public, no token needed.
		url := fmt.Sprintf(availabilityURL, propertyID,
			checkIn.AddDate(0, 0, 1).Format(dateLayout), checkIn.AddDate(0, 0, 4).Format(dateLayout))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var availability response.AvailabilityResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &availability))
		require.False(t, availability.Available)
		require.NotNil(t, availability.Conflict)
		require.Equal(t, created.ID, availability.Conflict.BookingID)

		freeURL := fmt.Sprintf(availabilityURL, propertyID,
			checkIn.AddDate(0, 0, 10).Format(dateLayout), checkIn.AddDate(0, 0, 12).Format(dateLayout))
		fw := httptest.PerformRequest(t, s.Router, http.MethodGet, freeURL, nil, "")
		require.Equal(t, http.StatusOK, fw.Code, fw.Body.String())

		var free response.AvailabilityResponse
		require.NoError(t, httptest.DecodeResponseBody(t, fw.Body, &free))
		require.True(t, free.Available)
		require.Nil(t, free.Conflict)
	})

	s.Run("Normal case: Calendar marks booked nights and frees the checkout day", func() {
		t := s.T()

		propertyID := dbtest.FindPropertyID(t, s.DB, dbtest.SeedPropertyName)
		guestID := dbtest.FindGuestID(t, s.DB, dbtest.SeedGuestEmail)
		token := s.token(t)

		checkIn := stayFrom(30)
		s.createBooking(t, token, builder.NewBookingBuilder().
			WithPropertyID(propertyID).WithGuestID(guestID).
			WithStay(checkIn, 2).BuildCreateRequestDTO())

		url := fmt.Sprintf(calendarURL, propertyID, checkIn.Format(dateLayout), 4)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var calendar struct {
			PropertyID uuid.UUID                      `json:"property_id"`
			Days       []response.CalendarDayResponse `json:"days"`
		}
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &calendar))
		require.Equal(t, propertyID, calendar.PropertyID)
		require.Len(t, calendar.Days, 4)
		require.True(t, calendar.Days[0].Occupied, "First night should be occupied")
		require.True(t, calendar.Days[1].Occupied, "Second night should be occupied")
		require.False(t, calendar.Days[2].Occupied, "Checkout day should be free")
		require.False(t, calendar.Days[3].Occupied)
	})
}

// =============================================================================
// TestAuditTrail - Booking audit trail API tests
// =============================================================================

func (s *BookingSuite) TestAuditTrail() {
	s.Run("Normal case: Every lifecycle change leaves an audit entry", func() {
		t := s.T()

		propertyID := dbtest.FindPropertyID(t, s.DB, dbtest.SeedPropertyName)
		guestID := dbtest.FindGuestID(t, s.DB, dbtest.SeedGuestEmail)
		token := s.token(t)

		created := s.createBooking(t, token, builder.NewBookingBuilder().
			WithPropertyID(propertyID).WithGuestID(guestID).
			WithStay(stayFrom(30), 2).BuildCreateRequestDTO())

		confirmed := "confirmed"
		url := bookingsURL + "/" + created.ID.String()
		uw := httptest.PerformRequest(t, s.Router, http.MethodPatch, url,
			request.UpdateBookingRequest{Status: &confirmed}, token)
		require.Equal(t, http.StatusOK, uw.Code, uw.Body.String())

		cw := httptest.PerformRequest(t, s.Router, http.MethodPost, url+"/cancel",
			request.CancelBookingRequest{Reason: "Audit check"}, token)
		require.Equal(t, http.StatusOK, cw.Code, cw.Body.String())

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url+"/audit", nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var entries []*response.AuditEntryResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &entries))
		require.Len(t, entries, 3)

		actions := make([]string, len(entries))
		for i, entry := range entries {
			actions[i] = entry.Action
			require.Equal(t, created.ID, entry.BookingID)
		}
		require.ElementsMatch(t, []string{"create", "update", "cancel"}, actions)
	})
}
