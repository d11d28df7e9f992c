package api

import (
	"net/http"
	"strconv"
	"time"

	resdto "staybook/internal/handler/dto/response"
	"staybook/internal/handler/httperr"
	"staybook/internal/pkg/clock"
	"staybook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type AvailabilityHandler struct {
	q     queries.BookingQueries
	clock clock.Clock
}

func NewAvailabilityHandler(q queries.BookingQueries, clk clock.Clock) *AvailabilityHandler {
	return &AvailabilityHandler{q: q, clock: clk}
}

// @Summary Check availability
// @Description Check whether a property is free for a date range
// @Tags properties
// @Produce json
// @Param id path string true "Property ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Router /properties/{id}/availability [get]
func (h *AvailabilityHandler) Check(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid property ID format", nil)
		return
	}

	checkIn, err := time.Parse(dateLayout, c.Query("check_in"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "check_in must use YYYY-MM-DD", nil)
		return
	}
	checkOut, err := time.Parse(dateLayout, c.Query("check_out"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "check_out must use YYYY-MM-DD", nil)
		return
	}

	result, err := h.q.CheckAvailability(c.Request.Context(), propertyID, checkIn, checkOut)
	if err != nil {
		abortWithBookingError(c, err, "Availability check failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityResult(result))
}

// @Summary Availability calendar
// @Description Day-by-day occupancy for a property starting from a date
// @Tags properties
// @Produce json
// @Param id path string true "Property ID"
// @Param from query string false "Start date (YYYY-MM-DD, default today)"
// @Param days query int false "Number of days (default 31)"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /properties/{id}/calendar [get]
func (h *AvailabilityHandler) Calendar(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid property ID format", nil)
		return
	}

	from := h.clock.Now().UTC()
	if v := c.Query("from"); v != "" {
		from, err = time.Parse(dateLayout, v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "from must use YYYY-MM-DD", nil)
			return
		}
	}

	days := 31
	if v := c.Query("days"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil && iv > 0 && iv <= 366 {
			days = iv
		}
	}

	calendar, err := h.q.Calendar(c.Request.Context(), propertyID, from, days)
	if err != nil {
		abortWithBookingError(c, err, "Calendar build failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"property_id": propertyID,
		"days":        resdto.FromCalendar(calendar),
	})
}
