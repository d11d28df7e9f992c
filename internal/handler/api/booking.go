package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "staybook/internal/handler/dto/request"
	resdto "staybook/internal/handler/dto/response"
	"staybook/internal/handler/httperr"
	"staybook/internal/pkg/errs"
	"staybook/internal/usecase/commands"
	"staybook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Run the full booking decision: conflict check, restrictions, pricing
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	input, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Dates must use YYYY-MM-DD", nil)
		return
	}

	view, err := h.cmds.Create(c.Request.Context(), input)
	if err != nil {
		abortWithBookingError(c, err, "Create booking failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Get booking by ID with its price breakdown
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithBookingError(c, err, "Get booking failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List guest bookings
// @Description List bookings for a guest with keyset pagination
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param guest_id query string true "Guest ID"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	guestID, err := uuid.Parse(c.Query("guest_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid guest_id", nil)
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			limit = queries.ValidateLimit(iv)
		}
	}
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	items, next, err := h.q.ListByGuest(c.Request.Context(), guestID, cursor, limit)
	if err != nil {
		abortWithBookingError(c, err, "List bookings failed")
		return
	}

	resp := gin.H{"bookings": resdto.FromBookingList(items)}
	if next != nil {
		resp["next_cursor"] = next.After
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Update booking
// @Description Patch mutable booking fields; status changes follow the lifecycle
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingRequest true "Fields to update"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id} [patch]
func (h *BookingHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.UpdateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	view, err := h.cmds.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		abortWithBookingError(c, err, "Update booking failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Cancel booking
// @Description Cancel a booking with a mandatory reason
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest true "Cancellation reason"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.CancelBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Cancellation reason is required", nil)
		return
	}

	view, err := h.cmds.Cancel(c.Request.Context(), id, req.Reason)
	if err != nil {
		abortWithBookingError(c, err, "Cancel booking failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Booking audit trail
// @Description List audit records for a booking, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {array} resdto.AuditEntryResponse
// @Failure 400 {object} map[string]string
// @Router /bookings/{id}/audit [get]
func (h *BookingHandler) AuditTrail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	entries, err := h.q.AuditTrail(c.Request.Context(), id)
	if err != nil {
		abortWithBookingError(c, err, "Get audit trail failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromAuditTrail(entries))
}

// abortWithBookingError maps command and query failures onto HTTP
// statuses. Typed errors carry structured detail; sentinel checks cover
// the rest.
func abortWithBookingError(c *gin.Context, err error, msg string) {
	var (
		validationErr  *commands.ValidationError
		conflictErr    *commands.ConflictError
		restrictionErr *commands.RestrictionError
		stateErr       *commands.StateError
	)

	switch {
	case errors.As(err, &validationErr):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed",
			gin.H{"violations": validationErr.Violations})
	case errors.As(err, &conflictErr):
		httperr.AbortWithError(c, http.StatusConflict, err, "Requested dates are not available",
			gin.H{"conflicts": conflictErr.Conflicts})
	case errors.As(err, &restrictionErr):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Booking blocked by restrictions",
			gin.H{"violations": restrictionErr.Violations})
	case errors.As(err, &stateErr):
		httperr.AbortWithError(c, http.StatusConflict, err, "Illegal status transition",
			gin.H{"from": stateErr.From, "to": stateErr.To})
	case errors.Is(err, errs.ErrBookingNotFound), errors.Is(err, queries.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errors.Is(err, errs.ErrPropertyNotFound), errors.Is(err, queries.ErrPropertyNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Property not found", nil)
	case errors.Is(err, errs.ErrGuestNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Guest not found", nil)
	case errors.Is(err, errs.ErrPropertyInactive):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Property is not accepting bookings", nil)
	case errors.Is(err, errs.ErrGuestBlacklisted):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Guest is not allowed to book", nil)
	case errors.Is(err, errs.ErrNoBaseRate):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "No applicable base rate for the requested dates", nil)
	case errors.Is(err, queries.ErrInvalidDateRange):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date range", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
	}
}
