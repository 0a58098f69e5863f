package handlers

import (
	"net/http"

	"flightschool/internal/domain/models"
	"flightschool/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/bookings?from=2026-03-01&to=2026-03-31&aircraft_id=1&status=confirmed
func (h *Handlers) ListBookings(c *gin.Context) {
	var f models.BookingFilter
	var ok bool
	if f.From, ok = queryTime(c, "from"); !ok {
		return
	}
	if f.To, ok = queryTime(c, "to"); !ok {
		return
	}
	if f.AircraftID, ok = queryID(c, "aircraft_id"); !ok {
		return
	}
	if f.UserID, ok = queryID(c, "user_id"); !ok {
		return
	}
	if f.InstructorID, ok = queryID(c, "instructor_id"); !ok {
		return
	}
	f.Status = models.BookingStatus(c.Query("status"))

	list, err := h.bookingService(c).List(c.Request.Context(), actor(c), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/bookings
func (h *Handlers) CreateMemberBooking(c *gin.Context) {
	var in services.MemberBookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := h.bookingService(c).CreateMember(c.Request.Context(), actor(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// POST /api/bookings/trial
func (h *Handlers) CreateTrialBooking(c *gin.Context) {
	var in services.TrialBookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := h.bookingService(c).CreateTrial(c.Request.Context(), actor(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *Handlers) GetBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := h.bookingService(c).Get(c.Request.Context(), actor(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// PUT /api/bookings/:id
func (h *Handlers) UpdateBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var edit models.BookingEdit
	if !BindJSONOrError(c, &edit) {
		return
	}
	b, err := h.bookingService(c).Edit(c.Request.Context(), actor(c), id, edit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handlers) ConfirmBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := h.bookingService(c).Confirm(c.Request.Context(), actor(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// POST /api/bookings/:id/checkout {"eta":"10:30","route":"NZAR-NZWN"}
func (h *Handlers) CheckoutBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in services.CheckoutInput
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := h.bookingService(c).Checkout(c.Request.Context(), actor(c), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// POST /api/bookings/:id/complete
// Body carries the end readings; create_invoice bills the flight in the same transaction.
func (h *Handlers) CompleteBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in services.CompleteInput
	if !BindJSONOrError(c, &in) {
		return
	}
	res, err := h.bookingService(c).Complete(c.Request.Context(), actor(c), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/bookings/:id/signout-sheet
func (h *Handlers) SignoutSheet(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	pdf, filename, err := h.docsService(c).SignoutSheet(c.Request.Context(), actor(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendPDF(c, pdf, filename)
}

func (h *Handlers) CreateDebrief(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in services.DebriefInput
	if !BindJSONOrError(c, &in) {
		return
	}
	d, err := h.debriefService(c).Create(c.Request.Context(), actor(c), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handlers) GetDebrief(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	d, err := h.debriefService(c).Get(c.Request.Context(), actor(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// POST /api/bookings/:id/solo-signout
func (h *Handlers) SubmitSoloSignout(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in services.SignoutInput
	if !BindJSONOrError(c, &in) {
		return
	}
	s, err := h.signoutService(c).Submit(c.Request.Context(), actor(c), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

// POST /api/bookings/solo-signouts/:id/review
func (h *Handlers) ReviewSoloSignout(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in services.SignoutReview
	if !BindJSONOrError(c, &in) {
		return
	}
	s, err := h.signoutService(c).Review(c.Request.Context(), actor(c), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
