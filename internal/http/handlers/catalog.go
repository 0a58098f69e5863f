package handlers

import (
	"net/http"

	"flightschool/internal/domain/models"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) ListFlightTypes(c *gin.Context) {
	list, err := h.catalogService(c).FlightTypes(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handlers) CreateFlightType(c *gin.Context) {
	var in models.FlightType
	if !BindJSONOrError(c, &in) {
		return
	}
	ft, err := h.catalogService(c).CreateFlightType(c.Request.Context(), actor(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ft)
}

func (h *Handlers) ListChargeables(c *gin.Context) {
	list, err := h.catalogService(c).Chargeables(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handlers) CreateChargeable(c *gin.Context) {
	var in models.Chargeable
	if !BindJSONOrError(c, &in) {
		return
	}
	ch, err := h.catalogService(c).CreateChargeable(c.Request.Context(), actor(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ch)
}

// GET /api/lessons?syllabus_id=2
func (h *Handlers) ListLessons(c *gin.Context) {
	syllabusID, ok := queryID(c, "syllabus_id")
	if !ok {
		return
	}
	list, err := h.catalogService(c).Lessons(c.Request.Context(), syllabusID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handlers) CreateLesson(c *gin.Context) {
	var in models.Lesson
	if !BindJSONOrError(c, &in) {
		return
	}
	l, err := h.catalogService(c).CreateLesson(c.Request.Context(), actor(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (h *Handlers) ListSyllabuses(c *gin.Context) {
	list, err := h.trainingService(c).Syllabuses(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handlers) CreateSyllabus(c *gin.Context) {
	var in models.Syllabus
	if !BindJSONOrError(c, &in) {
		return
	}
	s, err := h.trainingService(c).CreateSyllabus(c.Request.Context(), actor(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *Handlers) ListMembershipTypes(c *gin.Context) {
	list, err := h.trainingService(c).MembershipTypes(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handlers) CreateMembershipType(c *gin.Context) {
	var in models.MembershipType
	if !BindJSONOrError(c, &in) {
		return
	}
	mt, err := h.trainingService(c).CreateMembershipType(c.Request.Context(), actor(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mt)
}
