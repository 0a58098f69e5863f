package handlers

import (
	"net/http"

	"flightschool/internal/domain/models"
	"flightschool/internal/services"
	"flightschool/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/members?member=true&staff=false&q=reed
func (h *Handlers) ListMembers(c *gin.Context) {
	f := models.UserFilter{
		MembersOnly: queryBool(c, "member"),
		StaffOnly:   queryBool(c, "staff"),
		Search:      utils.NormalizeSpace(c.Query("q")),
	}
	list, err := h.memberService(c).List(c.Request.Context(), actor(c), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handlers) GetMember(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	u, err := h.memberService(c).Get(c.Request.Context(), actor(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handlers) CreateMember(c *gin.Context) {
	var in services.MemberInput
	if !BindJSONOrError(c, &in) {
		return
	}
	u, err := h.memberService(c).Create(c.Request.Context(), actor(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *Handlers) UpdateMember(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in services.MemberInput
	if !BindJSONOrError(c, &in) {
		return
	}
	u, err := h.memberService(c).Update(c.Request.Context(), actor(c), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handlers) ListMemberships(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := h.trainingService(c).Memberships(c.Request.Context(), actor(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/members/:id/memberships {"membership_type_id":2}
func (h *Handlers) AddMembership(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in services.MembershipInput
	if !BindJSONOrError(c, &in) {
		return
	}
	m, err := h.trainingService(c).AddMembership(c.Request.Context(), actor(c), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *Handlers) ListEnrollments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := h.trainingService(c).Enrollments(c.Request.Context(), actor(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type enrollPayload struct {
	SyllabusID int64 `json:"syllabus_id"`
}

func (h *Handlers) Enroll(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var p enrollPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	e, err := h.trainingService(c).Enroll(c.Request.Context(), actor(c), id, p.SyllabusID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}
