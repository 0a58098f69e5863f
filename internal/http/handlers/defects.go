package handlers

import (
	"net/http"

	"flightschool/internal/domain/models"
	"flightschool/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/defects?aircraft_id=1&status=Open
func (h *Handlers) ListDefects(c *gin.Context) {
	var f models.DefectFilter
	var ok bool
	if f.AircraftID, ok = queryID(c, "aircraft_id"); !ok {
		return
	}
	f.Status = models.DefectStatus(c.Query("status"))
	list, err := h.defectService(c).List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handlers) GetDefect(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	d, err := h.defectService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handlers) ReportDefect(c *gin.Context) {
	var in services.DefectInput
	if !BindJSONOrError(c, &in) {
		return
	}
	d, err := h.defectService(c).Report(c.Request.Context(), actor(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

type statusPayload struct {
	Status string `json:"status"`
}

func (h *Handlers) UpdateDefectStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var p statusPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	d, err := h.defectService(c).UpdateStatus(c.Request.Context(), actor(c), id, models.DefectStatus(p.Status))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

type commentPayload struct {
	Text string `json:"text"`
}

func (h *Handlers) AddDefectComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var p commentPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	d, err := h.defectService(c).AddComment(c.Request.Context(), actor(c), id, p.Text)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}
