package handlers

import (
	"net/http"

	"flightschool/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) ListAircraft(c *gin.Context) {
	list, err := h.aircraftService(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handlers) GetAircraft(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, err := h.aircraftService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handlers) CreateAircraft(c *gin.Context) {
	var in services.AircraftInput
	if !BindJSONOrError(c, &in) {
		return
	}
	a, err := h.aircraftService(c).Create(c.Request.Context(), actor(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// PUT /api/aircraft/:id
// Meter readings may only move forward.
func (h *Handlers) UpdateAircraft(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in services.AircraftInput
	if !BindJSONOrError(c, &in) {
		return
	}
	a, err := h.aircraftService(c).Update(c.Request.Context(), actor(c), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
