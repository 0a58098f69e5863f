package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var p loginPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	res, err := h.authService(c).Login(c.Request.Context(), p.Email, p.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/auth/me
func (h *Handlers) Me(c *gin.Context) {
	a := actor(c)
	u, err := h.memberService(c).Get(c.Request.Context(), a, a.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
