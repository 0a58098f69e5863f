package middleware

import (
	"net/http"
	"strings"

	"flightschool/internal/domain"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// TokenParser turns a bearer token into the acting user.
type TokenParser interface {
	Parse(token string) (domain.Actor, error)
}

// Auth requires a valid bearer token and stores the Actor on the context.
func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		actor, err := parser.Parse(strings.TrimSpace(token))
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireRoles lets through only actors holding one of roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[strings.ToLower(r)] = true
	}
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "not signed in")
			return
		}
		if !allowed[strings.ToLower(actor.Role)] {
			abortJSON(c, http.StatusForbidden, "forbidden", "role "+actor.Role+" may not perform this action")
			return
		}
		c.Next()
	}
}

func GetActor(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}
