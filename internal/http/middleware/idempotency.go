package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"flightschool/internal/idempotency"
	"flightschool/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	idempotencyHeader = "Idempotency-Key"
	replayedHeader    = "Idempotent-Replayed"
)

type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency deduplicates POSTs that carry an Idempotency-Key header. A
// duplicate of an in-flight request gets 409; a duplicate of a finished one
// gets the stored response. Server errors and panics release the key so the
// client can retry.
// With a nil store the middleware is a no-op.
func Idempotency(store idempotency.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(idempotencyHeader))
		if store == nil || key == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		if len(key) > 128 {
			abortJSON(c, http.StatusBadRequest, "validation_error", "Idempotency-Key too long")
			return
		}
		scoped := c.Request.URL.Path + "|" + key
		if actor, ok := GetActor(c); ok {
			scoped = strconv.FormatInt(actor.UserID, 10) + "|" + scoped
		}

		ctx := c.Request.Context()
		claim, replay, err := store.Claim(ctx, scoped)
		switch {
		case errors.Is(err, idempotency.ErrInFlight):
			abortJSON(c, http.StatusConflict, "conflict", err.Error())
			return
		case err != nil:
			utils.LogError(GetRequestID(c), "idempotency", "claim", err)
			abortJSON(c, http.StatusServiceUnavailable, "idempotency_unavailable", "idempotency store unavailable")
			return
		case replay != nil:
			c.Header(replayedHeader, "true")
			c.Data(replay.Status, replay.ContentType, replay.Body)
			c.Abort()
			return
		}

		// the outcome is recorded even when the client has gone away
		storeCtx := context.WithoutCancel(ctx)
		defer func() {
			if r := recover(); r != nil {
				if err := store.Release(storeCtx, claim); err != nil {
					utils.LogError(GetRequestID(c), "idempotency", "release", err)
				}
				panic(r)
			}
		}()

		w := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		status := w.Status()
		if status >= http.StatusInternalServerError {
			if err := store.Release(storeCtx, claim); err != nil {
				utils.LogError(GetRequestID(c), "idempotency", "release", err)
			}
			return
		}
		resp := idempotency.Response{
			Status:      status,
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.body.Bytes(),
		}
		if err := store.Complete(storeCtx, claim, resp); err != nil {
			utils.LogError(GetRequestID(c), "idempotency", "complete", err)
		}
	}
}
