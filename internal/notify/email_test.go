package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientPostsBookingEmail(t *testing.T) {
	var got BookingEmail
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"abc"}}`))
	}))
	defer srv.Close()

	sender := NewSender(srv.URL, time.Second)
	err := sender.SendBookingConfirmation(context.Background(), BookingEmail{
		MemberName:  "Ann Smith",
		MemberEmail: "ann@example.com",
		BookingDate: "2026-03-01",
		AircraftReg: "ZK-ABC",
		StartTime:   "09:00",
		EndTime:     "11:00",
		FlightType:  "Dual",
	})
	require.NoError(t, err)
	assert.Equal(t, "ZK-ABC", got.AircraftReg)
	assert.Nil(t, got.InstructorName)
}

func TestClientSurfacesRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"mailbox unavailable"}`))
	}))
	defer srv.Close()

	err := NewSender(srv.URL, time.Second).SendBookingConfirmation(context.Background(), BookingEmail{})
	assert.True(t, errors.Is(err, ErrRejected))
	assert.Contains(t, err.Error(), "mailbox unavailable")
}

func TestClientSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewSender(srv.URL, time.Second).SendBookingConfirmation(context.Background(), BookingEmail{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestEmptyEndpointIsNoop(t *testing.T) {
	sender := NewSender("  ", 0)
	_, ok := sender.(Noop)
	assert.True(t, ok)
	assert.NoError(t, sender.SendBookingConfirmation(context.Background(), BookingEmail{}))
}
