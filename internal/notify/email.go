package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// BookingEmail is the payload accepted by the email-send endpoint.
type BookingEmail struct {
	MemberName     string  `json:"memberName"`
	MemberEmail    string  `json:"memberEmail"`
	BookingDate    string  `json:"bookingDate"`
	AircraftReg    string  `json:"aircraftReg"`
	InstructorName *string `json:"instructorName,omitempty"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	FlightType     string  `json:"flightType"`
}

type sendResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Sender delivers booking confirmations.
type Sender interface {
	SendBookingConfirmation(ctx context.Context, msg BookingEmail) error
}

// ErrRejected is returned when the endpoint answers with success=false.
var ErrRejected = errors.New("email endpoint rejected message")

type Client struct {
	Endpoint string
	HTTP     *http.Client
}

// NewSender returns a Client for endpoint, or a no-op sender when endpoint is empty.
func NewSender(endpoint string, timeout time.Duration) Sender {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return Noop{}
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{Endpoint: endpoint, HTTP: &http.Client{Timeout: timeout}}
}

func (c *Client) SendBookingConfirmation(ctx context.Context, msg BookingEmail) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode email: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read email response: %w", err)
	}

	var out sendResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil && resp.StatusCode < 300 {
			return fmt.Errorf("decode email response: %w", err)
		}
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("send email: status %d: %s", resp.StatusCode, strings.TrimSpace(out.Error))
	}
	if !out.Success {
		if out.Error != "" {
			return fmt.Errorf("%w: %s", ErrRejected, out.Error)
		}
		return ErrRejected
	}
	return nil
}

// Noop accepts every message without sending it.
type Noop struct{}

func (Noop) SendBookingConfirmation(context.Context, BookingEmail) error { return nil }
