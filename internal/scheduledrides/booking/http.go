package booking

import (
	"context"
	"fmt"
	"time"

	"prebook/pkg/client"
)

type httpExecutor struct {
	client *client.HttpClient
}

// NewHTTPExecutor talks to the booking API over HTTP with a bounded
// timeout, so a dead network cannot stall a reconciliation pass.
func NewHTTPExecutor(baseURL string, timeout time.Duration) Executor {
	return &httpExecutor{
		client: client.NewHttpClient(baseURL, timeout),
	}
}

type submitResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"booking_id,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

func (e *httpExecutor) Submit(ctx context.Context, req SubmitRequest) (SubmitResult, error) {
	resp, err := e.client.POST(ctx, "/api/v1/rides", req)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("booking request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return SubmitResult{}, fmt.Errorf("booking API returned status %d", resp.StatusCode)
	}

	var body submitResponse
	if err := resp.DecodeJSON(&body); err != nil {
		return SubmitResult{}, fmt.Errorf("failed to decode booking response: %w", err)
	}
	if !body.Success {
		return SubmitResult{}, fmt.Errorf("booking rejected: %s", body.Reason)
	}
	if body.BookingID == "" {
		return SubmitResult{}, fmt.Errorf("booking API returned success without a booking id")
	}

	return SubmitResult{BookingID: body.BookingID}, nil
}
