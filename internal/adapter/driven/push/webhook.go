package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/Hiba-Rafique/Calling-System/internal/core/domain"
)

const maxRetries = 3

// Webhook posts wake-up notifications to an external push relay. Transient
// failures are retried with exponential backoff; 4xx responses are not.
type Webhook struct {
	url    string
	client *http.Client
}

func NewWebhook(url string, timeout time.Duration) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type pushRequest struct {
	Kind   string `json:"kind"`
	UserID string `json:"userId"`
	domain.PushNote
}

func (w *Webhook) SendIncomingCall(ctx context.Context, userID string, note domain.PushNote) error {
	return w.post(ctx, "incoming_call", userID, note)
}

func (w *Webhook) SendRoomInvite(ctx context.Context, userID string, note domain.PushNote) error {
	return w.post(ctx, "room_invite", userID, note)
}

func (w *Webhook) post(ctx context.Context, kind, userID string, note domain.PushNote) error {
	body, err := json.Marshal(pushRequest{Kind: kind, UserID: userID, PushNote: note})
	if err != nil {
		return err
	}

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := w.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)

		switch {
		case resp.StatusCode < 300:
			return nil
		case resp.StatusCode >= 500:
			return fmt.Errorf("push relay returned %s", resp.Status)
		default:
			return backoff.Permanent(fmt.Errorf("push relay returned %s", resp.Status))
		}
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	return backoff.Retry(op, b)
}
