package notifier

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"github.com/hausly/hausly-escrow-service/internal/domain"
)

// HTTPNotifier шлет колбэки маркетплейсу. Доставка best-effort:
// переход состояния не откатывается из-за недоступности получателя.
type HTTPNotifier struct {
	CallbackURL string
}

func NewHTTPNotifier(callbackURL string) *HTTPNotifier {
	return &HTTPNotifier{CallbackURL: callbackURL}
}

func (n *HTTPNotifier) SendHandoverCallback(payload domain.CallbackPayload) {
	if n.CallbackURL == "" {
		return
	}
	go func() {
		body, err := json.Marshal(payload)
		if err != nil {
			log.Printf("Failed to marshal callback: %v\n", err)
			return
		}

		req, err := http.NewRequest("POST", n.CallbackURL, bytes.NewBuffer(body))
		if err != nil {
			log.Printf("Failed to create callback request: %v\n", err)
			return
		}

		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			log.Printf("Callback failed: %v\n", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			log.Printf("Callback sent to %s\n", n.CallbackURL)
		} else {
			log.Printf("Callback returned status %d", resp.StatusCode)
		}
	}()
}
