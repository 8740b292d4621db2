package model

import (
	"context"

	"calchat/webhook"
)

// Webhook abstracts the outbound exchange so the model can be driven by a
// fake in tests. *webhook.Client implements it.
type Webhook interface {
	// Send posts one request and returns the reply text, or a
	// *webhook.TransportError.
	Send(ctx context.Context, endpoint string, req webhook.Request) (string, error)
}
