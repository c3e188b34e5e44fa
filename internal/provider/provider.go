// Package provider defines the contract between the sync layer and the
// remote mail provider.
package provider

import (
	"context"
	"errors"
	"fmt"
)

// AuthError indicates that authentication has failed or expired for the
// provider. It is returned by clients when a 401 response is received.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error: %s", e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// Message holds the two header fields the conversation view needs.
type Message struct {
	// Subject is the Subject header, or "No Subject" when absent.
	Subject string

	// From is the raw From header, or "" when absent.
	From string
}

// Client is the surface the sync layer needs from a mail provider:
// list recent message IDs, fetch one message's headers, and submit a
// raw outbound message.
type Client interface {
	// ListMessages returns up to max recent message IDs.
	ListMessages(ctx context.Context, max int) ([]string, error)

	// GetMessage fetches the headers for a single message.
	GetMessage(ctx context.Context, id string) (Message, error)

	// SendRaw submits a raw RFC-822 message for delivery.
	SendRaw(ctx context.Context, raw []byte) error
}
