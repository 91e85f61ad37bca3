// Package messenger abstracts the outbound chat platforms used to deliver
// notifications. Implementations handle platform-specific API calls; the
// interface is platform-agnostic.
package messenger

import "context"

// Messenger delivers notifications to a user on one chat platform.
type Messenger interface {
	// SendNotification sends a direct notification to a user by their
	// external platform ID (e.g. Slack user ID). Formatting and delivery
	// details are the implementation's concern.
	SendNotification(ctx context.Context, userExternalID, text string) error

	// Platform returns the messenger platform identifier (e.g. "slack").
	Platform() string
}
