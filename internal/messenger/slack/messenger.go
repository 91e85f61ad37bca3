package slack

import (
	"context"
	"fmt"

	slacklib "github.com/slack-go/slack"

	"github.com/gosuda/crew/internal/messenger"
)

// SlackAPI abstracts the subset of the Slack client used by SlackMessenger.
// This allows testing without real HTTP calls.
type SlackAPI interface {
	PostEphemeral(channelID, userID string, options ...slacklib.MsgOption) (string, error)
}

// SlackMessenger implements messenger.Messenger for Slack.
type SlackMessenger struct {
	api SlackAPI
}

// Compile-time interface check.
var _ messenger.Messenger = (*SlackMessenger)(nil) //nolint:gochecknoglobals // compile-time check

// NewSlackMessenger creates a SlackMessenger with the given API client.
func NewSlackMessenger(api SlackAPI) *SlackMessenger {
	return &SlackMessenger{api: api}
}

// SendNotification sends an ephemeral notification to a Slack user. The
// userExternalID is used as both the channel and user ID for DM-style
// ephemeral delivery.
func (m *SlackMessenger) SendNotification(_ context.Context, userExternalID, text string) error {
	_, err := m.api.PostEphemeral(userExternalID, userExternalID, slacklib.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("slack.SlackMessenger.SendNotification: %w", err)
	}

	return nil
}

// Platform returns "slack".
func (m *SlackMessenger) Platform() string {
	return "slack"
}
