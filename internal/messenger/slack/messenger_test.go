package slack_test

import (
	"errors"
	"testing"

	slacklib "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	crewslack "github.com/gosuda/crew/internal/messenger/slack"
)

// --- mock SlackAPI ---

type mockSlackAPI struct {
	ephemeralChannel string
	ephemeralUser    string
	ephemeralTS      string
	ephemeralErr     error
}

func (m *mockSlackAPI) PostEphemeral(channelID, userID string, _ ...slacklib.MsgOption) (string, error) {
	m.ephemeralChannel = channelID
	m.ephemeralUser = userID
	if m.ephemeralErr != nil {
		return "", m.ephemeralErr
	}
	return m.ephemeralTS, nil
}

// --- SlackMessenger tests ---

func TestSlackMessenger_SendNotification(t *testing.T) {
	t.Parallel()

	t.Run("success delivers an ephemeral DM", func(t *testing.T) {
		t.Parallel()
		ctx := t.Context()

		api := &mockSlackAPI{ephemeralTS: "1234567890.111111"}
		m := crewslack.NewSlackMessenger(api)

		err := m.SendNotification(ctx, "U123", "you have a new task")

		require.NoError(t, err)
		assert.Equal(t, "U123", api.ephemeralUser)
		assert.Equal(t, "U123", api.ephemeralChannel)
	})

	t.Run("error wraps Slack API error", func(t *testing.T) {
		t.Parallel()
		ctx := t.Context()

		api := &mockSlackAPI{ephemeralErr: errors.New("user_not_found")}
		m := crewslack.NewSlackMessenger(api)

		err := m.SendNotification(ctx, "U999", "notification")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "slack.SlackMessenger.SendNotification")
		assert.Contains(t, err.Error(), "user_not_found")
	})
}

func TestSlackMessenger_Platform(t *testing.T) {
	t.Parallel()

	m := crewslack.NewSlackMessenger(&mockSlackAPI{})
	assert.Equal(t, "slack", m.Platform())
}
