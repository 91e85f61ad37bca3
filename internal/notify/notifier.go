// Package notify decides whether an assignment event fires and hands it to
// the configured sinks. The decision predicate ("assignee changed and the
// new assignee is present") lives here; message formatting and transport
// are the sinks' concern.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/crew/internal/domain"
	"github.com/gosuda/crew/internal/messenger"
	redisstore "github.com/gosuda/crew/internal/store/redis"
)

// ErrNoMessengerLinks is returned when a user has no linked messenger accounts.
var ErrNoMessengerLinks = errors.New("notify: user has no messenger links") //nolint:gochecknoglobals // sentinel error

// ErrPlatformNotFound is returned when a messenger platform is not registered.
var ErrPlatformNotFound = errors.New("notify: platform not found") //nolint:gochecknoglobals // sentinel error

type EventKind string

const (
	EventAssigned   EventKind = "task_assigned"
	EventReassigned EventKind = "task_reassigned"
)

// Event describes one assignment notification.
type Event struct {
	Kind        EventKind           `json:"kind"`
	TaskID      uuid.UUID           `json:"task_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	DueDate     *time.Time          `json:"due_date,omitempty"`
	Priority    domain.TaskPriority `json:"priority,omitempty"`
	RecipientID uuid.UUID           `json:"recipient_id"`
	AssignerID  uuid.UUID           `json:"assigner_id"`
}

// Decide determines whether an assignment event fires for the transition
// from prev to next. A first assignment fires task_assigned; a change of
// assignee identity fires task_reassigned, but only when the new assignee
// is non-empty. Clearing the assignee fires nothing.
func Decide(prev, next *domain.Task) (EventKind, uuid.UUID, bool) {
	if next == nil {
		return "", uuid.Nil, false
	}
	newAssignee, ok := next.PrimaryAssignee()
	if !ok {
		return "", uuid.Nil, false
	}

	if prev == nil {
		return EventAssigned, newAssignee, true
	}
	oldAssignee, had := prev.PrimaryAssignee()
	if !had {
		return EventAssigned, newAssignee, true
	}
	if oldAssignee != newAssignee {
		return EventReassigned, newAssignee, true
	}
	return "", uuid.Nil, false
}

// MessengerRegistry maps platform names to Messenger implementations.
type MessengerRegistry interface {
	Get(platform string) (messenger.Messenger, bool)
}

// Link ties a user to an external messenger identity.
type Link struct {
	Platform   string
	ExternalID string
}

// LinkResolver finds messenger links for a user.
type LinkResolver interface {
	MessengerLinks(ctx context.Context, userID uuid.UUID) ([]Link, error)
}

// EventPublisher fans an event payload out to other running instances.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Notifier dispatches assignment events to users through their linked
// messenger accounts and publishes them for other instances to pick up.
type Notifier struct {
	messengers MessengerRegistry
	links      LinkResolver
	events     EventPublisher // optional
}

// New creates a Notifier. events may be nil when no fan-out is configured.
func New(messengers MessengerRegistry, links LinkResolver, events EventPublisher) *Notifier {
	return &Notifier{
		messengers: messengers,
		links:      links,
		events:     events,
	}
}

// TaskAssigned applies the decision predicate to the prev -> next transition
// and, when an event fires, delivers it. It returns the fired event, or ok
// false when the transition warrants none.
func (n *Notifier) TaskAssigned(ctx context.Context, prev, next *domain.Task, assigner uuid.UUID) (Event, bool, error) {
	kind, recipient, fire := Decide(prev, next)
	if !fire {
		return Event{}, false, nil
	}

	ev := Event{
		Kind:        kind,
		TaskID:      next.ID,
		Title:       next.Title,
		Description: next.Description,
		DueDate:     next.DueDate,
		Priority:    next.Priority,
		RecipientID: recipient,
		AssignerID:  assigner,
	}

	if err := n.deliver(ctx, ev); err != nil {
		return ev, true, err
	}
	return ev, true, nil
}

func (n *Notifier) deliver(ctx context.Context, ev Event) error {
	if n.events != nil {
		payload, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("notify.Notifier.deliver: marshal: %w", err)
		}
		if err := n.events.Publish(ctx, redisstore.UserChannel(ev.RecipientID), payload); err != nil {
			log.Warn().Err(err).Str("task_id", ev.TaskID.String()).Msg("notify: event publish failed")
		}
	}

	links, err := n.links.MessengerLinks(ctx, ev.RecipientID)
	if err != nil {
		return fmt.Errorf("notify.Notifier.deliver: list links: %w", err)
	}

	if len(links) == 0 {
		log.Info().Str("recipient", ev.RecipientID.String()).Str("kind", string(ev.Kind)).Msg("notify: no messenger links, skipping delivery")
		return nil
	}

	text := summarize(ev)

	// Try each link until one succeeds.
	var lastErr error
	for _, link := range links {
		sendErr := n.notifyVia(ctx, link.Platform, link.ExternalID, text)
		if sendErr == nil {
			return nil
		}
		lastErr = sendErr
	}

	return fmt.Errorf("notify.Notifier.deliver: all links failed: %w", lastErr)
}

func (n *Notifier) notifyVia(ctx context.Context, platform, externalID, text string) error {
	msg, ok := n.messengers.Get(platform)
	if !ok {
		return fmt.Errorf("notify.Notifier.notifyVia: platform %q: %w", platform, ErrPlatformNotFound)
	}

	if err := msg.SendNotification(ctx, externalID, text); err != nil {
		return fmt.Errorf("notify.Notifier.notifyVia: send: %w", err)
	}

	return nil
}

func summarize(ev Event) string {
	verb := "assigned to you"
	if ev.Kind == EventReassigned {
		verb = "reassigned to you"
	}
	return fmt.Sprintf("Task %q %s", ev.Title, verb)
}
