package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/ghuser/restockhub/pkg/events"
	domainevents "github.com/ghuser/restockhub/services/restock/domain/events"
)

// TaskQueueFollowUps is the Temporal task queue hosting follow-up workflows.
// The worker process registers FollowUpWorkflow and FollowUpActivities on it.
const TaskQueueFollowUps = "restock-followups"

// FollowUpInput parameterizes one follow-up: which sent session to track and
// how long to wait before flagging it.
type FollowUpInput struct {
	SessionID string
	UserID    string
	SentAt    time.Time
	Delay     time.Duration
}

// FollowUpWorkflow waits Delay after a session is sent, then publishes a
// followup_due event so the app can nudge the user to chase supplier replies.
// Durable: survives worker restarts between the send and the reminder.
func FollowUpWorkflow(ctx workflow.Context, in FollowUpInput) error {
	if err := workflow.Sleep(ctx, in.Delay); err != nil {
		return err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var a *FollowUpActivities
	return workflow.ExecuteActivity(ctx, a.PublishFollowUpDue, in).Get(ctx, nil)
}

// FollowUpActivities holds the side-effecting half of the follow-up workflow.
type FollowUpActivities struct {
	Bus *events.EventBus
}

// PublishFollowUpDue emits SessionFollowUpDueEvent on the event bus.
func (a *FollowUpActivities) PublishFollowUpDue(ctx context.Context, in FollowUpInput) error {
	event := domainevents.SessionFollowUpDueEvent{
		EventID:    uuid.New(),
		Version:    1,
		SessionID:  in.SessionID,
		UserID:     in.UserID,
		SentAt:     in.SentAt,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal follow-up event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	return a.Bus.Publish(ctx, domainevents.TopicSessionFollowUpDue, msg)
}
