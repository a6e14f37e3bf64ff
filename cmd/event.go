package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/minjae-dev/asset-management/internal/core/events"
	"github.com/minjae-dev/asset-management/pkg/logger"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event bus commands",
	Long:  `Inspect the event bus: list known event types, publish test events`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test event",
	Long:  `Publish a test event to the event bus for debugging handlers`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		publishTestEvent(args[0])
	},
}

var listEventTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the event types the audit trail records",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range []string{
			events.EventTypeAssignmentCreated,
			events.EventTypeAssignmentUpdated,
			events.EventTypeAssignmentReturned,
			events.EventTypeAssignmentDeleted,
			events.EventTypeAssignmentsImported,
			events.EventTypeAssignmentsExported,
		} {
			fmt.Println(t)
		}
	},
}

var eventData string

func publishTestEvent(eventType string) {
	log := logger.LoggerWrapper()

	eventBus := events.NewEventBus(log)

	eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		log.Info("test handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	testEvent := events.BaseEvent{
		ID:        fmt.Sprintf("test-%d", time.Now().Unix()),
		Type:      eventType,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"message": eventData,
			"source":  "cli-command",
		},
	}

	log.Info("publishing test event", "event_type", eventType, "event_id", testEvent.ID)

	if err := eventBus.Publish(context.Background(), testEvent); err != nil {
		log.Error("failed to publish event", "error", err)
		return
	}

	eventBus.Drain()
	log.Info("test event published successfully")
}

func init() {
	publishEventCmd.Flags().StringVar(&eventData, "data", "test message", "Event data message")

	eventCmd.AddCommand(publishEventCmd)
	eventCmd.AddCommand(listEventTypesCmd)

	rootCmd.AddCommand(eventCmd)
}
