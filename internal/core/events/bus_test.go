package events_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/minjae-dev/asset-management/internal/core/events"
)

func testEvent(eventType string) events.BaseEvent {
	return events.BaseEvent{
		ID:        "evt-1",
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      map[string]interface{}{"assignment_id": "AS001"},
	}
}

var _ = Describe("EventBus", func() {
	var bus *events.EventBus

	BeforeEach(func() {
		bus = events.NewEventBus(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
	})

	Describe("Publish", func() {
		It("delivers the event to every subscriber", func() {
			var delivered int32
			handler := func(ctx context.Context, event events.Event) error {
				atomic.AddInt32(&delivered, 1)
				return nil
			}
			bus.Subscribe(events.EventTypeAssignmentCreated, handler)
			bus.Subscribe(events.EventTypeAssignmentCreated, handler)

			Expect(bus.Publish(context.Background(), testEvent(events.EventTypeAssignmentCreated))).To(Succeed())

			bus.Drain()
			Expect(atomic.LoadInt32(&delivered)).To(Equal(int32(2)))
		})

		It("keeps handler failures away from the publisher", func() {
			var delivered int32
			bus.Subscribe(events.EventTypeAssignmentDeleted, func(ctx context.Context, event events.Event) error {
				return errors.New("audit write failed")
			})
			bus.Subscribe(events.EventTypeAssignmentDeleted, func(ctx context.Context, event events.Event) error {
				atomic.AddInt32(&delivered, 1)
				return nil
			})

			Expect(bus.Publish(context.Background(), testEvent(events.EventTypeAssignmentDeleted))).To(Succeed())

			bus.Drain()
			Expect(atomic.LoadInt32(&delivered)).To(Equal(int32(1)))
		})

		It("is a no-op without subscribers", func() {
			Expect(bus.Publish(context.Background(), testEvent(events.EventTypeAssignmentUpdated))).To(Succeed())
			bus.Drain()
		})
	})

	Describe("PublishSync", func() {
		It("runs handlers in subscription order", func() {
			var order []string
			bus.Subscribe(events.EventTypeAssignmentReturned, func(ctx context.Context, event events.Event) error {
				order = append(order, "first")
				return nil
			})
			bus.Subscribe(events.EventTypeAssignmentReturned, func(ctx context.Context, event events.Event) error {
				order = append(order, "second")
				return nil
			})

			Expect(bus.PublishSync(context.Background(), testEvent(events.EventTypeAssignmentReturned))).To(Succeed())
			Expect(order).To(Equal([]string{"first", "second"}))
		})

		It("stops at the first failing handler and reports the error", func() {
			var reached bool
			bus.Subscribe(events.EventTypeAssignmentCreated, func(ctx context.Context, event events.Event) error {
				return errors.New("boom")
			})
			bus.Subscribe(events.EventTypeAssignmentCreated, func(ctx context.Context, event events.Event) error {
				reached = true
				return nil
			})

			err := bus.PublishSync(context.Background(), testEvent(events.EventTypeAssignmentCreated))
			Expect(err).To(MatchError(ContainSubstring("assignment.created")))
			Expect(reached).To(BeFalse())
		})
	})

	Describe("assignment events", func() {
		It("carries the assignment identifiers in the payload", func() {
			event := events.NewAssignmentCreatedEvent("AS001", "EMP001", "HW001", "in_use", "7")

			Expect(event.EventType()).To(Equal(events.EventTypeAssignmentCreated))
			Expect(event.EventID()).NotTo(BeEmpty())
			Expect(event.AssignmentID).To(Equal("AS001"))

			payload, ok := event.Payload().(map[string]interface{})
			Expect(ok).To(BeTrue())
			Expect(payload).To(HaveKeyWithValue("employee_id", "EMP001"))
			Expect(payload).To(HaveKeyWithValue("actor_id", "7"))
		})
	})
})
