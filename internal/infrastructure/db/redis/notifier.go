package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/emsapp/employee-records/internal/core/domain"
)

// EmployeeCreatedChannel is the pub/sub channel carrying creation events.
const EmployeeCreatedChannel = "employees.created"

// employeeCreatedEvent is the wire format published on the channel.
type employeeCreatedEvent struct {
	EventID    string  `json:"event_id"`
	EmployeeID string  `json:"employee_id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Position   string  `json:"position"`
	Salary     float64 `json:"salary"`
	Department string  `json:"department"`
	CreatedAt  string  `json:"created_at"`
}

// Notifier publishes employee-created events to Redis pub/sub.
type Notifier struct {
	client *redis.Client
}

func NewNotifier(client *redis.Client) *Notifier {
	return &Notifier{client: client}
}

// EmployeeCreated publishes a single creation event. Each event carries a
// fresh UUID so consumers can correlate log lines.
func (n *Notifier) EmployeeCreated(ctx context.Context, e domain.Employee) error {
	event := employeeCreatedEvent{
		EventID:    uuid.NewString(),
		EmployeeID: e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Position:   e.Position,
		Salary:     e.Salary,
		Department: e.Department,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal employee event: %w", err)
	}
	if err := n.client.Publish(ctx, EmployeeCreatedChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish employee event: %w", err)
	}
	return nil
}

// Subscriber consumes employee-created events and logs receipt. It is the
// in-process counterpart to Notifier and runs until its context is cancelled.
type Subscriber struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewSubscriber(client *redis.Client, log zerolog.Logger) *Subscriber {
	return &Subscriber{client: client, log: log}
}

// Start launches the subscription goroutine.
func (s *Subscriber) Start(ctx context.Context) {
	sub := s.client.Subscribe(ctx, EmployeeCreatedChannel)
	go s.run(ctx, sub)
}

func (s *Subscriber) run(ctx context.Context, sub *redis.PubSub) {
	defer sub.Close()
	ch := sub.Channel()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event employeeCreatedEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				s.log.Warn().Err(err).Msg("undecodable employee event")
				continue
			}
			s.log.Info().
				Str("event_id", event.EventID).
				Str("employee_id", event.EmployeeID).
				Str("email", event.Email).
				Msg("employee created event received")
		}
	}
}
