package eventpublisher

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/paybatch/internal/domain"
)

func TestLogPublisher_Publish(t *testing.T) {
	p := NewLogPublisher(zerolog.Nop())

	event := &domain.Event{
		ID:            "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		AggregateID:   "1",
		AggregateType: domain.AggregateTypeAccount,
		EventType:     domain.EventTypeAccountLocked,
		Payload: map[string]any{
			"client_id": uint16(1),
			"total":     "0",
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := p.Publish(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogPublisher_UnmarshalablePayload(t *testing.T) {
	p := NewLogPublisher(zerolog.Nop())

	event := &domain.Event{
		ID:        "id",
		EventType: domain.EventTypeBatchCompleted,
		Payload:   map[string]any{"bad": make(chan int)},
	}

	if err := p.Publish(context.Background(), event); err == nil {
		t.Fatal("expected marshal error")
	}
}
