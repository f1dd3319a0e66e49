package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInProcessPublisherDelivers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pub := NewInProcessPublisher(testLogger())
	defer pub.Close()

	messages, err := pub.Subscribe(ctx, TopicQuestionDeleted)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	event := QuestionDeleted{QuestionID: "q1", AttemptsRemoved: 3, OccurredAt: time.Now().UTC()}
	if err := pub.Publish(ctx, TopicQuestionDeleted, event); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case msg := <-messages:
		msg.Ack()
		var got QuestionDeleted
		if err := json.Unmarshal(msg.Payload, &got); err != nil {
			t.Fatalf("payload unmarshal error = %v", err)
		}
		if got.QuestionID != "q1" || got.AttemptsRemoved != 3 {
			t.Errorf("payload = %+v", got)
		}
		if msg.Metadata.Get("event_type") != TopicQuestionDeleted {
			t.Errorf("event_type = %q", msg.Metadata.Get("event_type"))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestNewPublisher(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantNoop bool
	}{
		{name: "disabled", cfg: Config{Enabled: false}, wantNoop: true},
		{name: "in-process", cfg: Config{Enabled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub, err := NewPublisher(tt.cfg, testLogger())
			if err != nil {
				t.Fatalf("NewPublisher() error = %v", err)
			}
			defer pub.Close()

			_, isNoop := pub.(NoopPublisher)
			if isNoop != tt.wantNoop {
				t.Errorf("NewPublisher() = %T, wantNoop %v", pub, tt.wantNoop)
			}
			if err := pub.Publish(context.Background(), TopicAttemptLogged, AttemptLogged{AttemptID: "a1"}); err != nil {
				t.Errorf("Publish() error = %v", err)
			}
		})
	}
}

func TestPublishRejectsUnmarshalable(t *testing.T) {
	pub := NewInProcessPublisher(testLogger())
	defer pub.Close()

	if err := pub.Publish(context.Background(), TopicAttemptLogged, make(chan int)); err == nil {
		t.Errorf("Publish() expected marshal error")
	}
}
