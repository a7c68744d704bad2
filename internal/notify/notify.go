// Package notify delivers best-effort push notifications summarizing a
// detection run.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"imageprocessor/internal/domain"
)

// Status is the outcome of a notification attempt.
type Status string

const (
	StatusSent    Status = "sent"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Result reports what happened to a notification. Failures are carried as a
// value so callers decide to log and drop them.
type Result struct {
	Status Status
	Reason string
	Err    error
}

func Sent() Result { return Result{Status: StatusSent} }

func Skipped(reason string) Result { return Result{Status: StatusSkipped, Reason: reason} }

func Failed(err error) Result { return Result{Status: StatusFailed, Err: err} }

// OK reports a sent or deliberately skipped notification. A zero Result is
// not OK.
func (r Result) OK() bool { return r.Status == StatusSent || r.Status == StatusSkipped }

// Notifier sends a summary of detections to a user.
type Notifier interface {
	Notify(ctx context.Context, userID string, detections []domain.DetectionResult) Result
}

const messageTitle = "Image Analysis Complete"

// Message is a channel-neutral push payload.
type Message struct {
	Title string
	Body  string
	Data  map[string]string
}

// BuildMessage summarizes detections as "Found N objects including <top>".
func BuildMessage(detections []domain.DetectionResult, now time.Time) (Message, error) {
	body := fmt.Sprintf("Found %d objects", len(detections))
	if len(detections) > 0 {
		body += " including " + detections[0].Label
	}
	if detections == nil {
		detections = []domain.DetectionResult{}
	}
	encoded, err := json.Marshal(detections)
	if err != nil {
		return Message{}, fmt.Errorf("encode detections: %w", err)
	}
	return Message{
		Title: messageTitle,
		Body:  body,
		Data: map[string]string{
			"detections": string(encoded),
			"timestamp":  now.UTC().Format(time.RFC3339Nano),
		},
	}, nil
}

// Noop never sends anything.
type Noop struct{}

func (Noop) Notify(context.Context, string, []domain.DetectionResult) Result {
	return Skipped("notifications disabled")
}

var _ Notifier = Noop{}
