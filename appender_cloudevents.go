package logward

import (
	"context"
	"fmt"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/cloudevents/sdk-go/v2/client"
	"github.com/google/uuid"
)

// EventTypeLogEntry is the CloudEvents type set on every published log entry.
const EventTypeLogEntry = "com.logward.log.entry"

// DefaultEventSource is used when no source is configured for the
// cloudevents appender.
const DefaultEventSource = "logward"

// CloudEventsAppender publishes log entries to a remote endpoint as
// CloudEvents, one event per entry. It is the network destination for a
// logger: the formatted message travels in the event payload together with
// the raw level and category so receivers can filter without re-parsing.
type CloudEventsAppender struct {
	client  client.Client
	source  string
	timeout time.Duration
}

// logEntryData is the payload of a published log entry event.
type logEntryData struct {
	Level    string `json:"level"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// NewCloudEventsAppender creates an appender that sends entries to the HTTP
// target named in the configuration.
func NewCloudEventsAppender(config AppenderConfig) (*CloudEventsAppender, error) {
	if config.CloudEvents == nil {
		return nil, ErrMissingCloudEvents
	}
	if config.CloudEvents.Target == "" {
		return nil, ErrMissingTarget
	}

	c, err := cloudevents.NewClientHTTP(cloudevents.WithTarget(config.CloudEvents.Target))
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudevents client: %w", err)
	}

	source := config.CloudEvents.Source
	if source == "" {
		source = DefaultEventSource
	}

	return &CloudEventsAppender{
		client:  c,
		source:  source,
		timeout: 5 * time.Second,
	}, nil
}

// NewCloudEventsAppenderWithClient creates an appender over an existing
// CloudEvents client. Used when the surrounding application already owns a
// configured client, and by tests.
func NewCloudEventsAppenderWithClient(c client.Client, source string) *CloudEventsAppender {
	if source == "" {
		source = DefaultEventSource
	}
	return &CloudEventsAppender{client: c, source: source, timeout: 5 * time.Second}
}

// Append publishes one entry as a CloudEvent.
func (a *CloudEventsAppender) Append(level Level, category, formatted string) error {
	event := cloudevents.NewEvent()
	event.SetID(uuid.New().String())
	event.SetSource(a.source)
	event.SetType(EventTypeLogEntry)
	event.SetTime(time.Now())
	event.SetSpecVersion(cloudevents.VersionV1)
	event.SetSubject(category)

	if err := event.SetData(cloudevents.ApplicationJSON, logEntryData{
		Level:    level.String(),
		Category: category,
		Message:  formatted,
	}); err != nil {
		return fmt.Errorf("failed to set event data: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if result := a.client.Send(ctx, event); cloudevents.IsUndelivered(result) {
		return fmt.Errorf("%w: %w", ErrEventNotDelivered, result)
	}
	return nil
}

// Flush is a no-op; events are sent synchronously.
func (a *CloudEventsAppender) Flush() error { return nil }
