// Package observe provides structured observability for deployment,
// job-polling and teardown flows.
//
// Components never write to the logger directly; they emit events through an
// Observer so the logging sink stays injectable.
package observe

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Observer is the logging sink for all lifecycle components.
type Observer interface {
	// Printf logs a formatted message.
	Printf(format string, v ...interface{})

	// Event emits a structured event.
	Event(event Event)

	// WithFields returns a new Observer with additional context fields.
	WithFields(fields map[string]string) Observer
}

// Event represents a structured lifecycle event.
type Event struct {
	Type      EventType
	Phase     string            // Phase name (e.g. "apply", "teardown")
	Message   string            // Human-readable message
	Resource  string            // Resource name/ID if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of lifecycle event.
type EventType string

const (
	// EventAttemptStarted indicates a deployment attempt has started.
	EventAttemptStarted EventType = "attempt.started"
	// EventAttemptSucceeded indicates a deployment attempt succeeded.
	EventAttemptSucceeded EventType = "attempt.succeeded"
	// EventAttemptFailed indicates a deployment attempt failed.
	EventAttemptFailed EventType = "attempt.failed"
	// EventAttemptRetrying indicates a failed attempt will be retried.
	EventAttemptRetrying EventType = "attempt.retrying"

	// EventResourceDeleting indicates a resource is being deleted.
	EventResourceDeleting EventType = "resource.deleting"
	// EventResourceDeleted indicates a resource was deleted successfully.
	EventResourceDeleted EventType = "resource.deleted"
	// EventResourceSkipped indicates a resource was intentionally skipped.
	EventResourceSkipped EventType = "resource.skipped"
	// EventResourceFailed indicates a resource operation failed.
	EventResourceFailed EventType = "resource.failed"

	// EventJobPolled indicates a job status query completed.
	EventJobPolled EventType = "job.polled"
)

// Console implements Observer using the standard log package.
type Console struct {
	contextFields map[string]string
}

// NewConsole creates a new console-based observer.
func NewConsole() *Console {
	return &Console{contextFields: make(map[string]string)}
}

// Printf implements Observer.
func (o *Console) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *Console) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if event.Fields == nil {
		event.Fields = make(map[string]string)
	}
	for k, v := range o.contextFields {
		if _, exists := event.Fields[k]; !exists {
			event.Fields[k] = v
		}
	}

	log.Print(o.formatEvent(event))
}

// WithFields implements Observer.
func (o *Console) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string, len(o.contextFields)+len(fields))
	for k, v := range o.contextFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	return &Console{contextFields: newFields}
}

func (o *Console) formatEvent(event Event) string {
	var parts []string

	parts = append(parts, string(event.Type))
	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}
	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}
	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		var fieldParts []string
		for k, v := range event.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, v))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	return strings.Join(parts, " ")
}

// LogResourceDeleting logs a resource deletion start event.
func LogResourceDeleting(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceDeleting,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("deleting %s", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogResourceDeleted logs a successful resource deletion event.
func LogResourceDeleted(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceDeleted,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s deleted", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogResourceFailed logs a failed resource operation.
func LogResourceFailed(observer Observer, phase, resourceType, resourceName string, err error) {
	observer.Event(Event{
		Type:     EventResourceFailed,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("failed to delete %s: %v", resourceType, err),
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogResourceSkipped logs an intentionally skipped resource.
func LogResourceSkipped(observer Observer, phase, resourceType, resourceName, reason string) {
	observer.Event(Event{
		Type:     EventResourceSkipped,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("skipping %s: %s", resourceType, reason),
		Fields:   map[string]string{"type": resourceType},
	})
}
