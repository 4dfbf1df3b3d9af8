package terraform

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// Event levels as emitted by terraform's machine-readable UI.
const (
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Event is one line of terraform's JSON output stream.
type Event struct {
	Level   string `json:"@level"`
	Message string `json:"@message"`
	Type    string `json:"type"`
}

// ParseEvents reads a JSON-lines stream and returns one Event per line.
// Lines that do not parse as structured events are kept as plain info-level
// diagnostics so nothing the binary printed is lost.
func ParseEvents(r io.Reader) []Event {
	var events []Event
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e Event
		if err := json.Unmarshal([]byte(line), &e); err != nil || e.Message == "" {
			events = append(events, Event{Level: LevelInfo, Message: line})
			continue
		}
		if e.Level == "" {
			e.Level = LevelInfo
		}
		events = append(events, e)
	}
	return events
}
