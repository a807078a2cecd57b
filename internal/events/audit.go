package events

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agentgate/agentgate/internal/redact"
)

// Record is one persisted audit entry. Block bodies are stored in full;
// the maxLines hint given to EmitBlock only limits rendering elsewhere.
type Record struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Kind      string `json:"kind"`
	Label     string `json:"label,omitempty"`
	Message   string `json:"message"`
}

// AuditLogger appends events to a JSONL file. Messages are scrubbed for
// credential material before they hit disk.
type AuditLogger struct {
	mu   sync.Mutex
	file *os.File
}

func NewAuditLogger(path string) (*AuditLogger, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	return &AuditLogger{file: file}, nil
}

func (l *AuditLogger) Emit(kind Kind, message string) {
	l.append(Record{
		Kind:    string(kind),
		Message: redact.Scrub(message),
	})
}

func (l *AuditLogger) EmitBlock(kind Kind, label, body string, maxLines int) {
	l.append(Record{
		Kind:    string(kind),
		Label:   redact.Scrub(label),
		Message: redact.Scrub(body),
	})
}

// append is best-effort: a failed audit write must not fail the tool call
// that produced the event.
func (l *AuditLogger) append(rec Record) {
	rec.ID = uuid.NewString()
	rec.Timestamp = time.Now().UTC().Format(time.RFC3339)

	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	l.file.Write(data)
}

func (l *AuditLogger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
