// Package memory provides a LoggerInstance that records entries instead of
// printing them. It is meant for tests that assert on warnings.
package memory

import "sync"

// Entry is a single recorded log call.
type Entry struct {
	Level   string
	Message string
	KeyVals []any
}

// Value returns the value logged for key, or nil.
func (e Entry) Value(key string) any {
	for i := 0; i+1 < len(e.KeyVals); i += 2 {
		if k, ok := e.KeyVals[i].(string); ok && k == key {
			return e.KeyVals[i+1]
		}
	}
	return nil
}

// MemoryLogger stores every log call in order. Fatal is recorded but does
// not exit.
type MemoryLogger struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (m *MemoryLogger) record(level, message string, keyvals []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, Entry{Level: level, Message: message, KeyVals: keyvals})
}

// Entries returns a copy of the recorded entries, optionally restricted to
// the given level.
func (m *MemoryLogger) Entries(level string) []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Entry
	for _, e := range m.entries {
		if level == "" || e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

func (m *MemoryLogger) Log(message string, keyvals ...any)   { m.record("log", message, keyvals) }
func (m *MemoryLogger) Debug(message string, keyvals ...any) { m.record("debug", message, keyvals) }
func (m *MemoryLogger) Info(message string, keyvals ...any)  { m.record("info", message, keyvals) }
func (m *MemoryLogger) Warn(message string, keyvals ...any)  { m.record("warn", message, keyvals) }
func (m *MemoryLogger) Error(message string, keyvals ...any) { m.record("error", message, keyvals) }
func (m *MemoryLogger) Fatal(message string, keyvals ...any) { m.record("fatal", message, keyvals) }
