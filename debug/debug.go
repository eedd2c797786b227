// Package debug traces font loading and banner composition.
//
// Tracing is switched on once per process (FIGFONT_DEBUG=1 or the CLI's
// --debug flag). Each load or render gets its own Session; a nil Session
// swallows every event, so call sites never need to check.
package debug

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
	"sync/atomic"
	"time"
)

// EnvVar enables tracing when set to "1".
const EnvVar = "FIGFONT_DEBUG"

// PrettyEnvVar selects the human-readable sink when set to "1".
const PrettyEnvVar = "FIGFONT_DEBUG_PRETTY"

var enabled atomic.Bool

// SetEnabled switches tracing on or off for the whole process.
func SetEnabled(on bool) {
	enabled.Store(on)
}

// Enabled reports whether tracing is on.
func Enabled() bool {
	return enabled.Load()
}

// InitFromEnv enables tracing when EnvVar is "1".
func InitFromEnv() {
	if os.Getenv(EnvVar) == "1" {
		SetEnabled(true)
	}
}

// PrettyFromEnv reports whether PrettyEnvVar asks for the pretty sink.
func PrettyFromEnv() bool {
	return os.Getenv(PrettyEnvVar) == "1"
}

// Session groups the events of one load or render operation.
// A Session must not be shared by concurrent operations.
type Session struct {
	id    string
	sink  Sink
	start time.Time
	seq   int
}

// NewSession returns a session writing to sink, or nil when tracing is
// disabled or sink is nil.
func NewSession(sink Sink) *Session {
	if !Enabled() || sink == nil {
		return nil
	}
	s := &Session{
		id:    newSessionID(),
		sink:  sink,
		start: time.Now(),
	}
	s.Emit("session", "Start", map[string]interface{}{"version": "1"})
	return s
}

// ID returns the session identifier, or "" for a nil session.
func (s *Session) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Emit sends one event to the sink. Sink errors are dropped: tracing must
// never change the outcome of the traced operation.
func (s *Session) Emit(phase, event string, data interface{}) {
	if s == nil {
		return
	}
	s.seq++
	_ = s.sink.Write(Event{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		SessionID: s.id,
		Seq:       s.seq,
		Phase:     phase,
		Event:     event,
		Data:      data,
	})
}

// Close emits the session end event and closes the sink.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	s.Emit("session", "End", map[string]int64{
		"elapsed_us": time.Since(s.start).Microseconds(),
	})
	return s.sink.Close()
}

func newSessionID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(b)
}

// Event is the envelope written for every trace record.
type Event struct {
	Timestamp string      `json:"ts"`
	SessionID string      `json:"session_id"`
	Seq       int         `json:"seq"`
	Phase     string      `json:"phase"`
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
}
