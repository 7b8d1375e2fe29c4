package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const logMessageLimit = 25

// LogMessage is a line of the message log
type LogMessage struct {
	UUID    string    `json:"uuid"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

func newLogMessage(format string, a ...interface{}) *LogMessage {
	return &LogMessage{
		UUID:    uuid.New().String(),
		Message: fmt.Sprintf(format, a...),
		Time:    time.Now(),
	}
}

// addLogMessages adds log messages, dropping the oldest past the limit
// Note: this must only be called from within the run loop
func (s *Session) addLogMessages(messages ...*LogMessage) {
	m := append(s.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	s.logMessages = m
}

func (s *Session) logLines() []string {
	lines := make([]string, len(s.logMessages))
	for i, m := range s.logMessages {
		lines[i] = m.Message
	}

	return lines
}
