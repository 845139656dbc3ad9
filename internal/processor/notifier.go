package processor

import (
	"log"
	"os"
	"sync"
)

// Notifier receives process-level advisory notices. Each call carries one
// line of a notice; implementations must not reorder calls.
type Notifier interface {
	Warn(message string)
}

// LogNotifier writes notices through a standard logger.
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier wraps logger. A nil logger writes to stderr without prefixes.
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Warn(message string) {
	n.logger.Println(message)
}

// Recorder keeps notices in memory. Safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *Recorder) Warn(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

// Messages returns a copy of all recorded notices in order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}

// Reset discards recorded notices.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}

type discardNotifier struct{}

func (discardNotifier) Warn(string) {}

// Discard is a Notifier that drops every notice.
var Discard Notifier = discardNotifier{}
