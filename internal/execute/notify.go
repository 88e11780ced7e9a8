package execute

// Notifier receives transient user-facing messages about subprocess outcomes.
// The executor calls this abstraction instead of printing; the CLI layer owns
// the concrete presentation.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Failure(string) {}
