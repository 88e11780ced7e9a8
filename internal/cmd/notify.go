package cmd

import (
	"fmt"
	"io"
	"sync"
)

// consoleNotifier reports subprocess outcomes on the terminal. It satisfies
// execute.Notifier; writes are serialized because async subprocesses may
// report from their own goroutines.
type consoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

func newConsoleNotifier(out io.Writer) *consoleNotifier {
	return &consoleNotifier{out: out}
}

func (n *consoleNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "%s[OK]%s %s\n", colorGreen, colorReset, message)
}

func (n *consoleNotifier) Failure(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "%s[ERROR]%s %s\n", colorRed, colorReset, message)
}
