package notifier

import (
	"fmt"
	"io"
	"os"
)

// DryRunNotifier prints what would be sent without contacting any backend.
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRun creates a dry-run notifier writing to stdout.
func NewDryRun() *DryRunNotifier {
	return &DryRunNotifier{out: os.Stdout}
}

// Send prints the notification instead of delivering it.
func (n *DryRunNotifier) Send(message, title string) error {
	fmt.Fprintf(n.out, "--- Notification: %s ---\n", title)
	fmt.Fprintln(n.out, message)
	fmt.Fprintf(n.out, "\n(Length: %d characters)\n\n", len(message))
	return nil
}
