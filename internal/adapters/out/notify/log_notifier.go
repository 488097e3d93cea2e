// internal/adapters/out/notify/log_notifier.go
package notify

import (
	"context"
	"log"
)

// LogNotifier is the server-side stand-in for the storefront toast.
// Best effort by construction.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (LogNotifier) Notify(_ context.Context, message string) {
	if message == "" {
		return
	}
	log.Printf("[notify] %s", message)
}
