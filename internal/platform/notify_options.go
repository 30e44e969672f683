// Package platform delivers desktop notifications through the host's
// notification service.
package platform

import "time"

// AppName identifies drawdle to notification services.
const AppName = "drawdle"

// DefaultTimeout is used when Options.Timeout is zero.
const DefaultTimeout = 5 * time.Second

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image the notification center
	// should show next to the message.
	IconPath string
	// Timeout is how long the notification stays visible where supported.
	Timeout time.Duration
	// Critical asks for an urgent notification, used for failures.
	Critical bool
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}
