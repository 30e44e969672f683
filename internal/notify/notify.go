// Package notify sends desktop notifications for saves, exports and
// clipboard copies.
package notify

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/drawdle/assets"
	"github.com/example/drawdle/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires when a drawing reaches its store.
	EventSave Event = "save"
	// EventCopy fires when data is copied to the clipboard.
	EventCopy Event = "copy"
	// EventExport fires when a PNG or PDF is written.
	EventExport Event = "export"
	// EventError fires when a background save fails.
	EventError Event = "error"
)

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "drawdle",
		Events: map[Event]EventPreference{
			EventSave:   {Template: "Saved %s"},
			EventCopy:   {Template: "Copied %s to clipboard"},
			EventExport: {Template: "Exported %s"},
			EventError:  {Template: "Save failed: %s"},
		},
	}
}

// LoadPreferences reads overrides from DRAWDLE_NOTIFY_* environment
// variables.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("DRAWDLE_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for _, event := range []Event{EventSave, EventCopy, EventExport, EventError} {
		key := "DRAWDLE_NOTIFY_" + strings.ToUpper(string(event)) + "_TEXT"
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Events[event] = EventPreference{Template: v}
		}
	}
	return prefs
}

// sender delivers one notification; replaced in tests.
type sender func(title, body string, opts platform.Options) error

// Notifier sends OS-level notifications based on the configured preferences.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    sender
	icon    func() string
}

func appIcon() string {
	p, err := assets.IconFile(64)
	if err != nil {
		log.Printf("notification icon: %v", err)
		return ""
	}
	return p
}

// New creates a new Notifier using the provided preferences. Every event
// starts disabled.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool), send: platform.Notify, icon: appIcon}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Save reports a successful save to location, a path or URL.
func (n *Notifier) Save(location string) {
	n.dispatch(EventSave, location, platform.Options{})
}

// Export reports a written export file and previews it when it is a PNG.
func (n *Notifier) Export(path string) {
	if !n.enabledFor(EventExport) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if strings.EqualFold(filepath.Ext(abs), ".png") {
			if _, statErr := os.Stat(abs); statErr == nil {
				opts.IconPath = abs
			}
		}
	}
	n.dispatch(EventExport, detail, opts)
}

// Copy sends a clipboard notification.
func (n *Notifier) Copy(detail string) {
	if strings.TrimSpace(detail) == "" {
		detail = "drawing"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

// Failed reports a background failure. It follows the save preference.
func (n *Notifier) Failed(err error) {
	if err == nil || !n.enabledFor(EventSave) {
		return
	}
	n.send(n.prefs.Title, fmt.Sprintf(n.template(EventError), err), platform.Options{Critical: true})
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.enabledFor(event) {
		return
	}
	template := strings.TrimSpace(n.template(event))
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if opts.IconPath == "" && n.icon != nil {
		opts.IconPath = n.icon()
	}
	if err := n.send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func (n *Notifier) template(event Event) string {
	if pref, ok := n.prefs.Events[event]; ok {
		return pref.Template
	}
	return ""
}
