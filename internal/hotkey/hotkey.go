// Package hotkey provides a global emergency-stop key
package hotkey

import (
	"log/slog"

	hook "github.com/robotn/gohook"
)

// Listen installs a global keyboard hook and invokes stop once when key
// is pressed anywhere on the system. The returned function removes the
// hook; it must be called before process exit.
func Listen(key string, stop func()) (cancel func()) {
	hook.Register(hook.KeyDown, []string{key}, func(_ hook.Event) {
		slog.Info("emergency stop key pressed", "key", key)
		stop()
	})

	events := hook.Start()
	go hook.Process(events)

	return hook.End
}
