// Package native declares the abstract capability interface the core
// calls into but never implements: OS-specific screen capture, input
// injection, clipboard access, and monitor/window enumeration (spec
// section 2, "Native API"). Embedders supply a concrete Platform for
// their OS; the core only ever depends on this interface.
package native

import "github.com/screenview/svcore/internal/rvd"

// MonitorInfo describes one enumerable monitor.
type MonitorInfo struct {
	ID     uint32
	Name   string
	Width  uint16
	Height uint16
}

// WindowInfo describes one enumerable window.
type WindowInfo struct {
	ID     uint32
	Name   string
	Width  uint16
	Height uint16
}

// Frame is one captured BGRA raster.
type Frame struct {
	Width  uint16
	Height uint16
	Stride int
	BGRA   []byte
}

// MouseButton identifies a physical mouse button for ToggleMouse.
type MouseButton uint8

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Platform is the external collaborator the core drives to turn RVD
// events into real OS effects, and real OS state into RVD messages. It
// never runs on the core thread directly: capture methods are expected
// to be called from a dedicated capture worker per spec section 5.
type Platform interface {
	// Monitors enumerates the currently attached monitors.
	Monitors() ([]MonitorInfo, error)
	// Windows enumerates the currently open top-level windows.
	Windows() ([]WindowInfo, error)

	// CaptureMonitorFrame captures one frame of the given monitor.
	CaptureMonitorFrame(id uint32) (*Frame, error)
	// CaptureWindowFrame captures one frame of the given window.
	CaptureWindowFrame(id uint32) (*Frame, error)

	// KeyToggle presses or releases the given keysym.
	KeyToggle(keysym uint32, down bool) error
	// SetPointerPositionAbsolute moves the pointer to (x, y) on the
	// given monitor.
	SetPointerPositionAbsolute(x, y uint16, monitorID uint32) error
	// SetPointerPositionRelative moves the pointer by (dx, dy) within
	// the given window.
	SetPointerPositionRelative(dx, dy int16, windowID uint32) error
	// ToggleMouse presses or releases a mouse button, optionally
	// scoped to a window.
	ToggleMouse(button MouseButton, down bool, windowID *uint32) error

	// ClipboardContent reads the current system clipboard content of
	// the given kind.
	ClipboardContent(kind rvd.ClipboardKind) ([]byte, error)
	// SetClipboardContent writes the system clipboard.
	SetClipboardContent(kind rvd.ClipboardKind, data []byte) error
}
