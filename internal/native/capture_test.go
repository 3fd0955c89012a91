package native

import (
	"errors"
	"testing"
	"time"

	"github.com/screenview/svcore/internal/rvd"
)

type fakePlatform struct {
	frame *Frame
	err   error
}

func (f *fakePlatform) Monitors() ([]MonitorInfo, error) { return nil, nil }
func (f *fakePlatform) Windows() ([]WindowInfo, error)   { return nil, nil }
func (f *fakePlatform) CaptureMonitorFrame(id uint32) (*Frame, error) {
	return f.frame, f.err
}
func (f *fakePlatform) CaptureWindowFrame(id uint32) (*Frame, error) { return f.frame, f.err }
func (f *fakePlatform) KeyToggle(keysym uint32, down bool) error     { return nil }
func (f *fakePlatform) SetPointerPositionAbsolute(x, y uint16, monitorID uint32) error {
	return nil
}
func (f *fakePlatform) SetPointerPositionRelative(dx, dy int16, windowID uint32) error {
	return nil
}
func (f *fakePlatform) ToggleMouse(button MouseButton, down bool, windowID *uint32) error {
	return nil
}
func (f *fakePlatform) ClipboardContent(kind rvd.ClipboardKind) ([]byte, error) { return nil, nil }
func (f *fakePlatform) SetClipboardContent(kind rvd.ClipboardKind, data []byte) error {
	return nil
}

func TestCaptureWorkerDeliversFrame(t *testing.T) {
	want := &Frame{Width: 4, Height: 2, Stride: 16, BGRA: make([]byte, 32)}
	platform := &fakePlatform{frame: want}
	w := NewMonitorCaptureWorker(platform, 1, nil)
	defer w.Stop()

	w.Request()

	select {
	case res := <-w.Results():
		if res.Err != nil {
			t.Fatalf("unexpected error: %v", res.Err)
		}
		if res.Frame != want {
			t.Fatalf("got frame %v, want %v", res.Frame, want)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for capture result")
	}
}

func TestCaptureWorkerPropagatesError(t *testing.T) {
	wantErr := errors.New("capture failed")
	platform := &fakePlatform{err: wantErr}
	w := NewWindowCaptureWorker(platform, 7, nil)
	defer w.Stop()

	w.Request()

	select {
	case res := <-w.Results():
		if res.Err != wantErr {
			t.Fatalf("got error %v, want %v", res.Err, wantErr)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for capture result")
	}
}

func TestCaptureWorkerDropsRequestWhileBusy(t *testing.T) {
	platform := &fakePlatform{frame: &Frame{}}
	w := NewMonitorCaptureWorker(platform, 1, nil)
	defer w.Stop()

	w.Request()
	w.Request()
	w.Request()

	<-w.Results()
}
