// Package appstate runs the interactive window: it turns shiny events into
// commands on a session and repaints the canvas after every change.
package appstate

import (
	"image"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"k8s.io/klog/v2"

	"github.com/example/postcardscan/internal/preview"
	"github.com/example/postcardscan/internal/theme"
)

// AppState holds the window configuration.
type AppState struct {
	ctrl  *Controller
	theme *theme.Theme
	style preview.Style
	title string

	mu      sync.Mutex
	send    func(any)
	pending []string

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithTheme sets the colours of the canvas, status bar and messages.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.theme = t } }

// WithStyle sets the canvas layout and colours.
func WithStyle(st preview.Style) Option { return func(a *AppState) { a.style = st } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.title = title } }

// WithOnClose registers a callback run once when the window goes away.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState driving ctrl.
func New(ctrl *Controller, opts ...Option) *AppState {
	a := &AppState{ctrl: ctrl, theme: theme.Default(), title: ProgramTitle}
	a.style = preview.NewStyle(a.theme, preview.DefaultMargin, preview.DefaultZoomSize)
	for _, o := range opts {
		o(a)
	}
	return a
}

// pathEvent carries a newly discovered scan into the event loop.
type pathEvent struct{ path string }

// AddPath queues a scan found while the window is open. It is safe to call
// from any goroutine.
func (a *AppState) AddPath(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.send == nil {
		a.pending = append(a.pending, path)
		return
	}
	a.send(pathEvent{path})
}

// post sends ev to the window if it is still open. Timers firing after the
// loop has ended are dropped.
func (a *AppState) post(ev any) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.send == nil {
		return false
	}
	a.send(ev)
	return true
}

func (a *AppState) setSender(fn func(any)) []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.send = fn
	p := a.pending
	a.pending = nil
	return p
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		a.setSender(nil)
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// WindowSize is the initial window size: the canvas for a full budget scan
// plus the status bar.
func (a *AppState) WindowSize() image.Point {
	c := preview.CanvasSize(a.ctrl.Session().Budget(), a.style)
	return image.Pt(c.X, c.Y+statusHeight)
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the event loop on s until the window closes or the user quits.
func (a *AppState) Main(s screen.Screen) {
	winSize := a.WindowSize()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: winSize.X, Height: winSize.Y, Title: a.title})
	if err != nil {
		klog.Errorf("new window: %v", err)
		return
	}
	defer w.Release()
	defer a.notifyClose()

	for _, p := range a.setSender(func(ev any) { w.Send(ev) }) {
		w.Send(pathEvent{p})
	}

	var lastMessage string
	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			winSize = e.Size()
			w.Send(paint.Event{})
		case paint.Event:
			msg := a.ctrl.Message()
			if msg != "" && msg != lastMessage {
				time.AfterFunc(messageDuration, func() { a.post(paint.Event{}) })
			}
			lastMessage = msg
			a.paint(s, w, winSize, msg)
		case pathEvent:
			a.ctrl.Append(e.path)
			w.Send(paint.Event{})
		case mouse.Event:
			move, cmd := commandForMouse(e)
			if move {
				a.ctrl.Move(float64(e.X), float64(e.Y))
			}
			if cmd != CmdNone && a.ctrl.Dispatch(cmd) {
				return
			}
			w.Send(paint.Event{})
		case key.Event:
			cmd := commandForKey(e)
			if cmd == CmdNone {
				continue
			}
			if a.ctrl.Dispatch(cmd) {
				return
			}
			w.Send(paint.Event{})
		case error:
			klog.Errorf("window: %v", e)
		}
	}
}

func (a *AppState) paint(s screen.Screen, w screen.Window, sz image.Point, msg string) {
	if sz.X <= 0 || sz.Y <= 0 {
		return
	}
	b, err := s.NewBuffer(sz)
	if err != nil {
		klog.Errorf("new buffer: %v", err)
		return
	}
	defer b.Release()

	frame := a.ctrl.Session().Frame(a.style)
	paintWindow(b.RGBA(), frame, a.ctrl.Status(), msg, a.theme)
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
