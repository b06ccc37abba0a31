package appstate

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"

	"github.com/example/postcardscan/internal/session"
	"github.com/example/postcardscan/internal/theme"
)

func TestCommandForKey(t *testing.T) {
	tests := []struct {
		name string
		ev   key.Event
		want Command
	}{
		{"p", key.Event{Rune: 'p', Code: key.CodeP, Direction: key.DirPress}, CmdPrev},
		{"backspace", key.Event{Code: key.CodeDeleteBackspace, Direction: key.DirPress}, CmdPrev},
		{"n", key.Event{Rune: 'n', Code: key.CodeN, Direction: key.DirPress}, CmdNext},
		{"space", key.Event{Rune: ' ', Code: key.CodeSpacebar, Direction: key.DirPress}, CmdNext},
		{"plus", key.Event{Rune: '+', Code: key.CodeEqualSign, Modifiers: key.ModShift, Direction: key.DirPress}, CmdZoomIn},
		{"keypad plus", key.Event{Rune: '+', Code: key.CodeKeypadPlusSign, Direction: key.DirPress}, CmdZoomIn},
		{"minus", key.Event{Rune: '-', Code: key.CodeHyphenMinus, Direction: key.DirPress}, CmdZoomOut},
		{"keypad minus", key.Event{Code: key.CodeKeypadHyphenMinus, Direction: key.DirPress}, CmdZoomOut},
		{"enter", key.Event{Code: key.CodeReturnEnter, Direction: key.DirPress}, CmdCommit},
		{"keypad enter", key.Event{Code: key.CodeKeypadEnter, Direction: key.DirPress}, CmdCommit},
		{"left", key.Event{Code: key.CodeLeftArrow, Direction: key.DirPress}, CmdNudgeLeft},
		{"down repeat", key.Event{Code: key.CodeDownArrow, Direction: key.DirNone}, CmdNudgeDown},
		{"r", key.Event{Rune: 'r', Code: key.CodeR, Direction: key.DirPress}, CmdRotate},
		{"f", key.Event{Rune: 'f', Code: key.CodeF, Direction: key.DirPress}, CmdFlipHorizontal},
		{"v", key.Event{Rune: 'v', Code: key.CodeV, Direction: key.DirPress}, CmdFlipHorizontal},
		{"h", key.Event{Rune: 'h', Code: key.CodeH, Direction: key.DirPress}, CmdFlipVertical},
		{"shift C", key.Event{Rune: 'C', Code: key.CodeC, Modifiers: key.ModShift, Direction: key.DirPress}, CmdCopy},
		{"q", key.Event{Rune: 'q', Code: key.CodeQ, Direction: key.DirPress}, CmdQuit},
		{"escape", key.Event{Code: key.CodeEscape, Direction: key.DirPress}, CmdQuit},
		{"release", key.Event{Rune: 'q', Code: key.CodeQ, Direction: key.DirRelease}, CmdNone},
		{"ctrl c", key.Event{Rune: 'c', Code: key.CodeC, Modifiers: key.ModControl, Direction: key.DirPress}, CmdNone},
		{"unbound", key.Event{Rune: 'z', Code: key.CodeZ, Direction: key.DirPress}, CmdNone},
	}
	for _, tt := range tests {
		if got := commandForKey(tt.ev); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCommandForMouse(t *testing.T) {
	tests := []struct {
		ev   mouse.Event
		move bool
		cmd  Command
	}{
		{mouse.Event{Button: mouse.ButtonLeft, Direction: mouse.DirPress}, false, CmdCommit},
		{mouse.Event{Button: mouse.ButtonRight, Direction: mouse.DirPress}, true, CmdClear},
		{mouse.Event{Button: mouse.ButtonLeft, Direction: mouse.DirRelease}, true, CmdNone},
		{mouse.Event{Direction: mouse.DirNone}, true, CmdNone},
	}
	for _, tt := range tests {
		move, cmd := commandForMouse(tt.ev)
		if move != tt.move || cmd != tt.cmd {
			t.Errorf("%+v: got (%v, %v), want (%v, %v)", tt.ev, move, cmd, tt.move, tt.cmd)
		}
	}
}

func TestKeyHelpListsBindings(t *testing.T) {
	help := KeyHelp()
	for _, want := range []string{"p, Backspace", "right click", "q, Escape"} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q:\n%s", want, help)
		}
	}
	if CmdCopy.String() != "copy-postcard" || Command(99).String() != "Command(99)" {
		t.Errorf("unexpected command names")
	}
}

type memCodec struct {
	images  map[string]image.Image
	written map[string]image.Image
}

func (m *memCodec) Decode(path string) (image.Image, error) {
	if img, ok := m.images[path]; ok {
		return img, nil
	}
	return nil, errors.New("missing")
}

func (m *memCodec) Encode(path string, img image.Image) error {
	m.written[path] = img
	return nil
}

func newController(t *testing.T, copyFn func(image.Image) error) (*Controller, *memCodec, *bytes.Buffer) {
	t.Helper()
	codec := &memCodec{
		images:  map[string]image.Image{"a.png": image.NewRGBA(image.Rect(0, 0, 400, 300))},
		written: map[string]image.Image{},
	}
	var out bytes.Buffer
	sess := session.New(session.WithCodec(codec), session.WithOutput(&out))
	if err := sess.Load([]string{"a.png", "b.png"}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if copyFn == nil {
		copyFn = func(image.Image) error { return nil }
	}
	return NewController(sess, &out, copyFn, nil), codec, &out
}

func TestControllerExtractsPostcard(t *testing.T) {
	c, codec, _ := newController(t, nil)
	now := time.Unix(100, 0)
	c.now = func() time.Time { return now }

	c.Move(10, 10)
	c.Dispatch(CmdCommit)
	c.Move(210, 10)
	c.Dispatch(CmdCommit)
	c.Move(200, 110)
	c.Dispatch(CmdCommit)

	if _, ok := codec.written["a_postcard0.png"]; !ok {
		t.Fatalf("postcard not written: %v", codec.written)
	}
	if got := c.Message(); got != "wrote a_postcard0.png" {
		t.Fatalf("message = %q", got)
	}
	if !strings.Contains(c.Status(), "a.png  [1/2]  corners 0/3") {
		t.Fatalf("status = %q", c.Status())
	}

	now = now.Add(messageDuration)
	if got := c.Message(); got != "" {
		t.Fatalf("message did not expire: %q", got)
	}

	c.Dispatch(CmdRotate)
	if got := codec.written["a_postcard0.png"].Bounds().Size(); got != image.Pt(50, 100) {
		t.Fatalf("rotated size = %v", got)
	}
}

func TestControllerNavigationReportsErrors(t *testing.T) {
	c, _, _ := newController(t, nil)
	c.Dispatch(CmdNext)
	if got := c.Message(); got != "could not read b.png" {
		t.Fatalf("message = %q", got)
	}
	if !strings.Contains(c.Status(), "a.png  [1/2]") {
		t.Fatalf("status after failed step = %q", c.Status())
	}
	c.Dispatch(CmdPrev)
	if c.Session().Scan().Path != "a.png" {
		t.Fatalf("scan = %s", c.Session().Scan().Path)
	}
}

func TestControllerCopy(t *testing.T) {
	var copied image.Image
	c, _, _ := newController(t, func(img image.Image) error { copied = img; return nil })
	c.Dispatch(CmdCopy)
	if copied != nil || c.Message() != session.ErrNoPostcard.Error() {
		t.Fatalf("copy without postcard: %v %q", copied, c.Message())
	}
	for _, p := range [][2]float64{{10, 10}, {110, 10}, {110, 60}} {
		c.Move(p[0], p[1])
		c.Dispatch(CmdCommit)
	}
	c.Dispatch(CmdCopy)
	if copied == nil || copied.Bounds().Size() != image.Pt(50, 25) {
		t.Fatalf("copied %v", copied)
	}
}

func TestControllerQuitAndZoom(t *testing.T) {
	c, _, out := newController(t, nil)
	if c.Dispatch(CmdZoomIn) || c.Session().ZoomLevel() != 49 {
		t.Fatalf("zoom in: level %v", c.Session().ZoomLevel())
	}
	c.Dispatch(CmdZoomOut)
	c.Dispatch(CmdZoomOut)
	if c.Session().ZoomLevel() != 51 {
		t.Fatalf("zoom out: level %v", c.Session().ZoomLevel())
	}
	c.Dispatch(CmdClear)
	if !c.Dispatch(CmdQuit) {
		t.Fatalf("quit did not request exit")
	}
	if !strings.Contains(out.String(), Farewell) {
		t.Fatalf("farewell missing: %q", out.String())
	}
}

func TestAddPathBeforeWindow(t *testing.T) {
	c, _, _ := newController(t, nil)
	a := New(c)
	a.AddPath("late.png")
	var sent []any
	pending := a.setSender(func(ev any) { sent = append(sent, ev) })
	if len(pending) != 1 || pending[0] != "late.png" {
		t.Fatalf("pending = %v", pending)
	}
	a.AddPath("later.png")
	if len(sent) != 1 || sent[0] != (pathEvent{"later.png"}) {
		t.Fatalf("sent = %v", sent)
	}
	if got := a.WindowSize(); got != image.Pt(1020, 620+statusHeight) {
		t.Fatalf("window size = %v", got)
	}
}

func TestPostAfterClose(t *testing.T) {
	c, _, _ := newController(t, nil)
	closed := 0
	a := New(c, WithOnClose(func() { closed++ }))
	var sent []any
	a.setSender(func(ev any) { sent = append(sent, ev) })
	if !a.post(paint.Event{}) || len(sent) != 1 {
		t.Fatalf("post while open: sent = %v", sent)
	}
	a.notifyClose()
	a.notifyClose()
	if a.post(paint.Event{}) || len(sent) != 1 {
		t.Fatalf("post after close reached the window: sent = %v", sent)
	}
	if closed != 1 {
		t.Fatalf("onClose ran %d times", closed)
	}
}

func TestPaintWindow(t *testing.T) {
	th := theme.Default()
	dst := image.NewRGBA(image.Rect(0, 0, 300, 200))
	frame := image.NewRGBA(image.Rect(0, 0, 100, 50))
	green := color.RGBA{0, 255, 0, 255}
	for i := range frame.Pix {
		frame.Pix[i] = []uint8{green.R, green.G, green.B, green.A}[i%4]
	}
	paintWindow(dst, frame, "status", "", th)
	if got := dst.RGBAAt(10, 10); got != green {
		t.Errorf("frame pixel = %v", got)
	}
	if got := dst.RGBAAt(200, 100); got != th.Background {
		t.Errorf("background pixel = %v", got)
	}
	if got := dst.RGBAAt(299, 199); got != th.StatusBackground {
		t.Errorf("status bar pixel = %v", got)
	}

	paintWindow(dst, frame, "status", "hello", th)
	if got := dst.RGBAAt(150, 90); got == th.Background {
		t.Errorf("message box not drawn")
	}
}
