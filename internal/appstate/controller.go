package appstate

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"k8s.io/klog/v2"

	"github.com/example/postcardscan/internal/clipboard"
	"github.com/example/postcardscan/internal/geometry"
	"github.com/example/postcardscan/internal/notify"
	"github.com/example/postcardscan/internal/session"
)

// Farewell is printed when the user quits.
const Farewell = "The application will shut down now. Have a nice day."

const messageDuration = 3 * time.Second

// Controller applies commands to a session and keeps the transient status
// message. It holds no window state so it can run without a display.
type Controller struct {
	sess      *session.Session
	out       io.Writer
	copyImage func(image.Image) error
	notifier  *notify.Notifier
	now       func() time.Time

	message      string
	messageUntil time.Time
}

// NewController wraps sess. Nil collaborators fall back to the system
// clipboard, stdout and no notifications.
func NewController(sess *session.Session, out io.Writer, copyFn func(image.Image) error, n *notify.Notifier) *Controller {
	if out == nil {
		out = os.Stdout
	}
	if copyFn == nil {
		copyFn = clipboard.WriteImage
	}
	return &Controller{sess: sess, out: out, copyImage: copyFn, notifier: n, now: time.Now}
}

// Session returns the wrapped session.
func (c *Controller) Session() *session.Session { return c.sess }

// Move places the cursor at the given window position.
func (c *Controller) Move(x, y float64) {
	c.sess.MoveCursor(geometry.Pt(x, y))
}

// Dispatch runs cmd and reports whether the application should quit.
func (c *Controller) Dispatch(cmd Command) (quit bool) {
	klog.V(2).Infof("command %v", cmd)
	switch cmd {
	case CmdQuit:
		fmt.Fprintln(c.out, Farewell)
		return true
	case CmdCommit:
		c.commit()
	case CmdClear:
		c.sess.Clear()
	case CmdZoomIn:
		c.sess.ZoomIn()
	case CmdZoomOut:
		c.sess.ZoomOut()
	case CmdNext:
		c.report(c.sess.Next())
	case CmdPrev:
		c.report(c.sess.Prev())
	case CmdNudgeLeft:
		c.sess.Nudge(-1, 0)
	case CmdNudgeRight:
		c.sess.Nudge(1, 0)
	case CmdNudgeUp:
		c.sess.Nudge(0, -1)
	case CmdNudgeDown:
		c.sess.Nudge(0, 1)
	case CmdRotate:
		c.orient("rotated", c.sess.Rotate())
	case CmdFlipHorizontal:
		c.orient("flipped horizontally", c.sess.FlipHorizontal())
	case CmdFlipVertical:
		c.orient("flipped vertically", c.sess.FlipVertical())
	case CmdCopy:
		c.copyPostcard()
	}
	return false
}

// Append queues a path found after start up.
func (c *Controller) Append(path string) {
	if err := c.sess.Append(path); err != nil {
		c.report(err)
		return
	}
	c.setMessage(fmt.Sprintf("queued %s", filepath.Base(path)))
}

func (c *Controller) commit() {
	pc, err := c.sess.Commit()
	switch {
	case session.IsDegenerate(err):
		c.setMessage("corners too close, try again")
	case err != nil:
		c.report(err)
	case pc != nil:
		c.setMessage(fmt.Sprintf("wrote %s", filepath.Base(pc.Path)))
	}
}

func (c *Controller) orient(done string, err error) {
	if err != nil {
		c.report(err)
		return
	}
	c.setMessage(fmt.Sprintf("%s %s", done, filepath.Base(c.sess.Postcard().Path)))
}

func (c *Controller) copyPostcard() {
	pc := c.sess.Postcard()
	if pc == nil {
		c.report(session.ErrNoPostcard)
		return
	}
	if err := c.copyImage(pc.Image); err != nil {
		klog.Warningf("copy to clipboard: %v", err)
		c.setMessage(fmt.Sprintf("copy failed: %v", err))
		return
	}
	c.notifier.Copy(filepath.Base(pc.Path))
	c.setMessage("copied postcard to clipboard")
}

func (c *Controller) report(err error) {
	if err == nil {
		return
	}
	var derr *session.DecodeError
	var werr *session.WriteError
	switch {
	case errors.As(err, &derr):
		c.setMessage(fmt.Sprintf("could not read %s", filepath.Base(derr.Path)))
	case errors.As(err, &werr):
		c.setMessage(fmt.Sprintf("could not write %s", filepath.Base(werr.Path)))
	default:
		c.setMessage(err.Error())
	}
}

func (c *Controller) setMessage(msg string) {
	c.message = msg
	c.messageUntil = c.now().Add(messageDuration)
}

// Message returns the transient message, or "" once it expired.
func (c *Controller) Message() string {
	if c.message == "" || !c.now().Before(c.messageUntil) {
		return ""
	}
	return c.message
}

// Status is the one line summary shown under the canvas.
func (c *Controller) Status() string {
	sc := c.sess.Scan()
	if sc == nil {
		return "no scan loaded"
	}
	pl := c.sess.Playlist()
	return fmt.Sprintf("%s  [%d/%d]  corners %d/3  zoom %g  next #%d",
		filepath.Base(sc.Path), c.sess.Position()+1, pl.Len(), min(len(c.sess.Corners()), 3), c.sess.ZoomLevel(), c.sess.NextIndex())
}
