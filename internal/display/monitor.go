// Package display probes the screen so the canvas can be sized to fit it.
package display

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
	"k8s.io/klog/v2"
)

// Monitor describes one output in the X11 layout.
type Monitor struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

var errNoMonitors = errors.New("no monitors available")

// ListMonitors retrieves the connected monitors using RandR. When RandR is
// unavailable the root window is reported as a single monitor.
func ListMonitors() ([]Monitor, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	if setup == nil {
		return nil, fmt.Errorf("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		return nil, fmt.Errorf("xproto screen unavailable")
	}

	monitors, err := fetchMonitors(conn, screen.Root)
	if err != nil {
		klog.V(1).Infof("randr: %v, using root window", err)
		monitors = nil
	}
	if len(monitors) == 0 {
		monitors = []Monitor{{
			Name:    "root",
			Rect:    image.Rect(0, 0, int(screen.WidthInPixels), int(screen.HeightInPixels)),
			Primary: true,
		}}
	}
	return monitors, nil
}

func fetchMonitors(conn *xgb.Conn, root xproto.Window) ([]Monitor, error) {
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("init randr: %w", err)
	}
	res, err := randr.GetScreenResources(conn, root).Reply()
	if err != nil {
		return nil, fmt.Errorf("randr screen resources: %w", err)
	}
	primaryOutput := randr.Output(0)
	if primary, err := randr.GetOutputPrimary(conn, root).Reply(); err == nil {
		primaryOutput = primary.Output
	}
	monitors := make([]Monitor, 0, len(res.Outputs))
	for _, output := range res.Outputs {
		info, err := randr.GetOutputInfo(conn, output, res.ConfigTimestamp).Reply()
		if err != nil || info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		crtc, err := randr.GetCrtcInfo(conn, info.Crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		monitors = append(monitors, Monitor{
			Index:   len(monitors),
			Name:    strings.TrimSpace(string(info.Name)),
			Rect:    image.Rect(int(crtc.X), int(crtc.Y), int(crtc.X)+int(crtc.Width), int(crtc.Y)+int(crtc.Height)),
			Primary: output == primaryOutput,
		})
	}
	return monitors, nil
}

// Primary returns the primary monitor, or the first one when none is marked.
func Primary(monitors []Monitor) (Monitor, error) {
	if len(monitors) == 0 {
		return Monitor{}, errNoMonitors
	}
	for _, m := range monitors {
		if m.Primary {
			return m, nil
		}
	}
	return monitors[0], nil
}

// ScreenSize returns the size of the primary monitor.
func ScreenSize() (image.Point, error) {
	monitors, err := ListMonitors()
	if err != nil {
		return image.Point{}, err
	}
	m, err := Primary(monitors)
	if err != nil {
		return image.Point{}, err
	}
	klog.V(1).Infof("primary monitor %q is %dx%d", m.Name, m.Rect.Dx(), m.Rect.Dy())
	return m.Rect.Size(), nil
}
