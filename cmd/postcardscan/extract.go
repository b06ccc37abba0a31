package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"k8s.io/klog/v2"

	"github.com/example/postcardscan/internal/appstate"
	"github.com/example/postcardscan/internal/display"
	"github.com/example/postcardscan/internal/imageio"
	"github.com/example/postcardscan/internal/preview"
	"github.com/example/postcardscan/internal/rectify"
	"github.com/example/postcardscan/internal/session"
	"github.com/example/postcardscan/internal/watch"
)

// windowChrome approximates title bar and panel space taken from the screen
// when fitting the canvas.
const windowChrome = 80

type extractCmd struct {
	*root
	fs            *flag.FlagSet
	suffix        string
	saveDir       string
	interpolation string
	width         int
	height        int
	zoomLevel     float64
	recursive     bool
	watch         bool
	fitScreen     bool
}

func (e *extractCmd) Program() string {
	return e.root.program + " extract"
}

func (e *extractCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseExtractCmd(args []string, r *root) (*extractCmd, error) {
	cfg := r.config
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	c := &extractCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.suffix, "suffix", cfg.Suffix, "inserted between the scan name and the postcard number")
	fs.StringVar(&c.saveDir, "save-dir", cfg.SaveDir, "directory for postcards instead of next to each scan")
	fs.StringVar(&c.interpolation, "interpolation", cfg.Interpolation, "resampling used for postcards")
	fs.IntVar(&c.width, "width", cfg.Display.Width, "largest displayed scan width")
	fs.IntVar(&c.height, "height", cfg.Display.Height, "largest displayed scan height")
	fs.Float64Var(&c.zoomLevel, "zoom", cfg.Display.ZoomLevel, "initial zoom level, lower magnifies more")
	fs.BoolVar(&c.recursive, "recursive", false, "descend into subdirectories")
	fs.BoolVar(&c.watch, "watch", false, "keep watching directory arguments for new scans")
	fs.BoolVar(&c.fitScreen, "fit-screen", cfg.Display.FitScreen, "shrink the display budget to fit the primary monitor")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if session.IsHelp(fs.Args()) {
		return nil, &UsageError{of: c}
	}
	if c.width <= 0 || c.height <= 0 {
		return nil, fmt.Errorf("display size must be positive, got %dx%d", c.width, c.height)
	}
	if _, err := rectify.InterpolatorByName(c.interpolation); err != nil {
		return nil, err
	}
	return c, nil
}

func (e *extractCmd) budget() image.Point {
	d := e.config.Display
	b := image.Pt(e.width, e.height)
	if !e.fitScreen {
		return b
	}
	screen, err := display.ScreenSize()
	if err != nil {
		klog.Warningf("fit-screen: %v", err)
		return b
	}
	fitted := display.FitBudget(screen, b, d.ZoomSize, d.Margin, windowChrome)
	klog.V(1).Infof("display budget %v fitted to %v", b, fitted)
	return fitted
}

func (e *extractCmd) watchDirs() []string {
	var dirs []string
	for _, a := range e.fs.Args() {
		if fi, err := os.Stat(a); err == nil && fi.IsDir() {
			dirs = append(dirs, a)
		}
	}
	return dirs
}

func (e *extractCmd) Run() error {
	paths, err := session.Expand(e.fs.Args(), e.suffix, e.recursive)
	if err != nil {
		return err
	}
	var dirs []string
	if e.watch {
		dirs = e.watchDirs()
	}

	in, err := rectify.InterpolatorByName(e.interpolation)
	if err != nil {
		return err
	}
	d := e.config.Display
	sess := session.New(
		session.WithOutput(e.out()),
		session.WithSuffix(e.suffix),
		session.WithSaveDir(e.saveDir),
		session.WithBudget(e.budget()),
		session.WithMargin(d.Margin),
		session.WithZoomSize(d.ZoomSize),
		session.WithZoomLevel(e.zoomLevel),
		session.WithNudge(d.Nudge),
		session.WithRectifier(rectify.New(rectify.WithInterpolator(in))),
		session.WithSaveListener(e.notifySave),
	)
	if len(paths) > 0 || len(dirs) == 0 {
		if err := sess.Load(paths); err != nil {
			if errors.Is(err, session.ErrHelpRequested) {
				return &UsageError{of: e}
			}
			return err
		}
	}

	ctrl := appstate.NewController(sess, e.out(), nil, e.notifier)
	st := appstate.New(ctrl,
		appstate.WithTheme(e.activeTheme),
		appstate.WithStyle(preview.NewStyle(e.activeTheme, d.Margin, d.ZoomSize)),
		appstate.WithTitle(windowTitle(titleOptions{Files: len(paths), Watching: len(dirs)})),
	)

	if len(dirs) > 0 {
		skip := session.OutputPattern(e.suffix)
		w, err := watch.New(dirs, func(p string) bool {
			return imageio.IsImage(p) && !skip.MatchString(filepath.Base(p))
		})
		if err != nil {
			return err
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := w.Run(ctx, st.AddPath); err != nil && !errors.Is(err, context.Canceled) {
				klog.Errorf("watch: %v", err)
			}
		}()
	}

	st.Run()
	return nil
}
