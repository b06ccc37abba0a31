// Package session drives an extraction run: it walks the playlist, owns the
// current scan, corner set, cursor and latest postcard, and writes postcards
// to disk. A Session is not safe for concurrent use; every method is expected
// to run on the UI event loop.
package session

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	"k8s.io/klog/v2"

	"github.com/example/postcardscan/internal/corners"
	"github.com/example/postcardscan/internal/geometry"
	"github.com/example/postcardscan/internal/imageio"
	"github.com/example/postcardscan/internal/preview"
	"github.com/example/postcardscan/internal/rectify"
	"github.com/example/postcardscan/internal/scan"
)

const (
	DefaultSuffix = "_postcard"
	DefaultNudge  = 0.5
)

// DefaultBudget is the largest lores scan size.
var DefaultBudget = image.Pt(800, 600)

// Codec reads scans and writes postcards.
type Codec interface {
	Decode(path string) (image.Image, error)
	Encode(path string, img image.Image) error
}

// Postcard is the most recently extracted postcard.
type Postcard struct {
	Image     *image.RGBA
	Thumbnail *image.RGBA
	Path      string
	Index     int
}

// Session holds the state of one extraction run.
type Session struct {
	codec     Codec
	out       io.Writer
	suffix    string
	saveDir   string
	budget    image.Point
	margin    int
	zoomSize  int
	nudge     float64
	rectifier *rectify.Rectifier
	zoomer    *rectify.Rectifier
	onSave    []func(path string)

	playlist  *Playlist
	scan      *scan.Scan
	shown     int
	corners   *corners.Collector
	postcard  *Postcard
	index     int
	cursor    geometry.Point
	zoomLevel float64
	zoom      *image.RGBA
	zoomDirty bool
}

// Option configures a Session.
type Option func(*Session)

// WithCodec sets the image codec.
func WithCodec(c Codec) Option { return func(s *Session) { s.codec = c } }

// WithOutput sets where user facing progress lines are written.
func WithOutput(w io.Writer) Option { return func(s *Session) { s.out = w } }

// WithSuffix sets the postcard file name suffix.
func WithSuffix(suffix string) Option { return func(s *Session) { s.suffix = suffix } }

// WithSaveDir writes postcards into dir instead of next to their scan.
func WithSaveDir(dir string) Option { return func(s *Session) { s.saveDir = dir } }

// WithBudget sets the largest lores scan size.
func WithBudget(b image.Point) Option { return func(s *Session) { s.budget = b } }

// WithMargin sets the gap around the scan on the canvas.
func WithMargin(m int) Option { return func(s *Session) { s.margin = m } }

// WithZoomSize sets the edge length of the zoom and thumbnail panels.
func WithZoomSize(n int) Option { return func(s *Session) { s.zoomSize = n } }

// WithZoomLevel sets the initial zoom level.
func WithZoomLevel(l float64) Option { return func(s *Session) { s.zoomLevel = l } }

// WithNudge sets how far one arrow key press moves the cursor.
func WithNudge(n float64) Option { return func(s *Session) { s.nudge = n } }

// WithRectifier sets the engine used to extract postcards.
func WithRectifier(r *rectify.Rectifier) Option { return func(s *Session) { s.rectifier = r } }

// WithSaveListener registers fn to run after every successful postcard write.
func WithSaveListener(fn func(path string)) Option {
	return func(s *Session) { s.onSave = append(s.onSave, fn) }
}

// New creates a Session with the provided options.
func New(opts ...Option) *Session {
	s := &Session{
		codec:     imageio.Files{},
		out:       os.Stdout,
		suffix:    DefaultSuffix,
		budget:    DefaultBudget,
		margin:    preview.DefaultMargin,
		zoomSize:  preview.DefaultZoomSize,
		nudge:     DefaultNudge,
		zoomLevel: preview.DefaultZoomLevel,
		playlist:  NewPlaylist(nil),
	}
	for _, o := range opts {
		o(s)
	}
	if s.rectifier == nil {
		s.rectifier = rectify.New()
	}
	s.zoomer = rectify.New(rectify.WithInterpolator(draw.ApproxBiLinear))
	if s.zoomLevel < 1 {
		s.zoomLevel = 1
	}
	s.corners = corners.New(geometry.Mapper{Scale: 1, Margin: float64(s.margin)})
	return s
}

// Load stores paths as the playlist and opens the first readable entry.
func (s *Session) Load(paths []string) error {
	if IsHelp(paths) {
		return ErrHelpRequested
	}
	s.playlist = NewPlaylist(paths)
	for i := 0; i < s.playlist.Len(); i++ {
		if err := s.LoadCurrent(); err == nil {
			return nil
		}
		s.playlist.Next()
	}
	return fmt.Errorf("%d files: %w", s.playlist.Len(), ErrNoImages)
}

// LoadCurrent decodes the current playlist entry. On failure the previous
// scan stays on display.
func (s *Session) LoadCurrent() error {
	path := s.playlist.Current()
	img, err := s.codec.Decode(path)
	if err != nil {
		derr := &DecodeError{Path: path, Err: err}
		klog.Warningf("%v", derr)
		fmt.Fprintln(s.out, derr.Error())
		return derr
	}
	sc := scan.New(path, img, s.budget)
	s.scan = sc
	s.shown = s.playlist.Index()
	s.corners.SetMapper(sc.Mapper(s.margin))
	s.index = 0
	s.postcard = nil
	lores := sc.Lores.Bounds().Size()
	s.cursor = geometry.Pt(float64(s.margin+lores.X/2), float64(s.margin+lores.Y/2))
	s.zoomDirty = true
	klog.Infof("opened %s (%d/%d)", path, s.playlist.Index()+1, s.playlist.Len())
	return nil
}

// Next opens the following playlist entry, wrapping around.
func (s *Session) Next() error {
	if s.playlist.Len() == 0 {
		return ErrNoImages
	}
	s.playlist.Next()
	return s.LoadCurrent()
}

// Prev opens the preceding playlist entry, wrapping around.
func (s *Session) Prev() error {
	if s.playlist.Len() == 0 {
		return ErrNoImages
	}
	s.playlist.Prev()
	return s.LoadCurrent()
}

// Append adds path to the playlist and opens it when nothing is shown yet.
func (s *Session) Append(path string) error {
	if !s.playlist.Append(path) {
		return nil
	}
	klog.Infof("queued %s", path)
	if s.scan == nil {
		for s.playlist.Current() != path {
			s.playlist.Next()
		}
		return s.LoadCurrent()
	}
	return nil
}

// MoveCursor places the cursor at display point p, constrained to the
// perpendicular when two corners are placed.
func (s *Session) MoveCursor(p geometry.Point) {
	s.cursor = s.corners.Constrain(p)
	s.zoomDirty = true
}

// Nudge moves the cursor by dx, dy steps.
func (s *Session) Nudge(dx, dy float64) {
	s.MoveCursor(s.cursor.Add(geometry.Pt(dx*s.nudge, dy*s.nudge)))
}

// ZoomIn magnifies the zoom panel by lowering the zoom level, never below 1.
func (s *Session) ZoomIn() {
	s.zoomLevel = max(s.zoomLevel-1, 1)
	s.zoomDirty = true
}

// ZoomOut widens the zoom panel.
func (s *Session) ZoomOut() {
	s.zoomLevel++
	s.zoomDirty = true
}

// Commit places a corner at the cursor. When it completes a rectangle the
// postcard is extracted, written and returned, and the corner set restarts.
// A *WriteError still returns the postcard.
func (s *Session) Commit() (*Postcard, error) {
	if s.scan == nil {
		return nil, nil
	}
	quad, err := s.corners.Commit(s.cursor)
	if err != nil {
		klog.Warningf("corner at %v rejected: %v", s.cursor, err)
		return nil, err
	}
	if quad == nil {
		return nil, nil
	}
	img, err := s.rectifier.Rectify(s.scan.Hires, quad.Hires[0], quad.Hires[1], quad.Hires[2])
	if err != nil {
		klog.Warningf("rectify %s: %v", s.scan.Path, err)
		return nil, err
	}
	pc := &Postcard{Image: img, Index: s.index, Path: s.PostcardPath(s.scan.Path, s.index)}
	s.corners.Clear()
	s.index++
	s.postcard = pc
	return pc, s.save()
}

// Clear drops all placed corners.
func (s *Session) Clear() {
	s.corners.Clear()
}

// Rotate turns the latest postcard a quarter counter-clockwise and rewrites it.
func (s *Session) Rotate() error { return s.mutate("rotate", rectify.Rotate90) }

// FlipHorizontal mirrors the latest postcard left to right and rewrites it.
func (s *Session) FlipHorizontal() error { return s.mutate("flip horizontal", rectify.FlipHorizontal) }

// FlipVertical mirrors the latest postcard top to bottom and rewrites it.
func (s *Session) FlipVertical() error { return s.mutate("flip vertical", rectify.FlipVertical) }

func (s *Session) mutate(name string, op func(image.Image) *image.RGBA) error {
	if s.postcard == nil {
		return ErrNoPostcard
	}
	s.postcard.Image = op(s.postcard.Image)
	klog.V(1).Infof("%s %s", name, s.postcard.Path)
	return s.save()
}

func (s *Session) save() error {
	pc := s.postcard
	pc.Thumbnail = rectify.Thumbnail(pc.Image, s.zoomSize)
	if err := s.codec.Encode(pc.Path, pc.Image); err != nil {
		werr := &WriteError{Path: pc.Path, Err: err}
		klog.Errorf("%v", werr)
		fmt.Fprintln(s.out, werr.Error())
		return werr
	}
	fmt.Fprintf(s.out, "wrote %s\n", pc.Path)
	for _, fn := range s.onSave {
		fn(pc.Path)
	}
	return nil
}

// PostcardPath names postcard idx extracted from source.
func (s *Session) PostcardPath(source string, idx int) string {
	base := strings.TrimSuffix(source, filepath.Ext(source))
	if s.saveDir != "" {
		base = filepath.Join(s.saveDir, filepath.Base(base))
	}
	return fmt.Sprintf("%s%s%d.png", base, s.suffix, idx)
}

// Frame renders the current view, recomputing the zoom panel when the cursor,
// zoom level or scan changed since the last frame.
func (s *Session) Frame(st preview.Style) *image.RGBA {
	v := preview.View{Cursor: s.cursor, Corners: s.corners.Display()}
	if s.scan != nil {
		v.Lores = s.scan.Lores
		if s.zoomDirty || s.zoom == nil {
			s.zoom = s.computeZoom()
			s.zoomDirty = false
		}
		v.Zoom = s.zoom
	}
	if s.postcard != nil {
		v.Thumbnail = s.postcard.Thumbnail
	}
	return preview.Compose(v, st)
}

func (s *Session) computeZoom() *image.RGBA {
	m := s.corners.Mapper()
	center := m.ToHires(s.cursor)
	extent := preview.ZoomExtent(s.zoomLevel, s.scan.Scale)
	z, err := preview.Zoom(s.zoomer, s.scan.Hires, center, extent, s.zoomSize)
	if err != nil {
		klog.V(2).Infof("zoom at %v: %v", center, err)
		return nil
	}
	return z
}

// Scan returns the scan on display, or nil.
func (s *Session) Scan() *scan.Scan { return s.scan }

// Position is the playlist index of the scan on display. It lags the
// playlist when the entry stepped to could not be decoded.
func (s *Session) Position() int { return s.shown }

// Postcard returns the latest postcard, or nil.
func (s *Session) Postcard() *Postcard { return s.postcard }

// Playlist returns the playlist.
func (s *Session) Playlist() *Playlist { return s.playlist }

// Cursor returns the cursor in display coordinates.
func (s *Session) Cursor() geometry.Point { return s.cursor }

// ZoomLevel returns the current zoom level.
func (s *Session) ZoomLevel() float64 { return s.zoomLevel }

// Corners returns the placed corners in display coordinates.
func (s *Session) Corners() []geometry.Point { return s.corners.Display() }

// HiresCorners returns the placed corners in hires coordinates.
func (s *Session) HiresCorners() []geometry.Point { return s.corners.Hires() }

// Budget returns the largest lores scan size.
func (s *Session) Budget() image.Point { return s.budget }

// NextIndex is the sequence number the next postcard will get.
func (s *Session) NextIndex() int { return s.index }

// IsDegenerate reports whether err came from unusable corner geometry.
func IsDegenerate(err error) bool { return errors.Is(err, geometry.ErrDegenerateGeometry) }
