package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"k8s.io/klog/v2"

	"github.com/example/postcardscan/internal/corners"
	"github.com/example/postcardscan/internal/geometry"
	"github.com/example/postcardscan/internal/imageio"
	"github.com/example/postcardscan/internal/rectify"
	"github.com/example/postcardscan/internal/scan"
	"github.com/example/postcardscan/internal/session"
)

// rectifyCmd extracts one postcard without opening a window, from three
// corners given in scan pixel coordinates.
type rectifyCmd struct {
	*root
	fs            *flag.FlagSet
	file          string
	output        string
	interpolation string
	points        [3]geometry.Point
	codec         imageio.Files
}

func (c *rectifyCmd) Program() string {
	return c.root.program + " rectify"
}

func (c *rectifyCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseRectifyCmd(args []string, r *root) (*rectifyCmd, error) {
	fs := flag.NewFlagSet("rectify", flag.ExitOnError)
	c := &rectifyCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	interp := rectify.DefaultInterpolation
	if r != nil && r.config != nil {
		interp = r.config.Interpolation
	}
	fs.StringVar(&c.file, "file", "", "scan to read")
	fs.StringVar(&c.output, "output", "", "postcard file to write")
	fs.StringVar(&c.interpolation, "interpolation", interp, "resampling used for the postcard")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" || c.output == "" || fs.NArg() != 3 {
		return nil, &UsageError{of: c}
	}
	for i, arg := range fs.Args() {
		p, err := parsePoint(arg)
		if err != nil {
			return nil, fmt.Errorf("corner %d: %w", i+1, err)
		}
		c.points[i] = p
	}
	return c, nil
}

// parsePoint reads "X,Y".
func parsePoint(s string) (geometry.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geometry.Point{}, fmt.Errorf("expected X,Y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("invalid x in %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("invalid y in %q: %w", s, err)
	}
	return geometry.Pt(x, y), nil
}

func (c *rectifyCmd) Run() error {
	in, err := rectify.InterpolatorByName(c.interpolation)
	if err != nil {
		return err
	}
	src, err := c.codec.Decode(c.file)
	if err != nil {
		return fmt.Errorf("could not read %q: %w", c.file, err)
	}

	// Portrait scans are turned the way the window shows them, so corners
	// read off the window address the same pixels.
	sc := scan.New(c.file, src, session.DefaultBudget)

	// Hires coordinates are used directly, the collector still squares the
	// third corner up.
	col := corners.New(geometry.Mapper{Scale: 1})
	var quad *corners.Quad
	for _, p := range c.points {
		if quad, err = col.Commit(p); err != nil {
			return err
		}
	}
	klog.V(1).Infof("rectify %s with corners %v", c.file, quad.Hires)

	img, err := rectify.New(rectify.WithInterpolator(in)).Rectify(sc.Hires, quad.Hires[0], quad.Hires[1], quad.Hires[2])
	if err != nil {
		return err
	}
	if err := c.codec.Encode(c.output, img); err != nil {
		return fmt.Errorf("could not write %q: %w", c.output, err)
	}
	fmt.Fprintf(c.out(), "wrote %s\n", c.output)
	c.notifySave(c.output)
	return nil
}
