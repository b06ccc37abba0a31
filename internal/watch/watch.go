// Package watch reports new scans appearing in watched directories.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"
)

// DefaultSettle is how long a file must stay unchanged before it is reported,
// so scanners still writing a file are not picked up half way.
const DefaultSettle = 750 * time.Millisecond

// Watcher emits paths of files created in a set of directories.
type Watcher struct {
	Filter func(path string) bool
	Settle time.Duration

	w *fsnotify.Watcher
}

// New watches dirs. Paths for which filter returns false are ignored.
func New(dirs []string, filter func(string) bool) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new watcher: %w", err)
	}
	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			w.Close()
			return nil, fmt.Errorf("watch %s: %w", d, err)
		}
		klog.V(1).Infof("watching %s", d)
	}
	return &Watcher{Filter: filter, Settle: DefaultSettle, w: w}, nil
}

// Run delivers settled paths to out until ctx is cancelled. It closes the
// underlying watcher before returning.
func (wt *Watcher) Run(ctx context.Context, out func(path string)) error {
	defer wt.w.Close()
	settle := wt.Settle
	if settle <= 0 {
		settle = DefaultSettle
	}
	tick := time.NewTicker(settle / 2)
	defer tick.Stop()
	pending := map[string]time.Time{}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-wt.w.Events:
			if !ok {
				return nil
			}
			klog.V(2).Infof("event: %v", event)
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			path := filepath.Clean(event.Name)
			if filepath.Base(path)[0] == '.' || (wt.Filter != nil && !wt.Filter(path)) {
				continue
			}
			pending[path] = time.Now()
		case err, ok := <-wt.w.Errors:
			if !ok {
				return nil
			}
			klog.Warningf("watch: %v", err)
		case now := <-tick.C:
			var ready []string
			for p, at := range pending {
				if now.Sub(at) >= settle {
					ready = append(ready, p)
				}
			}
			sort.Strings(ready)
			for _, p := range ready {
				delete(pending, p)
				out(p)
			}
		}
	}
}
