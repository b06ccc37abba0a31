package session

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"

	"github.com/example/postcardscan/internal/imageio"
)

// Playlist is a cyclic list of source paths.
type Playlist struct {
	paths []string
	idx   int
}

// NewPlaylist copies paths into a playlist positioned at the first entry.
func NewPlaylist(paths []string) *Playlist {
	return &Playlist{paths: append([]string(nil), paths...)}
}

// Len returns the number of entries.
func (p *Playlist) Len() int { return len(p.paths) }

// Index returns the current position.
func (p *Playlist) Index() int { return p.idx }

// Current returns the current path, or "" for an empty playlist.
func (p *Playlist) Current() string {
	if len(p.paths) == 0 {
		return ""
	}
	return p.paths[p.idx]
}

// Next moves forward, wrapping from the last entry to the first.
func (p *Playlist) Next() string {
	if len(p.paths) == 0 {
		return ""
	}
	p.idx = (p.idx + 1) % len(p.paths)
	return p.paths[p.idx]
}

// Prev moves backward, wrapping from the first entry to the last.
func (p *Playlist) Prev() string {
	if len(p.paths) == 0 {
		return ""
	}
	p.idx = (p.idx - 1 + len(p.paths)) % len(p.paths)
	return p.paths[p.idx]
}

// Append adds path to the end unless it is already listed.
func (p *Playlist) Append(path string) bool {
	for _, existing := range p.paths {
		if existing == path {
			return false
		}
	}
	p.paths = append(p.paths, path)
	return true
}

// Paths returns a copy of the entries.
func (p *Playlist) Paths() []string { return append([]string(nil), p.paths...) }

// IsHelp reports whether args is empty or asks for help.
func IsHelp(args []string) bool {
	if len(args) == 0 {
		return true
	}
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return true
		}
	}
	return false
}

// OutputPattern matches files written for postcards with the given suffix.
func OutputPattern(suffix string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(suffix) + `\d+\.png$`)
}

// Expand turns command line arguments into playlist entries. Files are kept
// as given, directories contribute their decodable images in name order.
// Earlier postcard output matching suffix is skipped.
func Expand(args []string, suffix string, recursive bool) ([]string, error) {
	skip := OutputPattern(suffix)
	var out []string
	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil || !fi.IsDir() {
			out = append(out, arg)
			continue
		}
		found, err := walkImages(arg, recursive, skip)
		if err != nil {
			return nil, fmt.Errorf("expand %s: %w", arg, err)
		}
		klog.V(1).Infof("%s: %d images", arg, len(found))
		out = append(out, found...)
	}
	return out, nil
}

func walkImages(root string, recursive bool, skip *regexp.Regexp) ([]string, error) {
	var found []string
	root = filepath.Clean(root)
	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if path == root {
				return nil
			}
			if filepath.Base(path)[0] == '.' {
				return godirwalk.SkipThis
			}
			if de.IsDir() {
				if !recursive {
					return godirwalk.SkipThis
				}
				return nil
			}
			if imageio.IsImage(path) && !skip.MatchString(path) {
				found = append(found, path)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(found)
	return found, nil
}
