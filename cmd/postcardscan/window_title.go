package main

import (
	"fmt"
	"strings"

	"github.com/example/postcardscan/internal/appstate"
)

type titleOptions struct {
	Files    int
	Watching int
	Extras   []string
}

func windowTitle(opts titleOptions) string {
	parts := []string{appstate.ProgramTitle}

	switch opts.Files {
	case 0:
	case 1:
		parts = append(parts, "1 scan")
	default:
		parts = append(parts, fmt.Sprintf("%d scans", opts.Files))
	}

	if opts.Watching > 0 {
		parts = append(parts, fmt.Sprintf("watching %d dir(s)", opts.Watching))
	}

	if v := strings.TrimSpace(version); v != "" {
		parts = append(parts, fmt.Sprintf("v%s", v))
	}
	if c := strings.TrimSpace(commit); c != "" {
		parts = append(parts, fmt.Sprintf("commit %s", c))
	}
	if d := strings.TrimSpace(date); d != "" {
		parts = append(parts, d)
	}

	parts = append(parts, opts.Extras...)
	return strings.Join(parts, " - ")
}
