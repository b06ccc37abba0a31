package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/postcardscan/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var current *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(line, "["), "]"))
			current = nil
			if name, ok := strings.CutPrefix(section, "theme."); ok {
				current = theme.Default()
				current.Name = name
				cfg.Themes[name] = current
			}
			continue
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}

		var err error
		switch {
		case current != nil:
			err = theme.SetField(current, key, value)
		case section == "display":
			err = setDisplayField(&cfg.Display, key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case section == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			if section == "" {
				section = "root"
			}
			return nil, fmt.Errorf("line %d [%s]: %w", lineNo, section, err)
		}
	}

	return cfg, scanner.Err()
}

// splitKeyValue accepts both "key = value" and "Key: value".
func splitKeyValue(line string) (string, string, bool) {
	var key, value string
	if k, v, ok := strings.Cut(line, "="); ok {
		key, value = k, v
	} else if k, v, ok := strings.Cut(line, ":"); ok {
		key, value = k, v
	} else {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "suffix":
		cfg.Suffix = value
	case "save_dir":
		cfg.SaveDir = value
	case "interpolation":
		cfg.Interpolation = value
	}
	return nil
}

func setDisplayField(d *Display, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "width":
		d.Width, err = parsePositive(key, value)
	case "height":
		d.Height, err = parsePositive(key, value)
	case "margin":
		d.Margin, err = strconv.Atoi(value)
		if err == nil && d.Margin < 0 {
			err = fmt.Errorf("margin must not be negative")
		}
	case "zoom_size":
		d.ZoomSize, err = parsePositive(key, value)
	case "zoom_level":
		d.ZoomLevel, err = strconv.ParseFloat(value, 64)
		if err == nil && d.ZoomLevel < 1 {
			err = fmt.Errorf("zoom_level must be at least 1")
		}
	case "nudge":
		d.Nudge, err = strconv.ParseFloat(value, 64)
	case "fit_screen":
		d.FitScreen, err = strconv.ParseBool(value)
	}
	if err != nil {
		return fmt.Errorf("invalid value for key %s: %w", key, err)
	}
	return nil
}

func parsePositive(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return n, nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}
