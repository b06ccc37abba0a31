package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix starts every environment variable read by ApplyEnv.
const EnvPrefix = "POSTCARDSCAN_"

// LoadDotEnv loads variables from the given .env files without overriding
// variables already set. Missing files are not an error.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ApplyEnv overlays POSTCARDSCAN_* variables onto c. lookup is normally
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	root := map[string]string{
		"THEME":         "theme",
		"SUFFIX":        "suffix",
		"SAVE_DIR":      "save_dir",
		"INTERPOLATION": "interpolation",
	}
	for env, key := range root {
		if v, ok := lookup(EnvPrefix + env); ok {
			if err := setRootField(c, key, v); err != nil {
				return err
			}
		}
	}
	for _, key := range []string{"width", "height", "margin", "zoom_size", "zoom_level", "nudge", "fit_screen"} {
		if v, ok := lookup(EnvPrefix + strings.ToUpper(key)); ok {
			if err := setDisplayField(&c.Display, key, strings.TrimSpace(v)); err != nil {
				return err
			}
		}
	}
	for _, key := range []string{"save", "copy"} {
		if v, ok := lookup(EnvPrefix + "NOTIFY_" + strings.ToUpper(key)); ok {
			if err := setNotifyField(&c.Notify, key, strings.TrimSpace(v)); err != nil {
				return err
			}
		}
	}
	return nil
}
