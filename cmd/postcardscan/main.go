package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"k8s.io/klog/v2"

	"github.com/example/postcardscan/internal/config"
	"github.com/example/postcardscan/internal/notify"
	"github.com/example/postcardscan/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	notifier    *notify.Notifier
	config      *config.Config
	configPath  string
	saveAlerts  bool
	copyAlerts  bool
	themeName   string
	activeTheme *theme.Theme
	stdout      io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) out() io.Writer {
	if r.stdout == nil {
		return os.Stdout
	}
	return r.stdout
}

// klogFlags are the logging flags exposed on the root command.
var klogFlags = []string{"v", "vmodule", "logtostderr", "log_file"}

func newRoot() *root {
	if err := config.LoadDotEnv(".env"); err != nil {
		klog.Warningf("load .env: %v", err)
	}

	r := &root{
		fs:       flag.NewFlagSet("postcardscan", flag.ExitOnError),
		program:  "postcardscan",
		notifier: notify.New(notify.LoadPreferences()),
		stdout:   os.Stdout,
	}
	r.fs.StringVar(&r.configPath, "config", "", "configuration file to read instead of the default locations")

	logging := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(logging)
	for _, name := range klogFlags {
		if f := logging.Lookup(name); f != nil {
			r.fs.Var(f.Value, f.Name, f.Usage)
		}
	}

	// Precedence: CLI > Env > Config > Default. Flag defaults are filled
	// in by loadConfig once -config is known.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use ("+strings.Join(theme.Names(), ", ")+")")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", false, "show a desktop notification after writing a postcard")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying a postcard")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) loadConfig() {
	override := configPathOverride
	if r.configPath != "" {
		override = r.configPath
	}
	cfg, err := config.NewLoader(version, override).Load()
	if err != nil {
		klog.Warningf("failed to load config: %v", err)
		cfg = config.New()
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		klog.Warningf("environment: %v", err)
	}
	r.config = cfg

	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["notify-save"] {
		r.saveAlerts = cfg.Notify.Save
	}
	if !set["notify-copy"] {
		r.copyAlerts = cfg.Notify.Copy
	}
}

func (r *root) loadTheme() {
	t, err := r.config.ResolveTheme(r.themeName, theme.NewLoader())
	if err != nil {
		klog.Warningf("failed to load theme: %v, using default", err)
		t = theme.Default()
	}
	r.activeTheme = t
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.loadConfig()
	r.loadTheme()
	r.notifier.Enable(notify.EventSave, r.saveAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "extract":
		cmd, err = parseExtractCmd(subArgs, r)
	case "rectify":
		cmd, err = parseRectifyCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	case "help":
		err = &UsageError{of: r}
	default:
		// Bare file and directory arguments are an implicit extract.
		cmd, err = parseExtractCmd(r.fs.Args(), r)
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	defer klog.Flush()
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			return
		}
		fmt.Fprintln(os.Stderr, err)
		klog.Flush()
		os.Exit(1)
	}
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}
