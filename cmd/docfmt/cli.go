package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/moby/sys/atomicwriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/bjaus/docfmt"
	"github.com/bjaus/docfmt/settings"
)

type globalOptions struct {
	configPath string
	output     string
	logLevel   string
}

// docfmtCLI carries the streams, logger and settings shared by every
// command.
type docfmtCLI struct {
	in  io.Reader
	out io.Writer
	err io.Writer
	log *logrus.Logger

	opts      globalOptions
	inputName string
	store     *settings.BoltStore
	settings  *settings.Manager
}

func newDocfmtCLI(in io.Reader, out, errOut io.Writer) *docfmtCLI {
	log := logrus.New()
	log.SetOutput(errOut)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return &docfmtCLI{in: in, out: out, err: errOut, log: log}
}

// initialize applies the global flags. A settings database that cannot be
// opened is logged and replaced by in-memory defaults.
func (c *docfmtCLI) initialize() error {
	lvl, err := logrus.ParseLevel(c.opts.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q", c.opts.logLevel)
	}
	c.log.SetLevel(lvl)

	var store settings.Store = settings.NewMemoryStore()
	path := c.opts.configPath
	if path == "" {
		if path, err = settings.DefaultPath(); err != nil {
			c.log.WithError(err).Warn("No settings directory, using defaults")
		}
	}
	if path != "" {
		bs, err := settings.OpenBoltStore(path)
		if err != nil {
			c.log.WithError(err).WithField("path", path).Warn("Settings unavailable, using defaults")
		} else {
			c.store = bs
			store = bs
		}
	}
	c.settings = settings.NewManager(store, c.log)
	return nil
}

func (c *docfmtCLI) close() {
	if c.store == nil {
		return
	}
	if err := c.store.Close(); err != nil {
		c.log.WithError(err).Warn("Closing settings database failed")
	}
}

// readInput reads the file named by the first argument, or stdin when
// there is none or it is "-".
func (c *docfmtCLI) readInput(args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		c.inputName = args[0]
		return docfmt.ReadFile(args[0])
	}
	return docfmt.ReadAll(c.in)
}

// writeOutput prints text followed by a newline to stdout or, with
// --output, replaces the output file atomically.
func (c *docfmtCLI) writeOutput(text string) error {
	if c.opts.output == "" || c.opts.output == "-" {
		_, err := fmt.Fprintln(c.out, text)
		return err
	}
	if c.inputName != "" && samePath(c.inputName, c.opts.output) {
		return errors.New("refusing to overwrite the input file")
	}
	return atomicwriter.WriteFile(c.opts.output, []byte(text+"\n"), 0o644)
}

func samePath(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	return err1 == nil && err2 == nil && aa == bb
}

// documentFormat picks the format of text: the --type flag when given,
// otherwise the detected format when auto-detection is on, otherwise the
// stored active tab. The choice is recorded as the new active tab.
func (c *docfmtCLI) documentFormat(ctx context.Context, flags *pflag.FlagSet, typ, text string, s settings.Settings) (docfmt.Format, error) {
	f := s.Extension.ActiveTab
	switch {
	case flags.Changed("type"):
		var err error
		if f, err = docfmt.ParseFormat(typ); err != nil {
			return "", err
		}
	case s.Formatter.AutoDetect:
		d, err := docfmt.Detect(docfmt.Page{Body: text})
		if err == nil && d.Found() {
			f = d.Format
		}
	}
	if f != s.Extension.ActiveTab {
		ext := s.Extension
		ext.ActiveTab = f
		// Already logged by the manager; the command still succeeds.
		_ = c.settings.SaveExtension(ctx, ext)
	}
	return f, nil
}

// pretty formats text for display: JSON with the given options, XML by
// re-indenting.
func pretty(f docfmt.Format, text string, opts docfmt.Options) (string, error) {
	switch f {
	case docfmt.JSON:
		return docfmt.FormatJSON(text, opts)
	case docfmt.XML:
		return docfmt.FormatXML(text)
	default:
		return "", fmt.Errorf("%w: %s cannot be formatted", docfmt.ErrUnsupportedFormat, f.Title())
	}
}
