// Package settings persists the formatter and display preferences shared by
// the docfmt commands.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/bjaus/docfmt"
)

// Store keys.
const (
	FormatterKey = "formatterSettings"
	ExtensionKey = "extensionSettings"
)

const defaultIndent = 2

// ErrUnknownField is returned by [Settings.Set] for a name it does not know.
var ErrUnknownField = errors.New("unknown settings field")

// Formatter holds the options applied when formatting JSON.
type Formatter struct {
	Indent     int  `json:"indent"`
	SortKeys   bool `json:"sortKeys"`
	AutoDetect bool `json:"autoDetect"`
}

// UnmarshalJSON accepts indent as a number or as a numeric string, which is
// how older clients stored it.
func (f *Formatter) UnmarshalJSON(data []byte) error {
	type plain Formatter
	aux := struct {
		*plain
		Indent json.RawMessage `json:"indent"`
	}{plain: (*plain)(f)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Indent) == 0 || string(aux.Indent) == "null" {
		return nil
	}
	if err := json.Unmarshal(aux.Indent, &f.Indent); err == nil {
		return nil
	}
	var s string
	if err := json.Unmarshal(aux.Indent, &s); err != nil {
		return fmt.Errorf("indent: %w", err)
	}
	// Unparsable strings fall back to the default once normalized.
	f.Indent, _ = strconv.Atoi(s)
	return nil
}

// Options converts f to the options used by the formatter.
func (f Formatter) Options() docfmt.Options {
	return docfmt.Options{Indent: f.Indent, SortKeys: f.SortKeys}
}

// Extension holds display state.
type Extension struct {
	Theme     docfmt.Theme  `json:"theme"`
	ActiveTab docfmt.Format `json:"activeTab"`
}

// Settings is the full persisted configuration.
type Settings struct {
	Formatter Formatter `json:"formatterSettings"`
	Extension Extension `json:"extensionSettings"`
}

// Defaults returns the settings used when nothing is stored.
func Defaults() Settings {
	return Settings{
		Formatter: Formatter{Indent: defaultIndent, AutoDetect: true},
		Extension: Extension{Theme: docfmt.LightTheme, ActiveTab: docfmt.JSON},
	}
}

// normalize replaces out-of-range values with their defaults.
func (s *Settings) normalize() {
	if s.Formatter.Indent <= 0 {
		s.Formatter.Indent = defaultIndent
	}
	if _, err := docfmt.ParseTheme(string(s.Extension.Theme)); err != nil {
		s.Extension.Theme = docfmt.LightTheme
	}
	if _, err := docfmt.ParseFormat(string(s.Extension.ActiveTab)); err != nil {
		s.Extension.ActiveTab = docfmt.JSON
	}
}

// Fields lists the names accepted by [Settings.Set].
func Fields() []string {
	return []string{"indent", "sortKeys", "autoDetect", "theme", "activeTab"}
}

// Set assigns one field from its string form.
func (s *Settings) Set(name, value string) error {
	switch name {
	case "indent":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("indent must be a positive integer, got %q", value)
		}
		s.Formatter.Indent = n
	case "sortKeys", "autoDetect":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false, got %q", name, value)
		}
		if name == "sortKeys" {
			s.Formatter.SortKeys = b
		} else {
			s.Formatter.AutoDetect = b
		}
	case "theme":
		t, err := docfmt.ParseTheme(value)
		if err != nil {
			return err
		}
		s.Extension.Theme = t
	case "activeTab":
		f, err := docfmt.ParseFormat(value)
		if err != nil {
			return err
		}
		s.Extension.ActiveTab = f
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// Manager loads and saves Settings through a Store. Storage is
// best-effort: failures are logged and never stop the caller from working
// with defaults.
type Manager struct {
	store Store
	log   logrus.FieldLogger
}

// NewManager returns a Manager over store. A nil log uses the standard
// logrus logger.
func NewManager(store Store, log logrus.FieldLogger) *Manager {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Manager{store: store, log: log}
}

// Load reads both keys. Missing keys, store failures and undecodable
// documents leave the defaults in place.
func (m *Manager) Load(ctx context.Context) Settings {
	s := Defaults()
	s.Formatter = load(ctx, m, FormatterKey, s.Formatter)
	s.Extension = load(ctx, m, ExtensionKey, s.Extension)
	s.normalize()
	return s
}

// load decodes key over a copy of def, so fields absent from the stored
// document keep their defaults. def is returned unchanged on any failure.
func load[T any](ctx context.Context, m *Manager, key string, def T) T {
	data, err := m.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def
	}
	if err != nil {
		m.log.WithError(err).WithField("key", key).Warn("Reading settings failed")
		return def
	}
	v := def
	if err := json.Unmarshal(data, &v); err != nil {
		m.log.WithError(err).WithField("key", key).Warn("Ignoring undecodable settings")
		return def
	}
	return v
}

// Save writes both keys. Both are attempted even if the first fails.
func (m *Manager) Save(ctx context.Context, s Settings) error {
	return errors.Join(
		m.SaveFormatter(ctx, s.Formatter),
		m.SaveExtension(ctx, s.Extension),
	)
}

// SaveFormatter writes the formatter key.
func (m *Manager) SaveFormatter(ctx context.Context, f Formatter) error {
	return m.save(ctx, FormatterKey, f)
}

// SaveExtension writes the extension key.
func (m *Manager) SaveExtension(ctx context.Context, e Extension) error {
	return m.save(ctx, ExtensionKey, e)
}

func (m *Manager) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err == nil {
		err = m.store.Set(ctx, key, data)
	}
	if err != nil {
		m.log.WithError(err).WithField("key", key).Warn("Writing settings failed")
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
