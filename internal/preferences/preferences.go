// Package preferences loads, persists and applies the reader settings.
package preferences

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/justyntemme/cloudreader/internal/kv"
	"github.com/justyntemme/cloudreader/pkg/models"
)

// StorageKey is the kv key holding the settings object
const StorageKey = "reader-settings"

// Font size bounds and step of the size control
const (
	MinFontSize  = 14
	MaxFontSize  = 32
	FontSizeStep = 2
)

// Line height bounds and step of the spacing control
const (
	MinLineHeight  = 1.2
	MaxLineHeight  = 3.0
	LineHeightStep = 0.2
)

// Themes in the order the theme control cycles through them
var Themes = []string{models.ThemeLight, models.ThemeSepia, models.ThemeDark, models.ThemeDarkBlue}

// Defaults returns the settings used when nothing valid is stored
func Defaults() models.ReaderSettings {
	return models.ReaderSettings{
		Theme:      models.ThemeLight,
		FontSize:   18,
		LineHeight: 1.8,
		FontFamily: models.FontSans,
	}
}

// Applier reacts to a settings change, e.g. by switching the color theme
type Applier func(models.ReaderSettings)

// Store holds the current settings and writes the whole object back on
// every change
type Store struct {
	kv kv.Store

	mu       sync.Mutex
	current  models.ReaderSettings
	appliers []Applier
}

// NewStore creates a settings store over s holding the defaults. Call Load
// to read the persisted settings.
func NewStore(s kv.Store) *Store {
	return &Store{kv: s, current: Defaults()}
}

// Load reads the persisted settings. An absent or malformed blob yields the
// defaults; stored values are taken as they are.
func (s *Store) Load(ctx context.Context) (models.ReaderSettings, error) {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return Defaults(), errors.Wrap(err, "read settings")
	}

	settings := Defaults()
	if ok && raw != "" {
		var stored *models.ReaderSettings
		switch err := json.Unmarshal([]byte(raw), &stored); {
		case err != nil:
			log.Warn().Err(err).Str("key", StorageKey).Msg("using default reader settings")
		case stored == nil:
			log.Warn().Str("key", StorageKey).Msg("reader settings are null, using defaults")
		default:
			settings = *stored
		}
	}

	s.mu.Lock()
	s.current = settings
	s.mu.Unlock()
	return settings, nil
}

// Current returns the settings in effect
func (s *Store) Current() models.ReaderSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// OnChange registers fn to run after every successful Update
func (s *Store) OnChange(fn Applier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appliers = append(s.appliers, fn)
}

// Update applies fn to a copy of the current settings, persists the result
// and notifies every applier. Nothing changes if persisting fails.
func (s *Store) Update(ctx context.Context, fn func(*models.ReaderSettings)) (models.ReaderSettings, error) {
	s.mu.Lock()
	next := s.current
	fn(&next)

	data, err := json.Marshal(next)
	if err != nil {
		s.mu.Unlock()
		return s.Current(), errors.Wrap(err, "encode settings")
	}
	if err := s.kv.Set(ctx, StorageKey, string(data)); err != nil {
		prev := s.current
		s.mu.Unlock()
		return prev, errors.Wrap(err, "write settings")
	}
	s.current = next
	appliers := append([]Applier(nil), s.appliers...)
	s.mu.Unlock()

	for _, apply := range appliers {
		apply(next)
	}
	return next, nil
}

// SetTheme switches the color theme
func (s *Store) SetTheme(ctx context.Context, theme string) (models.ReaderSettings, error) {
	return s.Update(ctx, func(rs *models.ReaderSettings) { rs.Theme = theme })
}

// SetFontSize stores size as is; the controls clamp, the store does not
func (s *Store) SetFontSize(ctx context.Context, size float64) (models.ReaderSettings, error) {
	return s.Update(ctx, func(rs *models.ReaderSettings) { rs.FontSize = size })
}

// SetLineHeight stores the line height
func (s *Store) SetLineHeight(ctx context.Context, lh float64) (models.ReaderSettings, error) {
	return s.Update(ctx, func(rs *models.ReaderSettings) { rs.LineHeight = lh })
}

// SetFontFamily stores the font family
func (s *Store) SetFontFamily(ctx context.Context, family string) (models.ReaderSettings, error) {
	return s.Update(ctx, func(rs *models.ReaderSettings) { rs.FontFamily = family })
}
