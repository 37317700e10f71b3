// Package persist is the typed boundary between folio's in-memory state and
// the key-value medium. Three keys are stored, each as one JSON document.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/five82/folio/internal/kv"
	"github.com/five82/folio/internal/model"
)

// Key names a persisted entity.
type Key string

const (
	KeyDisplayMode Key = "darkMode"
	KeyProfile     Key = "profile"
	KeyWallpapers  Key = "wallpapers"
)

// Keys returns every persisted key.
func Keys() []Key {
	return []Key{KeyDisplayMode, KeyProfile, KeyWallpapers}
}

// ErrUnknownKey is returned for keys outside Keys().
var ErrUnknownKey = errors.New("unknown persistence key")

func checkKey(key Key) error {
	for _, k := range Keys() {
		if k == key {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownKey, string(key))
}

// Adapter reads and writes folio entities through a kv.Store.
type Adapter struct {
	store kv.Store
}

// New wraps store.
func New(store kv.Store) *Adapter {
	return &Adapter{store: store}
}

// Load reads the value under key into a T. Missing, unreadable or malformed
// data yields def; Load never fails.
func Load[T any](a *Adapter, key Key, def T) T {
	if a == nil || a.store == nil || checkKey(key) != nil {
		return def
	}
	raw, found, err := a.store.Get(string(key))
	if err != nil || !found {
		return def // Graceful degradation
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def // Graceful degradation
	}
	return v
}

// Save serialises value and replaces whatever was stored under key.
func (a *Adapter) Save(key Key, value any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	bytes, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := a.store.Set(string(key), bytes); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// DisplayMode loads the dark-mode flag, defaulting to false.
func (a *Adapter) DisplayMode() bool {
	// A stored null decodes to the zero value, matching the default.
	return Load(a, KeyDisplayMode, false)
}

// SaveDisplayMode stores the dark-mode flag.
func (a *Adapter) SaveDisplayMode(dark bool) error {
	return a.Save(KeyDisplayMode, dark)
}

// Profile loads the profile. Fields absent from the stored document keep
// their defaults, so the result is always fully populated.
func (a *Adapter) Profile() model.Profile {
	def := model.DefaultProfile()
	stored := Load(a, KeyProfile, storedProfile{})
	if !stored.present {
		return def
	}
	return stored.onto(def)
}

// SaveProfile stores p.
func (a *Adapter) SaveProfile(p model.Profile) error {
	return a.Save(KeyProfile, toStoredProfile(p))
}

// Wallpapers loads the gallery. Entries without an id or url, entries with a
// session-only reference, and repeats of an earlier id are dropped.
func (a *Adapter) Wallpapers() model.Wallpapers {
	stored := Load(a, KeyWallpapers, []storedWallpaper(nil))
	return sanitizeWallpapers(stored)
}

// SaveWallpapers stores w. A nil collection is written as [].
func (a *Adapter) SaveWallpapers(w model.Wallpapers) error {
	if w == nil {
		w = model.Wallpapers{}
	}
	return a.Save(KeyWallpapers, w)
}
