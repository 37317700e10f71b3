package state

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/five82/folio/internal/ident"
	"github.com/five82/folio/internal/imageref"
	"github.com/five82/folio/internal/kv"
	"github.com/five82/folio/internal/logging"
	"github.com/five82/folio/internal/model"
	"github.com/five82/folio/internal/persist"
)

const defaultUploadWorkers = 4

var (
	// ErrNotDurable is returned when a picture reference would not survive a restart.
	ErrNotDurable = errors.New("image reference is not durable")
	// ErrNotFound is returned by callers that look up a wallpaper id that does
	// not exist.
	ErrNotFound = errors.New("wallpaper not found")
)

// Snapshot is a point-in-time copy of everything the view renders.
type Snapshot struct {
	DarkMode     bool
	Profile      model.Profile
	Draft        model.Profile
	SettingsOpen bool
	Wallpapers   model.Wallpapers

	// DraftGeneration increases every time OpenSettings resets the draft.
	// Async work started against one generation must not touch a later one.
	DraftGeneration uint64

	LastPersistError    error
	ConsecutiveFailures int // Number of consecutive failed storage writes
}

// DraftChanged reports whether the draft differs from the committed profile.
func (s Snapshot) DraftChanged() bool {
	return s.Draft != s.Profile
}

// Options configure a Store.
type Options struct {
	Adapter       *persist.Adapter // nil keeps state in memory only
	Encoder       imageref.Encoder // nil uses imageref.FileEncoder{}
	Logger        logging.Logger   // nil discards
	IDs           *ident.Generator // nil uses a private generator
	UploadWorkers int              // zero uses 4
}

// Store owns folio's state and writes every persisted change through to the
// adapter before the mutating call returns.
type Store struct {
	mu sync.RWMutex

	adapter *persist.Adapter
	encoder imageref.Encoder
	log     logging.Logger
	ids     *ident.Generator
	workers int

	darkMode     bool
	profile      model.Profile
	draft        model.Profile
	settingsOpen bool
	draftGen     uint64
	wallpapers   model.Wallpapers

	lastPersistErr      error
	consecutiveFailures int
}

// New loads the three persisted entities, falling back to defaults, and
// starts with the settings panel closed and the draft equal to the profile.
func New(opts Options) *Store {
	s := &Store{
		adapter: opts.Adapter,
		encoder: opts.Encoder,
		log:     opts.Logger,
		ids:     opts.IDs,
		workers: opts.UploadWorkers,
	}
	if s.adapter == nil {
		s.adapter = persist.New(kv.NewMemoryStore())
	}
	if s.encoder == nil {
		s.encoder = imageref.FileEncoder{}
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	if s.ids == nil {
		s.ids = &ident.Generator{}
	}
	if s.workers <= 0 {
		s.workers = defaultUploadWorkers
	}

	s.darkMode = s.adapter.DisplayMode()
	s.profile = s.adapter.Profile()
	s.draft = s.profile
	s.wallpapers = s.adapter.Wallpapers()
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		DarkMode:            s.darkMode,
		Profile:             s.profile,
		Draft:               s.draft,
		SettingsOpen:        s.settingsOpen,
		Wallpapers:          s.wallpapers.Clone(),
		DraftGeneration:     s.draftGen,
		ConsecutiveFailures: s.consecutiveFailures,
		LastPersistError:    s.lastPersistErr,
	}
}

// ToggleDisplayMode flips dark mode and persists it.
func (s *Store) ToggleDisplayMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.darkMode = !s.darkMode
	s.persistLocked(persist.KeyDisplayMode, func() error {
		return s.adapter.SaveDisplayMode(s.darkMode)
	})
	return s.darkMode
}

// OpenSettings opens the settings panel and resets the draft to the
// committed profile, discarding any abandoned edits.
func (s *Store) OpenSettings() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openLocked()
}

func (s *Store) openLocked() {
	s.settingsOpen = true
	s.draft = s.profile
	s.draftGen++
}

// CloseSettings closes the panel. The draft is left as is and the committed
// profile is untouched.
func (s *Store) CloseSettings() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settingsOpen = false
}

// ToggleSettings opens the panel when closed and closes it when open. It
// reports whether the panel is now open.
func (s *Store) ToggleSettings() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settingsOpen {
		s.settingsOpen = false
	} else {
		s.openLocked()
	}
	return s.settingsOpen
}

// UpdateDraftField sets one draft field. Unknown field names fail with
// model.ErrInvalidField, a blank username or non-numeric age with
// model.ErrInvalidValue, and a session-only picture reference with
// ErrNotDurable. On error the draft is unchanged.
func (s *Store) UpdateDraftField(name, value string) error {
	field, err := model.ParseField(name)
	if err != nil {
		return err
	}
	if field == model.FieldProfilePicture && value != "" && !imageref.IsDurable(value) {
		return ErrNotDurable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.draft.With(field, value)
	if err != nil {
		return err
	}
	s.draft = next
	return nil
}

// SetDraftPicture stores an encoded picture reference on the draft. An empty
// ref clears the picture.
func (s *Store) SetDraftPicture(ref string) error {
	if ref != "" && !imageref.IsDurable(ref) {
		return ErrNotDurable
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.ProfilePicture = ref
	return nil
}

// SetDraftPictureFor applies ref only if the draft is still the one opened at
// generation gen. It reports whether the picture was applied.
func (s *Store) SetDraftPictureFor(gen uint64, ref string) (bool, error) {
	if ref != "" && !imageref.IsDurable(ref) {
		return false, ErrNotDurable
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.draftGen {
		return false, nil
	}
	s.draft.ProfilePicture = ref
	return true, nil
}

// CommitSettings replaces the committed profile with the draft, persists it
// and closes the panel.
func (s *Store) CommitSettings() model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = s.draft
	s.settingsOpen = false
	s.persistLocked(persist.KeyProfile, func() error {
		return s.adapter.SaveProfile(s.profile)
	})
	return s.profile
}

// AddWallpapers encodes each file and appends the results in input order.
// Ids are reserved before any file is read, so the batch lands exactly once
// and in order however the encodes finish. Files that fail to encode are
// logged and skipped. It returns the entries that were added.
func (s *Store) AddWallpapers(ctx context.Context, paths []string) []model.Wallpaper {
	if len(paths) == 0 {
		return nil
	}

	s.mu.RLock()
	taken := s.wallpapers.IDs()
	s.mu.RUnlock()
	ids := s.ids.Reserve(len(paths), taken)

	refs := make([]string, len(paths))
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, path := range paths {
		g.Go(func() error {
			ref, err := s.encoder.Encode(ctx, path)
			if err != nil {
				s.log.Warn(ctx, "skipping wallpaper", "path", path, "error", err)
				return nil
			}
			if !imageref.IsDurable(ref) {
				s.log.Warn(ctx, "skipping wallpaper", "path", path, "error", ErrNotDurable)
				return nil
			}
			refs[i] = ref
			return nil
		})
	}
	_ = g.Wait()

	batch := make([]model.Wallpaper, 0, len(paths))
	for i, ref := range refs {
		if ref == "" {
			continue
		}
		batch = append(batch, model.Wallpaper{ID: ids[i], URL: ref})
	}
	return s.appendWallpapers(batch)
}

func (s *Store) appendWallpapers(batch []model.Wallpaper) []model.Wallpaper {
	if len(batch) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]model.Wallpaper, 0, len(batch))
	for _, wp := range batch {
		if s.wallpapers.Contains(wp.ID) {
			// Reserved ids are checked against the collection at reservation
			// time; a clash here means an entry was added under the same id
			// since, and the newcomer loses.
			s.log.Error(context.Background(), "dropping wallpaper with duplicate id", "id", wp.ID)
			continue
		}
		s.wallpapers = append(s.wallpapers, wp)
		added = append(added, wp)
	}
	if len(added) > 0 {
		s.persistLocked(persist.KeyWallpapers, func() error {
			return s.adapter.SaveWallpapers(s.wallpapers)
		})
	}
	return added
}

// RemoveWallpaper deletes the entry with id. A missing id is a no-op. It
// reports whether an entry was removed.
func (s *Store) RemoveWallpaper(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.wallpapers.Index(id)
	if idx < 0 {
		return false
	}
	next := make(model.Wallpapers, 0, len(s.wallpapers)-1)
	next = append(next, s.wallpapers[:idx]...)
	next = append(next, s.wallpapers[idx+1:]...)
	s.wallpapers = next
	s.persistLocked(persist.KeyWallpapers, func() error {
		return s.adapter.SaveWallpapers(s.wallpapers)
	})
	return true
}

// Wallpaper returns the entry with id.
func (s *Store) Wallpaper(id string) (model.Wallpaper, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.wallpapers.Index(id)
	if idx < 0 {
		return model.Wallpaper{}, false
	}
	return s.wallpapers[idx], true
}

// RetryPersist rewrites all three entities when the last write failed. It
// reports whether storage is now in sync with memory.
func (s *Store) RetryPersist() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastPersistErr == nil {
		return true
	}
	err := errors.Join(
		s.adapter.SaveDisplayMode(s.darkMode),
		s.adapter.SaveProfile(s.profile),
		s.adapter.SaveWallpapers(s.wallpapers),
	)
	if err != nil {
		s.lastPersistErr = err
		s.consecutiveFailures++
		s.log.Warn(context.Background(), "persist retry failed", "error", err, "failures", s.consecutiveFailures)
		return false
	}
	s.log.Info(context.Background(), "persist recovered", "after_failures", s.consecutiveFailures)
	s.lastPersistErr = nil
	s.consecutiveFailures = 0
	return true
}

// persistLocked runs save while the write lock is held, so writes reach the
// medium in mutation order. A failed write is logged and recorded; the
// in-memory change stands.
func (s *Store) persistLocked(key persist.Key, save func() error) {
	if err := save(); err != nil {
		s.lastPersistErr = err
		s.consecutiveFailures++
		s.log.Error(context.Background(), "persist failed", "key", string(key), "error", err, "failures", s.consecutiveFailures)
		return
	}
	s.lastPersistErr = nil
	s.consecutiveFailures = 0
	s.log.Debug(context.Background(), "persisted", "key", string(key))
}
