package state

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/five82/folio/internal/kv"
	"github.com/five82/folio/internal/model"
	"github.com/five82/folio/internal/persist"
)

// fakeEncoder maps paths to refs. Paths listed in fail return an error and
// delay lets tests finish encodes out of input order.
type fakeEncoder struct {
	fail  map[string]bool
	delay map[string]time.Duration
}

func (f fakeEncoder) Encode(ctx context.Context, path string) (string, error) {
	if d := f.delay[path]; d > 0 {
		time.Sleep(d)
	}
	if f.fail[path] {
		return "", fmt.Errorf("unreadable %s", path)
	}
	return "data:image/png;base64," + path, nil
}

func newTestStore(t *testing.T, enc fakeEncoder) (*Store, *kv.MemoryStore, *persist.Adapter) {
	t.Helper()
	mem := kv.NewMemoryStore()
	adapter := persist.New(mem)
	return New(Options{Adapter: adapter, Encoder: enc}), mem, adapter
}

func TestNew_Defaults(t *testing.T) {
	s, _, _ := newTestStore(t, fakeEncoder{})
	snap := s.Snapshot()

	if snap.DarkMode {
		t.Fatal("DarkMode = true, want false")
	}
	if snap.Profile != model.DefaultProfile() {
		t.Fatalf("Profile = %#v, want defaults", snap.Profile)
	}
	if snap.Draft != snap.Profile {
		t.Fatal("Draft should start as a copy of Profile")
	}
	if snap.SettingsOpen {
		t.Fatal("SettingsOpen = true, want false")
	}
	if len(snap.Wallpapers) != 0 {
		t.Fatalf("Wallpapers = %#v, want empty", snap.Wallpapers)
	}
}

func TestNew_LoadsPersistedState(t *testing.T) {
	mem := kv.NewMemoryStore()
	_ = mem.Set("darkMode", []byte("true"))
	_ = mem.Set("profile", []byte(`{"username":"@bob"}`))
	_ = mem.Set("wallpapers", []byte(`[{"id":"1-a","url":"data:image/png;base64,AA"}]`))

	snap := New(Options{Adapter: persist.New(mem)}).Snapshot()
	if !snap.DarkMode {
		t.Fatal("DarkMode not loaded")
	}
	if snap.Profile.Username != "@bob" || snap.Draft.Username != "@bob" {
		t.Fatalf("Profile/Draft = %q/%q, want @bob", snap.Profile.Username, snap.Draft.Username)
	}
	if len(snap.Wallpapers) != 1 || snap.Wallpapers[0].ID != "1-a" {
		t.Fatalf("Wallpapers = %#v", snap.Wallpapers)
	}
}

func TestToggleDisplayMode_PersistsEveryFlip(t *testing.T) {
	s, _, adapter := newTestStore(t, fakeEncoder{})

	for i := 0; i < 5; i++ {
		got := s.ToggleDisplayMode()
		if got != s.Snapshot().DarkMode {
			t.Fatalf("return value %v differs from state", got)
		}
		if persisted := adapter.DisplayMode(); persisted != got {
			t.Fatalf("flip %d: persisted = %v, in-memory = %v", i, persisted, got)
		}
	}
}

func TestOpenSettings_ResetsDraft(t *testing.T) {
	s, _, _ := newTestStore(t, fakeEncoder{})

	s.OpenSettings()
	if err := s.UpdateDraftField("username", "@abandoned"); err != nil {
		t.Fatalf("UpdateDraftField: %v", err)
	}
	s.CloseSettings()

	s.OpenSettings()
	snap := s.Snapshot()
	if snap.Draft != snap.Profile {
		t.Fatalf("Draft = %#v, want equal to Profile %#v", snap.Draft, snap.Profile)
	}
	if !snap.SettingsOpen {
		t.Fatal("SettingsOpen = false after OpenSettings")
	}
}

func TestOpenSettings_BumpsGeneration(t *testing.T) {
	s, _, _ := newTestStore(t, fakeEncoder{})
	before := s.Snapshot().DraftGeneration
	s.OpenSettings()
	s.OpenSettings()
	if got := s.Snapshot().DraftGeneration; got != before+2 {
		t.Fatalf("DraftGeneration = %d, want %d", got, before+2)
	}
}

func TestUpdateDraftField_InvalidFieldLeavesStateUnchanged(t *testing.T) {
	s, mem, _ := newTestStore(t, fakeEncoder{})
	s.OpenSettings()
	before := s.Snapshot()

	err := s.UpdateDraftField("email", "x@example.com")
	if !errors.Is(err, model.ErrInvalidField) {
		t.Fatalf("err = %v, want ErrInvalidField", err)
	}
	err = s.UpdateDraftField("age", "ancient")
	if !errors.Is(err, model.ErrInvalidValue) {
		t.Fatalf("err = %v, want ErrInvalidValue", err)
	}

	after := s.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("state changed on rejected edits:\n%#v\n%#v", before, after)
	}
	if mem.Writes() != 0 {
		t.Fatalf("draft edits must not persist; writes = %d", mem.Writes())
	}
}

func TestDraftEditsDoNotTouchProfile(t *testing.T) {
	s, _, _ := newTestStore(t, fakeEncoder{})
	s.OpenSettings()
	_ = s.UpdateDraftField("location", "Oslo")
	_ = s.UpdateDraftField("age", "33")

	snap := s.Snapshot()
	if snap.Profile.Location != model.DefaultLocation || snap.Profile.Age != model.DefaultAge {
		t.Fatalf("committed profile changed before commit: %#v", snap.Profile)
	}
	if snap.Draft.Location != "Oslo" || snap.Draft.Age != 33 {
		t.Fatalf("draft = %#v", snap.Draft)
	}
	if !snap.DraftChanged() {
		t.Fatal("DraftChanged() = false with pending edits")
	}
}

func TestScenario_CloseDiscardsCommitPersists(t *testing.T) {
	s, _, adapter := newTestStore(t, fakeEncoder{})

	s.OpenSettings()
	if err := s.UpdateDraftField("username", "@alice"); err != nil {
		t.Fatalf("UpdateDraftField: %v", err)
	}
	s.CloseSettings()
	if got := s.Snapshot().Profile.Username; got != "@unknown" {
		t.Fatalf("Username after close = %q, want @unknown", got)
	}
	if got := adapter.Profile().Username; got != "@unknown" {
		t.Fatalf("persisted Username after close = %q, want @unknown", got)
	}

	s.OpenSettings()
	if err := s.UpdateDraftField("username", "@alice"); err != nil {
		t.Fatalf("UpdateDraftField: %v", err)
	}
	s.CommitSettings()

	snap := s.Snapshot()
	if snap.Profile.Username != "@alice" {
		t.Fatalf("Username after commit = %q, want @alice", snap.Profile.Username)
	}
	if snap.SettingsOpen {
		t.Fatal("CommitSettings should close the panel")
	}
	if got := adapter.Profile().Username; got != "@alice" {
		t.Fatalf("persisted Username = %q, want @alice", got)
	}
}

func TestCommitSettings_Idempotent(t *testing.T) {
	s, _, _ := newTestStore(t, fakeEncoder{})
	s.OpenSettings()
	_ = s.UpdateDraftField("about", "hello")

	first := s.CommitSettings()
	second := s.CommitSettings()
	if first != second {
		t.Fatalf("second commit changed profile: %#v vs %#v", first, second)
	}
}

func TestCommitSettings_DraftIsSnapshotNotAlias(t *testing.T) {
	s, _, _ := newTestStore(t, fakeEncoder{})
	s.OpenSettings()
	_ = s.UpdateDraftField("gender", "F")
	s.CommitSettings()

	// Editing the draft after a commit must not reach the committed profile.
	_ = s.UpdateDraftField("gender", "X")
	if got := s.Snapshot().Profile.Gender; got != "F" {
		t.Fatalf("Profile.Gender = %q, want F", got)
	}
}

func TestSetDraftPicture(t *testing.T) {
	s, _, adapter := newTestStore(t, fakeEncoder{})
	s.OpenSettings()

	if err := s.SetDraftPicture("blob:http://localhost/1"); !errors.Is(err, ErrNotDurable) {
		t.Fatalf("err = %v, want ErrNotDurable", err)
	}
	if err := s.SetDraftPicture("data:image/png;base64,AA"); err != nil {
		t.Fatalf("SetDraftPicture: %v", err)
	}
	if s.Snapshot().Profile.HasPicture() {
		t.Fatal("picture reached profile before commit")
	}
	s.CommitSettings()
	if got := adapter.Profile().ProfilePicture; got != "data:image/png;base64,AA" {
		t.Fatalf("persisted picture = %q", got)
	}
}

func TestSetDraftPictureFor_StaleGenerationIgnored(t *testing.T) {
	s, _, _ := newTestStore(t, fakeEncoder{})
	s.OpenSettings()
	gen := s.Snapshot().DraftGeneration

	s.CloseSettings()
	s.OpenSettings()

	applied, err := s.SetDraftPictureFor(gen, "data:image/png;base64,AA")
	if err != nil {
		t.Fatalf("SetDraftPictureFor: %v", err)
	}
	if applied {
		t.Fatal("stale picture applied to a newer draft")
	}
	if s.Snapshot().Draft.HasPicture() {
		t.Fatal("draft has picture from stale generation")
	}

	applied, _ = s.SetDraftPictureFor(s.Snapshot().DraftGeneration, "data:image/png;base64,AA")
	if !applied {
		t.Fatal("current generation picture not applied")
	}
}

func TestToggleSettings(t *testing.T) {
	s, _, _ := newTestStore(t, fakeEncoder{})
	if !s.ToggleSettings() {
		t.Fatal("ToggleSettings should open a closed panel")
	}
	_ = s.UpdateDraftField("username", "@x")
	if s.ToggleSettings() {
		t.Fatal("ToggleSettings should close an open panel")
	}
	s.ToggleSettings()
	if snap := s.Snapshot(); snap.Draft != snap.Profile {
		t.Fatal("reopening via ToggleSettings should reset the draft")
	}
}

func TestScenario_AddThenRemove(t *testing.T) {
	// fileA finishes last so completion order differs from input order.
	enc := fakeEncoder{delay: map[string]time.Duration{"fileA": 20 * time.Millisecond}}
	s, _, adapter := newTestStore(t, enc)

	added := s.AddWallpapers(context.Background(), []string{"fileA", "fileB"})
	if len(added) != 2 {
		t.Fatalf("added %d, want 2", len(added))
	}

	walls := s.Snapshot().Wallpapers
	if len(walls) != 2 {
		t.Fatalf("len = %d, want 2", len(walls))
	}
	if walls[0].ID == walls[1].ID {
		t.Fatalf("ids not distinct: %q", walls[0].ID)
	}
	if walls[0].URL != "data:image/png;base64,fileA" || walls[1].URL != "data:image/png;base64,fileB" {
		t.Fatalf("order wrong: %#v", walls)
	}

	if !s.RemoveWallpaper(walls[0].ID) {
		t.Fatal("RemoveWallpaper returned false for existing id")
	}
	walls = s.Snapshot().Wallpapers
	if len(walls) != 1 || walls[0].URL != "data:image/png;base64,fileB" {
		t.Fatalf("after remove: %#v", walls)
	}
	if persisted := adapter.Wallpapers(); len(persisted) != 1 || persisted[0] != walls[0] {
		t.Fatalf("persisted = %#v, want %#v", persisted, walls)
	}
}

func TestAddWallpapers_SkipsUnreadable(t *testing.T) {
	enc := fakeEncoder{fail: map[string]bool{"bad": true}}
	s, _, adapter := newTestStore(t, enc)

	added := s.AddWallpapers(context.Background(), []string{"a", "bad", "c"})
	if len(added) != 2 {
		t.Fatalf("added %d, want 2", len(added))
	}
	walls := s.Snapshot().Wallpapers
	if walls[0].URL != "data:image/png;base64,a" || walls[1].URL != "data:image/png;base64,c" {
		t.Fatalf("order wrong: %#v", walls)
	}
	for _, wp := range walls {
		if wp.URL == "" {
			t.Fatal("entry with empty url appended")
		}
	}
	if len(adapter.Wallpapers()) != 2 {
		t.Fatal("persisted collection should have 2 entries")
	}
}

func TestAddWallpapers_IDsDistinctAcrossCalls(t *testing.T) {
	s, _, _ := newTestStore(t, fakeEncoder{})

	var paths []string
	for i := 0; i < 25; i++ {
		paths = append(paths, fmt.Sprintf("f%d", i))
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddWallpapers(context.Background(), paths)
		}()
	}
	wg.Wait()

	walls := s.Snapshot().Wallpapers
	if len(walls) != 100 {
		t.Fatalf("len = %d, want 100", len(walls))
	}
	seen := map[string]bool{}
	for _, wp := range walls {
		if seen[wp.ID] {
			t.Fatalf("duplicate id %q", wp.ID)
		}
		seen[wp.ID] = true
	}
}

func TestAddWallpapers_AvoidsPreexistingIDs(t *testing.T) {
	mem := kv.NewMemoryStore()
	// Seed ids in the shape the generator produces.
	var seeded string
	for i := 1; i <= 50; i++ {
		if i > 1 {
			seeded += ","
		}
		seeded += fmt.Sprintf(`{"id":"%d-00000000","url":"data:image/png;base64,x"}`, i)
	}
	_ = mem.Set("wallpapers", []byte("["+seeded+"]"))

	s := New(Options{Adapter: persist.New(mem), Encoder: fakeEncoder{}})
	s.ids.Random = func() string { return "00000000" }

	added := s.AddWallpapers(context.Background(), []string{"x", "y", "z"})
	if len(added) != 3 {
		t.Fatalf("added %d, want 3", len(added))
	}
	seen := map[string]bool{}
	for _, wp := range s.Snapshot().Wallpapers {
		if seen[wp.ID] {
			t.Fatalf("duplicate id %q", wp.ID)
		}
		seen[wp.ID] = true
	}
}

func TestAddWallpapers_EmptyInput(t *testing.T) {
	s, mem, _ := newTestStore(t, fakeEncoder{})
	if added := s.AddWallpapers(context.Background(), nil); len(added) != 0 {
		t.Fatalf("added = %#v", added)
	}
	if mem.Writes() != 0 {
		t.Fatal("empty batch should not write")
	}
}

func TestRemoveWallpaper_UnknownIDIsNoop(t *testing.T) {
	s, mem, _ := newTestStore(t, fakeEncoder{})
	s.AddWallpapers(context.Background(), []string{"a", "b"})
	before := s.Snapshot().Wallpapers
	writes := mem.Writes()
	raw, _, _ := mem.Get("wallpapers")

	if s.RemoveWallpaper("nope") {
		t.Fatal("RemoveWallpaper(nope) = true")
	}
	if after := s.Snapshot().Wallpapers; !reflect.DeepEqual(before, after) {
		t.Fatalf("collection changed: %#v -> %#v", before, after)
	}
	rawAfter, _, _ := mem.Get("wallpapers")
	if string(raw) != string(rawAfter) || mem.Writes() != writes {
		t.Fatal("no-op removal touched storage")
	}
}

func TestPersistFailure_KeepsInMemoryState(t *testing.T) {
	s, mem, _ := newTestStore(t, fakeEncoder{})
	quota := errors.New("quota exceeded")
	mem.FailWrites(quota)

	if !s.ToggleDisplayMode() {
		t.Fatal("toggle should still flip in memory")
	}
	s.AddWallpapers(context.Background(), []string{"a"})

	snap := s.Snapshot()
	if !snap.DarkMode || len(snap.Wallpapers) != 1 {
		t.Fatalf("in-memory state rolled back: %#v", snap)
	}
	if snap.LastPersistError == nil || snap.ConsecutiveFailures != 2 {
		t.Fatalf("LastPersistError = %v, failures = %d", snap.LastPersistError, snap.ConsecutiveFailures)
	}
	if !errors.Is(snap.LastPersistError, quota) {
		t.Fatalf("LastPersistError = %v, want the storage error in its chain", snap.LastPersistError)
	}

	mem.FailWrites(nil)
	s.ToggleDisplayMode()
	snap = s.Snapshot()
	if snap.LastPersistError != nil || snap.ConsecutiveFailures != 0 {
		t.Fatalf("successful write should clear error: %v / %d", snap.LastPersistError, snap.ConsecutiveFailures)
	}
}

func TestRetryPersist(t *testing.T) {
	s, mem, adapter := newTestStore(t, fakeEncoder{})
	if !s.RetryPersist() {
		t.Fatal("RetryPersist with nothing pending should report in sync")
	}
	if mem.Writes() != 0 {
		t.Fatalf("RetryPersist wrote %d times with nothing pending", mem.Writes())
	}

	mem.FailWrites(errors.New("disk full"))
	s.ToggleDisplayMode()
	if s.RetryPersist() {
		t.Fatal("RetryPersist should fail while writes fail")
	}
	if got := s.Snapshot().ConsecutiveFailures; got != 2 {
		t.Fatalf("ConsecutiveFailures = %d, want 2", got)
	}

	mem.FailWrites(nil)
	if !s.RetryPersist() {
		t.Fatal("RetryPersist should succeed once writes work")
	}
	snap := s.Snapshot()
	if snap.LastPersistError != nil || snap.ConsecutiveFailures != 0 {
		t.Fatalf("retry did not clear failure state: %v / %d", snap.LastPersistError, snap.ConsecutiveFailures)
	}
	if !adapter.DisplayMode() {
		t.Fatal("retry did not write the toggled display mode")
	}
}

func TestSnapshot_IsIndependent(t *testing.T) {
	s, _, _ := newTestStore(t, fakeEncoder{})
	s.AddWallpapers(context.Background(), []string{"a"})

	snap := s.Snapshot()
	snap.Wallpapers[0].URL = "mutated"
	if s.Snapshot().Wallpapers[0].URL == "mutated" {
		t.Fatal("Snapshot should clone wallpapers")
	}
}

func TestReload_RoundTrip(t *testing.T) {
	s, mem, _ := newTestStore(t, fakeEncoder{})
	s.ToggleDisplayMode()
	s.OpenSettings()
	_ = s.UpdateDraftField("about", "hi there")
	s.CommitSettings()
	s.AddWallpapers(context.Background(), []string{"a", "b"})
	want := s.Snapshot()

	got := New(Options{Adapter: persist.New(mem)}).Snapshot()
	if got.DarkMode != want.DarkMode || got.Profile != want.Profile || !reflect.DeepEqual(got.Wallpapers, want.Wallpapers) {
		t.Fatalf("reloaded state differs:\n got  %#v\n want %#v", got, want)
	}
}

func TestUpdateDraftField_BlankUsernameRejected(t *testing.T) {
	s, _, _ := newTestStore(t, fakeEncoder{})
	s.OpenSettings()
	_ = s.UpdateDraftField("username", "@ada")

	if err := s.UpdateDraftField("username", "  "); !errors.Is(err, model.ErrInvalidValue) {
		t.Fatalf("err = %v, want ErrInvalidValue", err)
	}
	if got := s.Snapshot().Draft.Username; got != "@ada" {
		t.Fatalf("Draft.Username = %q, want @ada", got)
	}
}

func TestUpdateDraftField_TransientPictureRejected(t *testing.T) {
	s, _, _ := newTestStore(t, fakeEncoder{})
	s.OpenSettings()

	if err := s.UpdateDraftField("profilePicture", "blob:http://x/1"); !errors.Is(err, ErrNotDurable) {
		t.Fatalf("err = %v, want ErrNotDurable", err)
	}
	if s.Snapshot().Draft.HasPicture() {
		t.Fatal("transient reference reached the draft")
	}

	ref := "data:image/png;base64,AAAA"
	if err := s.UpdateDraftField("profilePicture", ref); err != nil {
		t.Fatalf("durable ref rejected: %v", err)
	}
	if err := s.UpdateDraftField("profilePicture", ""); err != nil {
		t.Fatalf("clearing the picture failed: %v", err)
	}
}

func TestCommittedProfile_SurvivesReload(t *testing.T) {
	s, mem, _ := newTestStore(t, fakeEncoder{})
	s.OpenSettings()
	_ = s.UpdateDraftField("username", "")
	_ = s.UpdateDraftField("profilePicture", "blob:http://x/1")
	_ = s.UpdateDraftField("gender", "")
	_ = s.UpdateDraftField("age", "7")
	committed := s.CommitSettings()

	reloaded := New(Options{Adapter: persist.New(mem)}).Snapshot().Profile
	if reloaded != committed {
		t.Fatalf("reloaded profile differs:\n got  %#v\n want %#v", reloaded, committed)
	}
	if committed.Username != model.DefaultUsername || committed.HasPicture() {
		t.Fatalf("rejected edits reached the committed profile: %#v", committed)
	}
}
