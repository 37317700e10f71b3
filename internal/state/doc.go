// Package state holds folio's in-memory state and keeps the persisted copy in
// step with it.
//
// # Overview
//
// A Store owns five things:
//
//   - DarkMode: the display-mode flag (persisted)
//   - Profile: the committed profile (persisted)
//   - Wallpapers: the ordered gallery (persisted)
//   - Draft: a working copy of Profile edited by the settings panel
//   - SettingsOpen: whether the settings panel is showing
//
// The view never holds authoritative state. It reads Snapshot values and
// calls mutation methods; the store applies the change and writes the
// affected key through the persist.Adapter before returning.
//
// # Draft and Commit
//
//	OpenSettings()          Draft = Profile, generation++
//	UpdateDraftField(f, v)  Draft.f = v        (Profile untouched)
//	SetDraftPicture(ref)    Draft.picture = ref
//	CommitSettings()        Profile = Draft, persist profile, close
//	CloseSettings()         close              (Draft edits abandoned)
//
// Profile only changes through CommitSettings. Re-opening always starts from
// the committed profile, never from an abandoned draft. Profile is a value
// type, so copying it is a snapshot and the draft cannot alias it.
//
// DraftGeneration lets async work (encoding a picture file) detect that the
// draft it was started for has since been discarded; SetDraftPictureFor drops
// results for an older generation.
//
// # Wallpaper Batches
//
// AddWallpapers runs in three steps:
//
//  1. Reserve one id per input file (ident.Generator) and fix the batch order.
//  2. Encode the files concurrently, bounded by UploadWorkers.
//  3. Take the write lock once, append the successful entries in input order
//     and persist the collection.
//
// Because ids and slots are fixed before any encode starts, the batch lands
// exactly once and in input order however the encodes finish. A file that
// fails to encode is logged and skipped; an entry with no image is never
// appended.
//
// # Persistence Discipline
//
// Writes happen while the write lock is held, so the medium sees them in the
// same order as the mutations and the stored snapshot is always a prefix of
// the in-memory history. Mutation methods do not return write errors. A failed
// write is logged, recorded as Snapshot.LastPersistError and counted in
// ConsecutiveFailures, and the in-memory change stands; the next successful
// write clears both.
//
// # Concurrency Model
//
// All methods are safe for concurrent use. Mutations take the write lock,
// Snapshot takes the read lock and returns deep copies. Encoding happens
// outside the lock so the view stays responsive during large uploads.
package state
