// Package model defines the entities folio persists: the user Profile and the
// ordered Wallpapers collection. Display mode is a plain bool and has no type
// of its own.
//
// Profile values are small and always copied by value. Edits go through
// Profile.With, which returns a new value, so a draft can never alias the
// committed profile.
package model
