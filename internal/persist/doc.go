// Package persist translates folio's entities to and from the key-value
// medium.
//
// # Storage Layout
//
//	darkMode    bool                                  default false
//	profile     {username, gender, age, location,     default model.DefaultProfile()
//	             about, profilePicture}
//	wallpapers  [{id, url}, ...]                      default []
//
// # Load Semantics
//
// Loads never fail. A missing key, a read error or a document that does not
// decode gives the documented default. Two repairs are applied on top:
//
//   - profile: the stored document is laid over the defaults, so a document
//     missing fields still yields a complete Profile; age may be a number or a
//     numeric string. A blank username or a "blob:" picture is ignored.
//   - wallpapers: entries with an empty id or url, entries holding a
//     session-only "blob:" reference, and repeated ids are dropped. Numeric ids
//     are read as their decimal text.
//
// # Save Semantics
//
// Save replaces the whole value under a key and returns any write error. The
// caller decides what a failed write means; the state store logs it and keeps
// going.
package persist
