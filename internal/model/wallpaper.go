package model

// Wallpaper is one entry of the gallery. ID is unique within a collection and
// never changes; URL is an encoded image reference.
type Wallpaper struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Wallpapers is an ordered collection. Slice order is display order and
// persistence order.
type Wallpapers []Wallpaper

// Index returns the position of id, or -1.
func (w Wallpapers) Index(id string) int {
	for i, wp := range w {
		if wp.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether an entry with id exists.
func (w Wallpapers) Contains(id string) bool {
	return w.Index(id) >= 0
}

// IDs returns the set of ids in the collection.
func (w Wallpapers) IDs() map[string]struct{} {
	set := make(map[string]struct{}, len(w))
	for _, wp := range w {
		set[wp.ID] = struct{}{}
	}
	return set
}

// Clone returns an independent copy. A nil or empty collection clones to an
// empty, non-nil slice so it serialises as [] rather than null.
func (w Wallpapers) Clone() Wallpapers {
	dup := make(Wallpapers, len(w))
	copy(dup, w)
	return dup
}
