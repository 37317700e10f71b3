package persist

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/five82/folio/internal/model"
)

// storedProfile is the on-disk profile shape. Pointers distinguish a missing
// field from an empty one.
type storedProfile struct {
	Username       *string  `json:"username"`
	Gender         *string  `json:"gender"`
	Age            *flexInt `json:"age"`
	Location       *string  `json:"location"`
	About          *string  `json:"about"`
	ProfilePicture *string  `json:"profilePicture"`
	present        bool
}

func (s *storedProfile) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	type plain storedProfile
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = storedProfile(p)
	s.present = true
	return nil
}

func (s storedProfile) onto(p model.Profile) model.Profile {
	if s.Username != nil && strings.TrimSpace(*s.Username) != "" {
		p.Username = *s.Username
	}
	if s.Gender != nil {
		p.Gender = *s.Gender
	}
	if s.Age != nil {
		p.Age = int(*s.Age)
	}
	if s.Location != nil {
		p.Location = *s.Location
	}
	if s.About != nil {
		p.About = *s.About
	}
	if s.ProfilePicture != nil && !isTransient(*s.ProfilePicture) {
		p.ProfilePicture = *s.ProfilePicture
	}
	return p
}

func toStoredProfile(p model.Profile) storedProfile {
	age := flexInt(p.Age)
	s := storedProfile{
		Username: &p.Username,
		Gender:   &p.Gender,
		Age:      &age,
		Location: &p.Location,
		About:    &p.About,
	}
	if p.HasPicture() {
		s.ProfilePicture = &p.ProfilePicture
	}
	return s
}

// flexInt accepts 42 or "42". Form inputs historically stored age as text.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

// Session-only references created at upload time that do not survive a restart.
var transientPrefixes = []string{"blob:"}

func isTransient(url string) bool {
	for _, p := range transientPrefixes {
		if strings.HasPrefix(url, p) {
			return true
		}
	}
	return false
}

// storedWallpaper accepts numeric ids, which older snapshots contain.
type storedWallpaper struct {
	ID  flexString `json:"id"`
	URL string     `json:"url"`
}

type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func sanitizeWallpapers(in []storedWallpaper) model.Wallpapers {
	out := make(model.Wallpapers, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, sw := range in {
		wp := model.Wallpaper{ID: string(sw.ID), URL: sw.URL}
		if strings.TrimSpace(wp.ID) == "" || strings.TrimSpace(wp.URL) == "" {
			continue
		}
		if isTransient(wp.URL) {
			continue
		}
		if _, dup := seen[wp.ID]; dup {
			continue
		}
		seen[wp.ID] = struct{}{}
		out = append(out, wp)
	}
	return out
}
