package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidField is returned when a profile field name is not recognised.
	ErrInvalidField = errors.New("invalid profile field")
	// ErrInvalidValue is returned when a value cannot be stored in its field.
	ErrInvalidValue = errors.New("invalid profile value")
)

// Field names a single editable Profile attribute.
type Field string

const (
	FieldUsername       Field = "username"
	FieldGender         Field = "gender"
	FieldAge            Field = "age"
	FieldLocation       Field = "location"
	FieldAbout          Field = "about"
	FieldProfilePicture Field = "profilePicture"
)

// Fields lists every profile field in display order.
func Fields() []Field {
	return []Field{FieldUsername, FieldGender, FieldAge, FieldLocation, FieldAbout, FieldProfilePicture}
}

// ParseField maps a field name onto a Field. Matching is exact after trimming
// whitespace; the JSON name is the only accepted spelling.
func ParseField(name string) (Field, error) {
	trimmed := strings.TrimSpace(name)
	for _, f := range Fields() {
		if string(f) == trimmed {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidField, name)
}

const (
	DefaultUsername = "@unknown"
	DefaultGender   = "M"
	DefaultAge      = 100
	DefaultLocation = "USA"
	DefaultAbout    = "Blahblahblahblah"
)

// Profile is the committed user profile. ProfilePicture holds an encoded
// image reference; empty means no picture.
type Profile struct {
	Username       string `json:"username"`
	Gender         string `json:"gender"`
	Age            int    `json:"age"`
	Location       string `json:"location"`
	About          string `json:"about"`
	ProfilePicture string `json:"profilePicture"`
}

// DefaultProfile returns the profile used on first run.
func DefaultProfile() Profile {
	return Profile{
		Username: DefaultUsername,
		Gender:   DefaultGender,
		Age:      DefaultAge,
		Location: DefaultLocation,
		About:    DefaultAbout,
	}
}

// HasPicture reports whether a profile picture is set.
func (p Profile) HasPicture() bool {
	return strings.TrimSpace(p.ProfilePicture) != ""
}

// Get returns the string form of a field.
func (p Profile) Get(f Field) (string, error) {
	switch f {
	case FieldUsername:
		return p.Username, nil
	case FieldGender:
		return p.Gender, nil
	case FieldAge:
		return strconv.Itoa(p.Age), nil
	case FieldLocation:
		return p.Location, nil
	case FieldAbout:
		return p.About, nil
	case FieldProfilePicture:
		return p.ProfilePicture, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidField, string(f))
}

// With returns a copy of p with one field replaced. The receiver is never
// modified. Username must be non-blank and age a non-negative integer.
func (p Profile) With(f Field, value string) (Profile, error) {
	switch f {
	case FieldUsername:
		if strings.TrimSpace(value) == "" {
			return p, fmt.Errorf("%w: username must not be empty", ErrInvalidValue)
		}
		p.Username = value
	case FieldGender:
		p.Gender = value
	case FieldAge:
		age, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || age < 0 {
			return p, fmt.Errorf("%w: age %q", ErrInvalidValue, value)
		}
		p.Age = age
	case FieldLocation:
		p.Location = value
	case FieldAbout:
		p.About = value
	case FieldProfilePicture:
		p.ProfilePicture = value
	default:
		return p, fmt.Errorf("%w: %q", ErrInvalidField, string(f))
	}
	return p, nil
}

// Summary renders the one-line "handle, gender, age" caption.
func (p Profile) Summary() string {
	return fmt.Sprintf("%s, %s, %d", p.Username, p.Gender, p.Age)
}
