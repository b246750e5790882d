package models

import (
	"sort"
)

// Favorites is a set of company names starred by the user
type Favorites map[string]struct{}

// NewFavorites builds a set from the given names
func NewFavorites(names ...string) Favorites {
	f := make(Favorites, len(names))
	for _, n := range names {
		f[n] = struct{}{}
	}
	return f
}

// Contains reports whether name is starred
func (f Favorites) Contains(name string) bool {
	_, ok := f[name]
	return ok
}

// Clone returns an independent copy of the set
func (f Favorites) Clone() Favorites {
	c := make(Favorites, len(f))
	for n := range f {
		c[n] = struct{}{}
	}
	return c
}

// Sorted returns the names in alphabetical order, which is how they are presented
func (f Favorites) Sorted() []string {
	names := make([]string, 0, len(f))
	for n := range f {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Equal reports whether both sets hold the same names
func (f Favorites) Equal(other Favorites) bool {
	if len(f) != len(other) {
		return false
	}
	for n := range f {
		if !other.Contains(n) {
			return false
		}
	}
	return true
}

// SessionState is the per-client dashboard state.
// ActiveCompany is empty when no company has been selected yet.
type SessionState struct {
	Favorites     Favorites
	SearchText    string
	ActiveCompany string
}

// SessionView is the JSON shape of a session sent to the page
type SessionView struct {
	DisplayName   string    `json:"display_name"`
	SearchText    string    `json:"search_text"`
	ActiveCompany string    `json:"active_company,omitempty"`
	Favorites     []string  `json:"favorites"`
	IsFavorite    bool      `json:"is_favorite"`
	Warnings      []Warning `json:"warnings,omitempty"`
}

// View converts the state into its presentation form
func (s SessionState) View(displayName string) SessionView {
	return SessionView{
		DisplayName:   displayName,
		SearchText:    s.SearchText,
		ActiveCompany: s.ActiveCompany,
		Favorites:     s.Favorites.Sorted(),
		IsFavorite:    s.SearchText != "" && s.Favorites.Contains(s.SearchText),
	}
}
