// Package region maps free-text Korean addresses to one of the 17
// top-level administrative divisions and their map centers.
package region

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// RegionCount is the number of top-level divisions in the static table.
	RegionCount = 17

	ZoomResolved   = 10
	ZoomNationwide = 7
)

// DefaultCenter is the nationwide map center used when nothing matches.
var DefaultCenter = [2]float64{36.5, 127.5}

//go:embed regions.yaml
var defaultTable []byte

// Entry is a canonical region and its map center
type Entry struct {
	CanonicalName string  `yaml:"name"`
	Latitude      float64 `yaml:"lat"`
	Longitude     float64 `yaml:"lon"`
}

// Alias maps an abbreviation or legacy name to a canonical region
type Alias struct {
	Alias     string `yaml:"alias"`
	Canonical string `yaml:"region"`
}

// Resolution is the outcome of Resolve. When Resolved is false the
// coordinates are DefaultCenter and Canonical is empty.
type Resolution struct {
	Canonical string
	Latitude  float64
	Longitude float64
	Zoom      int
	Resolved  bool
}

// Center returns the resolution coordinates as [lat, lon]
func (r Resolution) Center() [2]float64 {
	return [2]float64{r.Latitude, r.Longitude}
}

type table struct {
	Regions []Entry `yaml:"regions"`
	Aliases []Alias `yaml:"aliases"`
}

// Resolver resolves addresses against an ordered alias table
type Resolver struct {
	entries map[string]Entry
	order   []Entry
	aliases []Alias
}

// New builds a resolver from explicit entries and aliases.
// Aliases keep the given order, which is their matching priority.
func New(entries []Entry, aliases []Alias) (*Resolver, error) {
	r := &Resolver{
		entries: make(map[string]Entry, len(entries)),
		order:   make([]Entry, 0, len(entries)),
		aliases: make([]Alias, 0, len(aliases)),
	}
	for _, e := range entries {
		if e.CanonicalName == "" {
			return nil, fmt.Errorf("region entry with empty name")
		}
		if _, dup := r.entries[e.CanonicalName]; dup {
			return nil, fmt.Errorf("duplicate region %q", e.CanonicalName)
		}
		r.entries[e.CanonicalName] = e
		r.order = append(r.order, e)
	}
	for i, a := range aliases {
		if a.Alias == "" {
			return nil, fmt.Errorf("alias[%d]: empty alias", i)
		}
		if _, ok := r.entries[a.Canonical]; !ok {
			return nil, fmt.Errorf("alias[%d] %q: unknown region %q", i, a.Alias, a.Canonical)
		}
		r.aliases = append(r.aliases, a)
	}
	return r, nil
}

// Load parses a YAML region table and checks it carries exactly RegionCount regions
func Load(data []byte) (*Resolver, error) {
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse region table: %w", err)
	}
	if len(t.Regions) != RegionCount {
		return nil, fmt.Errorf("region table has %d regions, want %d", len(t.Regions), RegionCount)
	}
	return New(t.Regions, t.Aliases)
}

// Default returns a resolver over the embedded table.
func Default() *Resolver {
	r, err := Load(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("embedded region table is invalid: %v", err))
	}
	return r
}

// Resolve finds the first alias, in priority order, that occurs anywhere in
// raw. Matching is by plain substring, so a two-character alias can match
// inside unrelated text; that is the established behavior.
func (r *Resolver) Resolve(raw string) Resolution {
	for _, a := range r.aliases {
		if strings.Contains(raw, a.Alias) {
			e := r.entries[a.Canonical]
			return Resolution{
				Canonical: e.CanonicalName,
				Latitude:  e.Latitude,
				Longitude: e.Longitude,
				Zoom:      ZoomResolved,
				Resolved:  true,
			}
		}
	}
	return Resolution{
		Latitude:  DefaultCenter[0],
		Longitude: DefaultCenter[1],
		Zoom:      ZoomNationwide,
	}
}

// WithSelfAliases returns a resolver that, after the declared aliases, also
// matches every canonical name against itself. Address resolution uses the
// declared aliases only; this is for names that are already canonical or
// nearly so, such as boundary feature names.
func (r *Resolver) WithSelfAliases() *Resolver {
	out := &Resolver{
		entries: r.entries,
		order:   r.order,
		aliases: append([]Alias(nil), r.aliases...),
	}
	for _, e := range r.order {
		out.aliases = append(out.aliases, Alias{Alias: e.CanonicalName, Canonical: e.CanonicalName})
	}
	return out
}

// Lookup returns the entry for a canonical name
func (r *Resolver) Lookup(canonical string) (Entry, bool) {
	e, ok := r.entries[canonical]
	return e, ok
}

// Entries returns the regions in table order
func (r *Resolver) Entries() []Entry {
	return append([]Entry(nil), r.order...)
}

// Aliases returns the aliases in priority order
func (r *Resolver) Aliases() []Alias {
	return append([]Alias(nil), r.aliases...)
}
