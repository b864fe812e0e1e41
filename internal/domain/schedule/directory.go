package schedule

import (
	"fmt"
	"strings"
)

// Directory is the in-memory view of the schedule registry used by one
// reconciliation run. Excluded and night-shift entries are dropped at load
// time; identity keys are validated so every raw record matches at most one
// entry.
type Directory struct {
	entries []Entry

	byID    map[string]*Entry
	byEmail map[string]*Entry
	byName  map[string]*Entry
}

// NewDirectory builds a directory from registry entries. Entries with the
// exclusion flag or a night-shift note are filtered out. Returns
// ErrDuplicateIdentity when two kept entries share any identity key.
func NewDirectory(entries []Entry) (*Directory, error) {
	d := &Directory{
		byID:    make(map[string]*Entry),
		byEmail: make(map[string]*Entry),
		byName:  make(map[string]*Entry),
	}

	for _, e := range entries {
		if e.Skipped() || !e.HasIdentity() {
			continue
		}
		d.entries = append(d.entries, e)
	}

	for i := range d.entries {
		e := &d.entries[i]
		if err := index(d.byID, e.TrackerUserID, e); err != nil {
			return nil, err
		}
		if err := index(d.byEmail, e.Email, e); err != nil {
			return nil, err
		}
		if err := index(d.byName, e.Name, e); err != nil {
			return nil, err
		}
		for _, alias := range e.Aliases {
			// An alias can be either an alternate email or an alternate
			// display name; register it in both maps.
			if strings.Contains(alias, "@") {
				if err := index(d.byEmail, alias, e); err != nil {
					return nil, err
				}
			} else if err := index(d.byName, alias, e); err != nil {
				return nil, err
			}
		}
	}

	return d, nil
}

func index(m map[string]*Entry, key string, e *Entry) error {
	key = Normalize(key)
	if key == "" {
		return nil
	}
	if prev, ok := m[key]; ok && prev != e {
		return fmt.Errorf("%w: %q claimed by %q and %q", ErrDuplicateIdentity, key, prev.Name, e.Name)
	}
	m[key] = e
	return nil
}

// Normalize lowercases and trims an identity key.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Entries returns the filtered entries in registry order.
func (d *Directory) Entries() []Entry {
	return d.entries
}

// Len returns the number of active entries.
func (d *Directory) Len() int {
	return len(d.entries)
}

// LookupByID finds the entry with the given tracker user id.
func (d *Directory) LookupByID(id string) *Entry {
	return d.byID[Normalize(id)]
}

// LookupByEmail finds the entry with the given email or email alias.
func (d *Directory) LookupByEmail(email string) *Entry {
	return d.byEmail[Normalize(email)]
}

// LookupByName finds the entry with the given display name or name alias.
func (d *Directory) LookupByName(name string) *Entry {
	return d.byName[Normalize(name)]
}
