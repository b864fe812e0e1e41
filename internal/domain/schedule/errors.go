package schedule

import "errors"

// ErrDuplicateIdentity means two entries share a tracker id, email, name
// or alias. Raw records could then match either entry, so the directory
// refuses to load until the registry is fixed.
var ErrDuplicateIdentity = errors.New("duplicate identity across schedule entries")
