// Package ulid wraps github.com/oklog/ulid/v2 with prefixes and database
// integration. Sync runs are keyed by prefixed ULIDs so they sort by start
// time in the run history table; detail loads carry one in their logs.
package ulid

import (
	"crypto/rand"
	"database/sql/driver"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	// PrefixRun marks catalog sync runs
	PrefixRun = "run"

	// PrefixDetail marks detail-aggregate loads
	PrefixDetail = "det"

	// PrefixSeparator is used to separate the prefix from the ULID
	PrefixSeparator = "-"
)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// ULID is a ulid.ULID with an optional human-readable prefix
type ULID struct {
	ulid.ULID
	prefix string
}

// generate creates a prefixed ULID stamped with t
func generate(prefix string, t time.Time) ULID {
	entropyLock.Lock()
	id := ulid.MustNew(ulid.Timestamp(t), entropy)
	entropyLock.Unlock()
	return ULID{id, prefix}
}

// NewRunID generates the id of a new sync run
func NewRunID() ULID {
	return generate(PrefixRun, time.Now())
}

// DetailID generates a new detail-load id
func DetailID() string {
	return generate(PrefixDetail, time.Now()).String()
}

// Parse parses plain ("01AN4Z07BY79KA1307SR9X4MV3") and prefixed
// ("run-01AN4Z07BY79KA1307SR9X4MV3") ULIDs
func Parse(id string) (ULID, error) {
	prefix, rawID, found := strings.Cut(id, PrefixSeparator)
	if !found {
		prefix, rawID = "", id
	}

	parsed, err := ulid.Parse(rawID)
	if err != nil {
		return ULID{}, err
	}
	return ULID{parsed, prefix}, nil
}

// MustParse is Parse for ids known to be valid; it panics otherwise
func MustParse(id string) ULID {
	u, err := Parse(id)
	if err != nil {
		panic(err)
	}
	return u
}

// IsZero returns true if the ULID is the zero value
func (u ULID) IsZero() bool {
	return u.ULID == ulid.ULID{}
}

// Prefix returns the prefix of the ULID
func (u ULID) Prefix() string {
	return u.prefix
}

// String returns "prefix-ulid", or the bare ULID when there is no prefix
func (u ULID) String() string {
	if u.prefix != "" {
		return u.prefix + PrefixSeparator + u.ULID.String()
	}
	return u.ULID.String()
}

// Value implements driver.Valuer; ULIDs are stored as prefixed strings
func (u ULID) Value() (driver.Value, error) {
	return u.String(), nil
}

// Scan implements sql.Scanner
func (u *ULID) Scan(src interface{}) error {
	var s string
	switch src := src.(type) {
	case nil:
		*u = ULID{}
		return nil
	case string:
		s = src
	case []byte:
		s = string(src)
	default:
		return fmt.Errorf("cannot scan %T into ULID", src)
	}

	parsed, err := Parse(s)
	if err != nil {
		return fmt.Errorf("scanning ULID %q: %w", s, err)
	}
	*u = parsed
	return nil
}
