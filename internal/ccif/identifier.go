package ccif

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// uuidLen is the canonical textual length of a CommerceTools resource id.
const uuidLen = 36

// Identifier is a parsed CCIF resource id. CCIF ids are the CommerceTools
// uuid optionally followed by "-<version>", the remote version observed when
// the id was handed to the caller.
type Identifier struct {
	id      string
	version int64
	hasVer  bool
}

// ParseIdentifier parses a CCIF resource id of the form <uuid>[-<version>].
func ParseIdentifier(s string) (Identifier, error) {
	if len(s) < uuidLen {
		return Identifier{}, fmt.Errorf("invalid ccif id %q", s)
	}

	ctID := s[:uuidLen]
	if _, err := uuid.Parse(ctID); err != nil {
		return Identifier{}, fmt.Errorf("invalid ccif id %q: %w", s, err)
	}

	rest := s[uuidLen:]
	if rest == "" {
		return Identifier{id: ctID}, nil
	}

	ver, ok := strings.CutPrefix(rest, "-")
	if !ok {
		return Identifier{}, fmt.Errorf("invalid ccif id %q", s)
	}
	v, err := strconv.ParseInt(ver, 10, 64)
	if err != nil || v < 0 {
		return Identifier{}, fmt.Errorf("invalid version in ccif id %q", s)
	}

	return Identifier{id: ctID, version: v, hasVer: true}, nil
}

// CommerceToolsID returns the raw CommerceTools resource id.
func (i Identifier) CommerceToolsID() string {
	return i.id
}

// Version returns the version suffix and whether one was present.
func (i Identifier) Version() (int64, bool) {
	return i.version, i.hasVer
}

// FormatIdentifier builds the CCIF id handed to callers from a CommerceTools
// id and its observed version.
func FormatIdentifier(id string, version int64) string {
	return fmt.Sprintf("%s-%d", id, version)
}
