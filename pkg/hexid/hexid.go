// Package hexid validates the 24-character hexadecimal identifiers the
// document store hands out and provides a reserved sentinel id for
// lookups that must deterministically miss.
package hexid

// Length is the exact length of a valid resource identifier.
const Length = 24

// Sentinel is a syntactically valid identifier that is never assigned
// by the document store. Substituting it for an invalid external id
// keeps repository lookups type-safe while guaranteeing a miss.
const Sentinel = "000000000000000000000000"

// IsValid reports whether s is a well-formed resource identifier:
// exactly 24 characters, each a hexadecimal digit. Case is accepted
// but never normalized.
func IsValid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// OrSentinel returns s unchanged when it is a valid identifier and
// Sentinel otherwise.
func OrSentinel(s string) string {
	if IsValid(s) {
		return s
	}
	return Sentinel
}
