package document

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var trailingDigits = regexp.MustCompile(`\d+$`)

// ParseSequence extracts the trailing numeric run of a document identifier.
// Returns 0 when the identifier carries no trailing number, so the next
// allocation starts at 1.
func ParseSequence(id string) int {
	m := trailingDigits.FindString(id)
	if m == "" {
		return 0
	}

	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}

	return n
}

// NextID builds the identifier for a new document of the given type:
// {FAC|DEV}-{YYYYMM}-{SEQ} with the sequence zero-padded to 4 digits.
// lastID is the identifier of the most recently created document of the same
// type, or empty when none exists. The sequence continues from the last
// document regardless of its period; only the period segment follows now.
func NextID(t Type, lastID string, now time.Time) string {
	seq := ParseSequence(lastID) + 1

	return fmt.Sprintf("%s-%d%02d-%04d", t.Prefix(), now.Year(), int(now.Month()), seq)
}
