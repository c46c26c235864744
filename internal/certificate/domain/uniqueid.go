package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const uniqueIDPrefix = "GDGOC"

// NewUniqueID generates a shareable certificate identifier of the form
// GDGOC-<base36 millisecond timestamp>-<8 hex chars>, uppercased. The
// 32-bit random suffix makes same-millisecond collisions astronomically
// unlikely but not impossible; callers must treat a unique-constraint
// violation on insert as a regenerate-and-retry case.
func NewUniqueID(now time.Time) (string, error) {
	ts := strconv.FormatInt(now.UnixMilli(), 36)

	var suffix [4]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		return "", fmt.Errorf("generate unique id: %w", err)
	}

	id := fmt.Sprintf("%s-%s-%s", uniqueIDPrefix, ts, hex.EncodeToString(suffix[:]))
	return strings.ToUpper(id), nil
}
