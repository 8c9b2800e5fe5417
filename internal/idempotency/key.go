// Package idempotency derives deterministic deduplication keys for recurring
// charges.
package idempotency

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const (
	separator  = "|"
	dateFormat = "2006-01-02"

	// 15 hex digits = 60 bits, always below the signed 63-bit ceiling.
	prefixHexDigits = 15
)

// PeriodKey returns the deduplication key for a (user, period) pair. The same
// inputs always produce the same key.
func PeriodKey(userID int64, periodStart, periodEnd time.Time) int64 {
	return derive(userID, periodStart.Format(dateFormat), periodEnd.Format(dateFormat))
}

// ParsePeriodKey is PeriodKey for raw date strings. Malformed dates are the
// only failure.
func ParsePeriodKey(userID int64, periodStart, periodEnd string) (int64, error) {
	start, err := time.Parse(dateFormat, periodStart)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid period start %q", periodStart)
	}
	end, err := time.Parse(dateFormat, periodEnd)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid period end %q", periodEnd)
	}
	return PeriodKey(userID, start, end), nil
}

func derive(userID int64, start, end string) int64 {
	material := fmt.Sprintf("%d%s%s%s%s", userID, separator, start, separator, end)
	sum := sha256.Sum256([]byte(material))
	prefix := hex.EncodeToString(sum[:])[:prefixHexDigits]
	// cannot fail: prefix is hex and fits in 60 bits
	value, _ := strconv.ParseUint(prefix, 16, 64)
	return int64(value)
}
