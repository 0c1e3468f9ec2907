package brew

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Apple's reference epoch: 2001-01-01 00:00:00 UTC, as a Unix timestamp.
// The com.apple.quarantine xattr counts seconds from here, not from the
// Unix epoch.
const appleEpochUnix = 978307200

// DecodeQuarantineTimestamp decodes the download timestamp out of a
// quarantine extended-attribute payload, a semicolon-delimited record
// like "0083;5b000000;Chrome;UUID". The second field is hexadecimal
// seconds since the Apple reference epoch.
func DecodeQuarantineTimestamp(record string) (time.Time, error) {
	fields := strings.Split(record, ";")
	if len(fields) < 2 {
		return time.Time{}, &ParseError{
			Format: "quarantine xattr",
			Err:    fmt.Errorf("expected at least 2 fields, got %d", len(fields)),
		}
	}
	secs, err := strconv.ParseInt(fields[1], 16, 64)
	if err != nil {
		return time.Time{}, &ParseError{Format: "quarantine xattr", Err: err}
	}
	return time.Unix(appleEpochUnix+secs, 0).UTC(), nil
}
