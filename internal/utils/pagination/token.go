package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateFormat = "2006-01-02"

// EncodeEntryCursor creates an opaque token pointing just past an entry in a listing
// ordered by (date, entry id) descending.
func EncodeEntryCursor(entryDate time.Time, entryID int64) string {
	return EncodeMultiFieldToken(entryDate.UTC().Format(dateFormat), strconv.FormatInt(entryID, 10))
}

// DecodeEntryCursor parses a token produced by EncodeEntryCursor.
func DecodeEntryCursor(token string) (time.Time, int64, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return time.Time{}, 0, err
	}
	if len(parts) != 2 {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (split)")
	}

	entryDate, err := time.Parse(dateFormat, parts[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (entry date parse): %w", err)
	}

	entryID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (entry id parse): %w", err)
	}

	return entryDate, entryID, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	return strings.Split(string(decodedBytes), "|"), nil
}

// Before reports whether (date, id) sorts strictly after the cursor position in a
// descending (date, id) listing, i.e. whether it belongs on the next page.
func Before(date time.Time, id int64, cursorDate time.Time, cursorID int64) bool {
	if date.Equal(cursorDate) {
		return id < cursorID
	}
	return date.Before(cursorDate)
}
