package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeToken creates an opaque cursor from an entry date and creation time.
// Journal listings are ordered by (entry_date, created_at) descending.
func EncodeToken(entryDate time.Time, createdAt time.Time) string {
	return encodeFields(entryDate.Format(timeFormat), createdAt.Format(timeFormat))
}

// DecodeToken parses a cursor produced by EncodeToken.
func DecodeToken(token string) (time.Time, time.Time, error) {
	parts, err := decodeFields(token, 2)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	entryDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (entry date parse): %w", err)
	}

	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return entryDate, createdAt, nil
}

// EncodeLineToken creates a cursor for account line listings. The line id breaks ties
// between lines of the same entry.
func EncodeLineToken(entryDate, createdAt time.Time, lineID string) string {
	return encodeFields(entryDate.Format(timeFormat), createdAt.Format(timeFormat), lineID)
}

// DecodeLineToken parses a cursor produced by EncodeLineToken.
func DecodeLineToken(token string) (time.Time, time.Time, string, error) {
	parts, err := decodeFields(token, 3)
	if err != nil {
		return time.Time{}, time.Time{}, "", err
	}

	entryDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token format (entry date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	if parts[2] == "" {
		return time.Time{}, time.Time{}, "", fmt.Errorf("invalid pagination token format (empty line id)")
	}

	return entryDate, createdAt, parts[2], nil
}

func encodeFields(fields ...string) string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Join(fields, "|")))
}

func decodeFields(token string, n int) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", n)
	if len(parts) != n {
		return nil, fmt.Errorf("invalid pagination token format (split)")
	}
	return parts, nil
}
