package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeEntryCursor(t *testing.T) {
	entryDate := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)

	token := EncodeEntryCursor(entryDate, 42)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedID, err := DecodeEntryCursor(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, entryDate, decodedDate, "Entry date should match after decode")
	assert.Equal(t, int64(42), decodedID, "Entry id should match after decode")
}

func TestDecodeEntryCursorError(t *testing.T) {
	_, _, err := DecodeEntryCursor("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	_, _, err = DecodeEntryCursor(base64.RawURLEncoding.EncodeToString([]byte("2023-05-15")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, _, err = DecodeEntryCursor(EncodeMultiFieldToken("notadate", "1"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "entry date parse")

	_, _, err = DecodeEntryCursor(EncodeMultiFieldToken("2023-05-15", "x"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "entry id parse")
}

func TestMultiFieldToken(t *testing.T) {
	fields := []string{"field1", "field2", "field3"}
	token := EncodeMultiFieldToken(fields...)

	decoded, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err)
	assert.Equal(t, fields, decoded)
}

func TestBefore(t *testing.T) {
	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, Before(day, 4, day, 5))
	assert.False(t, Before(day, 5, day, 5))
	assert.False(t, Before(day, 6, day, 5))
	assert.True(t, Before(day.AddDate(0, 0, -1), 99, day, 5))
	assert.False(t, Before(day.AddDate(0, 0, 1), 1, day, 5))
}
