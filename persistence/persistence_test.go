package persistence

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePersistenceAppendsReceipts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipts.log")
	p := NewFilePersistence(path)

	first := Receipt{
		BookingId:      "b1",
		SportsCategory: "cricket",
		Venue:          "Eden Gardens",
		Quantity:       2,
		TotalPrice:     160,
		Currency:       "inr",
		QrCodeData:     "qr-b1",
		ConfirmedAt:    time.Date(2026, time.September, 12, 18, 30, 0, 0, time.UTC),
	}
	second := first
	second.BookingId = "b2"

	require.NoError(t, p.WriteReceipt(context.Background(), first))
	require.NoError(t, p.WriteReceipt(context.Background(), second))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var got []Receipt
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var r Receipt
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r))
		got = append(got, r)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, got, 2)
	assert.Equal(t, first, got[0])
	assert.Equal(t, "b2", got[1].BookingId)
}

func TestFilePersistenceBadPath(t *testing.T) {
	p := NewFilePersistence(filepath.Join(t.TempDir(), "missing", "receipts.log"))

	err := p.WriteReceipt(context.Background(), Receipt{BookingId: "b1"})

	assert.Error(t, err)
}
