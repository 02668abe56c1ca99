package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Receipt is the local record kept for every confirmed purchase, enough to
// re-display the pass offline or reconcile against support requests.
type Receipt struct {
	BookingId      string    `json:"bookingId"`
	SportsCategory string    `json:"sportsCategory"`
	Venue          string    `json:"venue"`
	Quantity       int       `json:"quantity"`
	TotalPrice     float64   `json:"totalPrice"`
	Currency       string    `json:"currency"`
	QrCodeData     string    `json:"qrCodeData"`
	ConfirmedAt    time.Time `json:"confirmedAt"`
}

// Persistence defines the interface for logging receipts
// Implementations: FilePersistence, PostgresPersistence
type Persistence interface {
	WriteReceipt(ctx context.Context, receipt Receipt) error
}

// FilePersistence implements Persistence by appending JSON lines to a file
type FilePersistence struct {
	FilePath string
	mu       sync.Mutex
}

func NewFilePersistence(filePath string) *FilePersistence {
	return &FilePersistence{FilePath: filePath}
}

func (f *FilePersistence) WriteReceipt(ctx context.Context, receipt Receipt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, err := os.OpenFile(f.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error opening receipts file: %w", err)
	}
	defer file.Close()
	enc := json.NewEncoder(file)
	if err := enc.Encode(receipt); err != nil {
		return fmt.Errorf("error writing receipt: %w", err)
	}
	return nil
}

// PostgresPersistence implements Persistence by writing to the receipt table
type PostgresPersistence struct {
	Pool *pgxpool.Pool
}

func NewPostgresPersistence(pool *pgxpool.Pool) *PostgresPersistence {
	return &PostgresPersistence{Pool: pool}
}

func (p *PostgresPersistence) WriteReceipt(ctx context.Context, receipt Receipt) error {
	_, err := p.Pool.Exec(ctx, `
		INSERT INTO receipt (booking_id, sports_category, venue, quantity, total_price, currency, qr_code_data, confirmed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		receipt.BookingId,
		receipt.SportsCategory,
		receipt.Venue,
		receipt.Quantity,
		receipt.TotalPrice,
		receipt.Currency,
		receipt.QrCodeData,
		receipt.ConfirmedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting receipt: %w", err)
	}
	return nil
}
