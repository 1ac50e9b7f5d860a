package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/easel/internal/models"
)

// ErrMissingPrice is returned when a commission carries neither price field.
var ErrMissingPrice = errors.New("missing price or price_cents")

// commissionWire mirrors the on-disk layout, including the legacy price field.
type commissionWire struct {
	ID            string          `json:"id"`
	ClientID      string          `json:"client_id"`
	ClientName    string          `json:"client_name"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Price         *float64        `json:"price"`
	PriceCents    *json.Number    `json:"price_cents"`
	PaymentStatus *string         `json:"payment_status"`
	Status        *string         `json:"status"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
	Images        json.RawMessage `json:"images"`
}

// ResolvePrice picks the price variant present on a decoded record.
// Integer cents win; a legacy fractional price is used otherwise.
func ResolvePrice(price *float64, cents *json.Number) (models.PriceSource, error) {
	if cents != nil {
		if n, err := cents.Int64(); err == nil {
			return models.CentsPrice(n), nil
		}
	}
	if price != nil {
		return models.LegacyPrice(*price), nil
	}
	return nil, ErrMissingPrice
}

// DecodeCommission decodes a single stored commission, resolving the price
// variant into canonical cents and backfilling defaults for missing enums.
func DecodeCommission(data []byte) (models.StorageCommission, error) {
	var w commissionWire
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&w); err != nil {
		return models.StorageCommission{}, fmt.Errorf("failed to parse commission JSON: %w", err)
	}

	price, err := ResolvePrice(w.Price, w.PriceCents)
	if err != nil {
		return models.StorageCommission{}, err
	}

	rec := models.StorageCommission{
		ID:            w.ID,
		ClientID:      w.ClientID,
		ClientName:    w.ClientName,
		Title:         w.Title,
		Description:   w.Description,
		PriceCents:    price.Cents(),
		PaymentStatus: models.StoragePaymentNotPaid,
		Status:        models.StorageStatusPending,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
		Images:        decodeImages(w.Images),
	}
	if w.PaymentStatus != nil {
		rec.PaymentStatus = *w.PaymentStatus
	}
	if w.Status != nil {
		rec.Status = *w.Status
	}
	if rec.ID == "" {
		return models.StorageCommission{}, errors.New("commission has no id")
	}
	return rec, nil
}

// decodeImages keeps the string entries of the images array and ignores anything else.
func decodeImages(raw json.RawMessage) []string {
	images := []string{}
	if len(raw) == 0 {
		return images
	}
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return images
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			images = append(images, s)
		}
	}
	return images
}

// DecodeClient decodes a single stored client.
func DecodeClient(data []byte) (models.StorageClient, error) {
	var c models.StorageClient
	if err := json.Unmarshal(data, &c); err != nil {
		return models.StorageClient{}, fmt.Errorf("failed to parse client JSON: %w", err)
	}
	if c.ID == "" {
		return models.StorageClient{}, errors.New("client has no id")
	}
	if c.Name == "" {
		return models.StorageClient{}, fmt.Errorf("client %s has no name", c.ID)
	}
	return c, nil
}

// EncodeCommission serializes a commission record. Only price_cents is written.
func EncodeCommission(c models.StorageCommission) ([]byte, error) {
	if c.Images == nil {
		c.Images = []string{}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize commission: %w", err)
	}
	return data, nil
}

// EncodeClient serializes a client record.
func EncodeClient(c models.StorageClient) ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize client: %w", err)
	}
	return data, nil
}

// BatchResult is the outcome of a lenient batch decode: the records that
// parsed, plus a diagnostic for every record that did not.
type BatchResult[T any] struct {
	Items   []T
	Skipped []models.SkipDiagnostic
}

// DecodeBatch decodes every raw record, dropping the ones that fail.
// One bad record never aborts the batch.
func DecodeBatch[T any](raws []models.RawRecord, decode func([]byte) (T, error)) BatchResult[T] {
	result := BatchResult[T]{Items: make([]T, 0, len(raws))}
	for _, raw := range raws {
		item, err := decode(raw.Data)
		if err != nil {
			result.Skipped = append(result.Skipped, models.SkipDiagnostic{
				Source: raw.Source,
				Reason: err.Error(),
			})
			continue
		}
		result.Items = append(result.Items, item)
	}
	return result
}

// DecodeCommissions is DecodeBatch for commission records.
func DecodeCommissions(raws []models.RawRecord) BatchResult[models.StorageCommission] {
	return DecodeBatch(raws, DecodeCommission)
}

// DecodeClients is DecodeBatch for client records.
func DecodeClients(raws []models.RawRecord) BatchResult[models.StorageClient] {
	return DecodeBatch(raws, DecodeClient)
}
