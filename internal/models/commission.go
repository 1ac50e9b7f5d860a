package models

import (
	"math"
	"time"
)

// Bucket is the workflow partition a commission record is stored under.
type Bucket string

const (
	BucketPending   Bucket = "pending"
	BucketCompleted Bucket = "completed"
)

// Storage status literals as written to disk.
const (
	StorageStatusPending    = "pending"
	StorageStatusInProgress = "in-progress"
	StorageStatusCompleted  = "completed"
)

// Storage payment status literals as written to disk.
const (
	StoragePaymentNotPaid   = "Not Paid"
	StoragePaymentHalfPaid  = "Half Paid"
	StoragePaymentFullyPaid = "Fully Paid"
)

// MaxPriceCents is the largest price accepted at the storage boundary.
const MaxPriceCents int64 = 99_999_999_999

// PriceSource is the price as found in a stored record: either the legacy
// fractional amount or integer cents. It is resolved to cents right after decode.
type PriceSource interface {
	Cents() int64
}

// LegacyPrice is the pre-cents fractional price field ("price").
type LegacyPrice float64

// Cents rounds half-up to the nearest cent.
func (p LegacyPrice) Cents() int64 {
	return int64(math.Floor(float64(p)*100 + 0.5))
}

// CentsPrice is the integer "price_cents" field.
type CentsPrice int64

// Cents returns the value unchanged.
func (p CentsPrice) Cents() int64 { return int64(p) }

// StorageCommission is a commission as persisted by the record store.
type StorageCommission struct {
	ID            string   `json:"id" validate:"required,max=64,recordid"`
	ClientID      string   `json:"client_id" validate:"required,max=64,recordid"`
	ClientName    string   `json:"client_name" validate:"required,max=255,safename"`
	Title         string   `json:"title" validate:"required,max=255,safename"`
	Description   string   `json:"description" validate:"max=10000,nomarkup"`
	PriceCents    int64    `json:"price_cents" validate:"min=0,max=99999999999"`
	PaymentStatus string   `json:"payment_status" validate:"required,paymentstatus"`
	Status        string   `json:"status" validate:"required,workflowstatus"`
	CreatedAt     string   `json:"created_at" validate:"required"`
	UpdatedAt     string   `json:"updated_at" validate:"required"`
	Images        []string `json:"images" validate:"dive,imagepath"`
}

// Bucket returns the partition the record belongs in according to its status.
func (c StorageCommission) Bucket() Bucket {
	return BucketForStorageStatus(c.Status)
}

// BucketForStorageStatus maps a storage status literal to its bucket.
// Everything that is not completed lives in the pending bucket.
func BucketForStorageStatus(status string) Bucket {
	if status == StorageStatusCompleted {
		return BucketCompleted
	}
	return BucketPending
}

// CommissionStatus is the workflow status shown to the user.
type CommissionStatus string

const (
	StatusPending    CommissionStatus = "Pending"
	StatusInProgress CommissionStatus = "In Progress"
	StatusCompleted  CommissionStatus = "Completed"
)

// PaymentStatus is the payment state shown to the user.
type PaymentStatus string

const (
	PaymentNotPaid   PaymentStatus = "not-paid"
	PaymentHalfPaid  PaymentStatus = "half-paid"
	PaymentFullyPaid PaymentStatus = "fully-paid"
)

// ReferenceType tags a commission reference.
type ReferenceType string

const (
	ReferenceImage ReferenceType = "image"
	ReferenceText  ReferenceType = "text"
)

// Reference is a piece of reference material attached to a commission.
type Reference struct {
	Type ReferenceType `json:"type"`
	URL  string        `json:"url,omitempty"`
	Text string        `json:"text,omitempty"`
}

// ClientSnapshot is the denormalized copy of a client embedded in a commission.
// It is refreshed from the authoritative client record on load.
type ClientSnapshot struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Avatar  string `json:"avatar,omitempty"`
}

// Commission is the in-memory representation of a commission.
type Commission struct {
	ID            string           `json:"id"`
	Client        ClientSnapshot   `json:"client"`
	Type          string           `json:"type"`
	PriceCents    int64            `json:"price_cents"`
	Description   string           `json:"description"`
	References    []Reference      `json:"references"`
	Date          time.Time        `json:"date"`
	PaymentStatus PaymentStatus    `json:"payment_status"`
	Status        CommissionStatus `json:"status"`

	// Set only when Status is Completed.
	OriginalDate  time.Time `json:"original_date,omitzero"`
	CompletedDate time.Time `json:"completed_date,omitzero"`
}

// IsCompleted reports whether the commission is in the completed state.
func (c Commission) IsCompleted() bool {
	return c.Status == StatusCompleted
}

// Bucket returns the partition the commission is stored under.
func (c Commission) Bucket() Bucket {
	if c.IsCompleted() {
		return BucketCompleted
	}
	return BucketPending
}

// ImageURLs returns the URLs of image references, in order.
func (c Commission) ImageURLs() []string {
	var urls []string
	for _, ref := range c.References {
		if ref.Type == ReferenceImage && ref.URL != "" {
			urls = append(urls, ref.URL)
		}
	}
	return urls
}
