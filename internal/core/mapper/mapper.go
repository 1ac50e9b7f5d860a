// Package mapper translates between storage records and domain records.
// All functions are pure: failures are returned, never logged here.
package mapper

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/example/easel/internal/core/schema"
	"github.com/example/easel/internal/models"
)

// MappingError is returned when a storage record carries a value the
// domain cannot represent.
type MappingError struct {
	RecordID string
	Field    string
	Value    string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("record %s: unrecognized %s %q", e.RecordID, e.Field, e.Value)
}

var paymentToDomain = map[string]models.PaymentStatus{
	models.StoragePaymentNotPaid:   models.PaymentNotPaid,
	models.StoragePaymentHalfPaid:  models.PaymentHalfPaid,
	models.StoragePaymentFullyPaid: models.PaymentFullyPaid,
}

var paymentToStorage = map[models.PaymentStatus]string{
	models.PaymentNotPaid:   models.StoragePaymentNotPaid,
	models.PaymentHalfPaid:  models.StoragePaymentHalfPaid,
	models.PaymentFullyPaid: models.StoragePaymentFullyPaid,
}

var statusToDomain = map[string]models.CommissionStatus{
	models.StorageStatusPending:    models.StatusPending,
	models.StorageStatusInProgress: models.StatusInProgress,
	models.StorageStatusCompleted:  models.StatusCompleted,
}

var statusToStorage = map[models.CommissionStatus]string{
	models.StatusPending:    models.StorageStatusPending,
	models.StatusInProgress: models.StorageStatusInProgress,
	models.StatusCompleted:  models.StorageStatusCompleted,
}

// PaymentToDomain maps a storage payment literal ("Half Paid") to its domain value.
func PaymentToDomain(recordID, s string) (models.PaymentStatus, error) {
	p, ok := paymentToDomain[s]
	if !ok {
		return "", &MappingError{RecordID: recordID, Field: "payment_status", Value: s}
	}
	return p, nil
}

// PaymentToStorage maps a domain payment status to its storage literal.
func PaymentToStorage(recordID string, p models.PaymentStatus) (string, error) {
	s, ok := paymentToStorage[p]
	if !ok {
		return "", &MappingError{RecordID: recordID, Field: "payment_status", Value: string(p)}
	}
	return s, nil
}

// StatusToDomain maps a storage status literal to a workflow status.
func StatusToDomain(recordID, s string) (models.CommissionStatus, error) {
	st, ok := statusToDomain[s]
	if !ok {
		return "", &MappingError{RecordID: recordID, Field: "status", Value: s}
	}
	return st, nil
}

// StatusToStorage maps a workflow status to its storage literal.
func StatusToStorage(recordID string, st models.CommissionStatus) (string, error) {
	s, ok := statusToStorage[st]
	if !ok {
		return "", &MappingError{RecordID: recordID, Field: "status", Value: string(st)}
	}
	return s, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts RFC 3339, a zone-less date-time, or a bare date.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// FormatTimestamp renders t the way records are written.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseField(recordID, field, value string) (time.Time, error) {
	t, err := ParseTimestamp(value)
	if err != nil {
		return time.Time{}, &MappingError{RecordID: recordID, Field: field, Value: value}
	}
	return t, nil
}

// CommissionToDomain maps a decoded storage commission to its domain form.
// For completed records the original date is the creation time and the
// completed date is the last update; both are approximations.
func CommissionToDomain(rec models.StorageCommission) (models.Commission, error) {
	payment, err := PaymentToDomain(rec.ID, rec.PaymentStatus)
	if err != nil {
		return models.Commission{}, err
	}
	status, err := StatusToDomain(rec.ID, rec.Status)
	if err != nil {
		return models.Commission{}, err
	}
	if rec.PriceCents < 0 {
		return models.Commission{}, &MappingError{RecordID: rec.ID, Field: "price_cents", Value: fmt.Sprint(rec.PriceCents)}
	}
	created, err := parseField(rec.ID, "created_at", rec.CreatedAt)
	if err != nil {
		return models.Commission{}, err
	}
	updated, err := parseField(rec.ID, "updated_at", rec.UpdatedAt)
	if err != nil {
		return models.Commission{}, err
	}

	refs := make([]models.Reference, 0, len(rec.Images))
	for _, img := range schema.CompactImages(rec.Images) {
		refs = append(refs, models.Reference{Type: models.ReferenceImage, URL: img})
	}

	c := models.Commission{
		ID: rec.ID,
		Client: models.ClientSnapshot{
			ID:   rec.ClientID,
			Name: rec.ClientName,
		},
		Type:          rec.Title,
		PriceCents:    rec.PriceCents,
		Description:   rec.Description,
		References:    refs,
		Date:          created,
		PaymentStatus: payment,
		Status:        status,
	}
	if status == models.StatusCompleted {
		c.OriginalDate = created
		c.CompletedDate = updated
	}
	return c, nil
}

// CommissionToStorage maps a domain commission to the record written to disk.
// Only image references are persisted.
func CommissionToStorage(c models.Commission, now time.Time) (models.StorageCommission, error) {
	payment, err := PaymentToStorage(c.ID, c.PaymentStatus)
	if err != nil {
		return models.StorageCommission{}, err
	}
	status, err := StatusToStorage(c.ID, c.Status)
	if err != nil {
		return models.StorageCommission{}, err
	}
	if c.PriceCents < 0 {
		return models.StorageCommission{}, &MappingError{RecordID: c.ID, Field: "price_cents", Value: fmt.Sprint(c.PriceCents)}
	}

	created := c.Date
	updated := now
	if c.IsCompleted() {
		if !c.OriginalDate.IsZero() {
			created = c.OriginalDate
		}
		if !c.CompletedDate.IsZero() {
			updated = c.CompletedDate
		}
	}
	if created.IsZero() {
		created = now
	}

	images := c.ImageURLs()
	if images == nil {
		images = []string{}
	}

	return models.StorageCommission{
		ID:            c.ID,
		ClientID:      c.Client.ID,
		ClientName:    c.Client.Name,
		Title:         c.Type,
		Description:   c.Description,
		PriceCents:    c.PriceCents,
		PaymentStatus: payment,
		Status:        status,
		CreatedAt:     FormatTimestamp(created),
		UpdatedAt:     FormatTimestamp(updated),
		Images:        images,
	}, nil
}

// ClientToDomain maps a decoded storage client. Contact falls back to the
// legacy email field for older records.
func ClientToDomain(rec models.StorageClient) (models.Client, error) {
	joined, err := parseField(rec.ID, "created_at", rec.CreatedAt)
	if err != nil {
		return models.Client{}, err
	}
	contact := strings.TrimSpace(rec.Contact)
	if contact == "" {
		contact = strings.TrimSpace(rec.Email)
	}
	return models.Client{
		ID:       rec.ID,
		Name:     rec.Name,
		Contact:  contact,
		Avatar:   rec.ProfileImage,
		JoinDate: joined,
		Channel:  InferChannel(contact),
		Notes:    rec.Notes,
	}, nil
}

// ClientToStorage maps a domain client to its storage record. Derived
// fields (commission count, last commission) are dropped.
func ClientToStorage(c models.Client, now time.Time) models.StorageClient {
	joined := c.JoinDate
	if joined.IsZero() {
		joined = now
	}
	return models.StorageClient{
		ID:           c.ID,
		Name:         c.Name,
		Contact:      c.Contact,
		ProfileImage: c.Avatar,
		Notes:        c.Notes,
		CreatedAt:    FormatTimestamp(joined),
		UpdatedAt:    FormatTimestamp(now),
	}
}

// InferChannel guesses the communication channel from a contact string.
func InferChannel(contact string) models.ContactChannel {
	contact = strings.TrimSpace(contact)
	switch {
	case contact == "":
		return models.ChannelOther
	case schema.LooksLikeEmail(contact):
		return models.ChannelEmail
	case strings.HasPrefix(contact, "@"):
		return models.ChannelSocial
	case isPhone(contact):
		return models.ChannelPhone
	default:
		return models.ChannelOther
	}
}

func isPhone(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '+' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits > 0
}

// MapCommissions maps every record it can and reports the rest.
func MapCommissions(recs []models.StorageCommission) ([]models.Commission, []models.SkipDiagnostic) {
	out := make([]models.Commission, 0, len(recs))
	var skipped []models.SkipDiagnostic
	for _, rec := range recs {
		c, err := CommissionToDomain(rec)
		if err != nil {
			skipped = append(skipped, models.SkipDiagnostic{RecordID: rec.ID, Reason: err.Error()})
			continue
		}
		out = append(out, c)
	}
	return out, skipped
}

// MapClients maps every client record it can and reports the rest.
func MapClients(recs []models.StorageClient) ([]models.Client, []models.SkipDiagnostic) {
	out := make([]models.Client, 0, len(recs))
	var skipped []models.SkipDiagnostic
	for _, rec := range recs {
		c, err := ClientToDomain(rec)
		if err != nil {
			skipped = append(skipped, models.SkipDiagnostic{RecordID: rec.ID, Reason: err.Error()})
			continue
		}
		out = append(out, c)
	}
	return out, skipped
}

// MergeClients refreshes each commission's embedded client snapshot from the
// authoritative client list. Snapshots for unknown clients are left as-is.
func MergeClients(commissions []models.Commission, clients []models.Client) []models.Commission {
	byID := make(map[string]models.Client, len(clients))
	for _, cl := range clients {
		byID[cl.ID] = cl
	}
	out := make([]models.Commission, len(commissions))
	for i, c := range commissions {
		if cl, ok := byID[c.Client.ID]; ok {
			c.Client = cl.Snapshot()
		}
		out[i] = c
	}
	return out
}

// ApplyCommissionStats recomputes each client's commission count and most
// recent commission date from the given commission set.
func ApplyCommissionStats(clients []models.Client, commissions []models.Commission) []models.Client {
	type stats struct {
		count int
		last  time.Time
	}
	byClient := make(map[string]stats)
	for _, c := range commissions {
		s := byClient[c.Client.ID]
		s.count++
		if c.Date.After(s.last) {
			s.last = c.Date
		}
		byClient[c.Client.ID] = s
	}

	out := make([]models.Client, len(clients))
	for i, cl := range clients {
		s := byClient[cl.ID]
		cl.TotalCommissions = s.count
		cl.LastCommission = s.last
		out[i] = cl
	}
	return out
}

// SortCommissions orders commissions newest first, breaking ties by ID.
func SortCommissions(cs []models.Commission) {
	sort.SliceStable(cs, func(i, j int) bool {
		if !cs[i].Date.Equal(cs[j].Date) {
			return cs[i].Date.After(cs[j].Date)
		}
		return cs[i].ID < cs[j].ID
	})
}
