// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"

	"github.com/example/easel/internal/models"
)

// ErrRecordNotFound is returned by stores when a record or key does not exist.
var ErrRecordNotFound = errors.New("record not found")

// ClientStore defines the secondary port for client record persistence.
// Reads return undecoded records so callers can decode leniently.
type ClientStore interface {
	// SaveClient writes a client record, replacing any previous version.
	SaveClient(ctx context.Context, rec models.StorageClient) error

	// LoadClient reads a single client record.
	LoadClient(ctx context.Context, id string) (models.RawRecord, error)

	// LoadAllClients reads every client record.
	LoadAllClients(ctx context.Context) ([]models.RawRecord, error)

	// DeleteClient removes a client record. Missing records are not an error.
	DeleteClient(ctx context.Context, id string) error
}

// CommissionStore defines the secondary port for commission record persistence.
// Commissions are partitioned into buckets.
type CommissionStore interface {
	// SaveCommission writes a record into bucket, replacing any record with
	// the same ID already in that bucket.
	SaveCommission(ctx context.Context, bucket models.Bucket, rec models.StorageCommission) error

	// LoadCommission reads a single record from bucket.
	LoadCommission(ctx context.Context, bucket models.Bucket, id string) (models.RawRecord, error)

	// LoadCommissions reads every record in bucket.
	LoadCommissions(ctx context.Context, bucket models.Bucket) ([]models.RawRecord, error)

	// MoveCommission relocates a record between buckets with a single rename.
	MoveCommission(ctx context.Context, id string, from, to models.Bucket) error

	// DeleteCommission removes a record from bucket.
	DeleteCommission(ctx context.Context, bucket models.Bucket, id string) error
}

// ImageStore defines the secondary port for reference image files.
type ImageStore interface {
	// SaveImage stores image data for a commission and returns its
	// reference path ("images/<id>_<file>").
	SaveImage(ctx context.Context, clientName, commissionID, filename string, data []byte) (string, error)
}
