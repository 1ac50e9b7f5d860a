// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import (
	"context"

	"github.com/example/easel/internal/models"
)

// ClientService defines the primary port for client operations.
type ClientService interface {
	// CreateClient creates a new client.
	CreateClient(ctx context.Context, req CreateClientRequest) (*models.Client, error)

	// GetClient retrieves a client by ID with derived commission stats.
	GetClient(ctx context.Context, clientID string) (*models.Client, error)

	// ListClients lists every readable client.
	ListClients(ctx context.Context) (*ClientList, error)

	// UpdateClient updates the fields set in req.
	UpdateClient(ctx context.Context, req UpdateClientRequest) (*models.Client, error)

	// DeleteClient deletes a client.
	DeleteClient(ctx context.Context, req DeleteClientRequest) error
}

// CreateClientRequest contains parameters for creating a client.
type CreateClientRequest struct {
	Name    string
	Contact string
	Avatar  string
	Notes   string
}

// UpdateClientRequest contains parameters for updating a client.
// Nil fields are left unchanged.
type UpdateClientRequest struct {
	ClientID string
	Name     *string
	Contact  *string
	Avatar   *string
	Notes    *string
}

// DeleteClientRequest contains parameters for deleting a client.
type DeleteClientRequest struct {
	ClientID string
	Force    bool
}

// ClientList is a lenient listing: the clients that could be read plus
// diagnostics for the ones that could not.
type ClientList struct {
	Clients []models.Client
	Skipped []models.SkipDiagnostic
}
