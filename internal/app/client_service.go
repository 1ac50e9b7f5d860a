package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/easel/internal/core/commission"
	"github.com/example/easel/internal/core/mapper"
	"github.com/example/easel/internal/models"
	"github.com/example/easel/internal/ports/primary"
)

// ClientServiceImpl implements the ClientService interface.
type ClientServiceImpl struct {
	store     *PersistenceService
	snapshots snapshotter
	trigger   *SyncTrigger
	log       *zap.Logger
	now       func() time.Time
	newID     func() string
}

// NewClientService creates a new ClientService with injected dependencies.
func NewClientService(
	store *PersistenceService,
	snapshots snapshotter,
	trigger *SyncTrigger,
	log *zap.Logger,
) *ClientServiceImpl {
	return &ClientServiceImpl{
		store:     store,
		snapshots: snapshots,
		trigger:   trigger,
		log:       log,
		now:       time.Now,
		newID:     commission.NewID,
	}
}

var _ primary.ClientService = (*ClientServiceImpl)(nil)

// CreateClient creates a new client.
func (s *ClientServiceImpl) CreateClient(ctx context.Context, req primary.CreateClientRequest) (*models.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("client name cannot be empty")
	}
	contact := strings.TrimSpace(req.Contact)
	if contact == "" {
		return nil, fmt.Errorf("client contact cannot be empty")
	}

	now := s.now()
	client := models.Client{
		ID:       s.newID(),
		Name:     name,
		Contact:  contact,
		Avatar:   req.Avatar,
		Notes:    req.Notes,
		JoinDate: now,
	}
	if err := s.store.SaveClient(ctx, mapper.ClientToStorage(client, now)); err != nil {
		return nil, err
	}

	client.Channel = mapper.InferChannel(client.Contact)
	s.trigger.Trigger(ctx)
	return &client, nil
}

// GetClient retrieves a client with its commission stats.
func (s *ClientServiceImpl) GetClient(ctx context.Context, clientID string) (*models.Client, error) {
	v, err := s.loadView(ctx)
	if err != nil {
		return nil, err
	}
	for _, cl := range v.Clients {
		if cl.ID == clientID {
			return &cl, nil
		}
	}
	return nil, fmt.Errorf("client %s: %w", clientID, ErrClientNotFound)
}

// ListClients lists every readable client, ordered by name.
func (s *ClientServiceImpl) ListClients(ctx context.Context) (*primary.ClientList, error) {
	v, err := s.loadView(ctx)
	if err != nil {
		return nil, err
	}
	clients := v.Clients
	sortClients(clients)
	return &primary.ClientList{Clients: clients, Skipped: v.Skipped}, nil
}

// UpdateClient updates the fields set in req.
func (s *ClientServiceImpl) UpdateClient(ctx context.Context, req primary.UpdateClientRequest) (*models.Client, error) {
	rec, err := s.store.LoadClient(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("client %s: %w", req.ClientID, ErrClientNotFound)
	}
	client, err := mapper.ClientToDomain(*rec)
	if err != nil {
		return nil, fmt.Errorf("failed to read client %s: %w", req.ClientID, err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("client name cannot be empty")
		}
		client.Name = name
	}
	if req.Contact != nil {
		contact := strings.TrimSpace(*req.Contact)
		if contact == "" {
			return nil, fmt.Errorf("client contact cannot be empty")
		}
		client.Contact = contact
	}
	if req.Avatar != nil {
		client.Avatar = *req.Avatar
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}

	if err := s.store.SaveClient(ctx, mapper.ClientToStorage(client, s.now())); err != nil {
		return nil, err
	}
	client.Channel = mapper.InferChannel(client.Contact)
	s.trigger.Trigger(ctx)
	return &client, nil
}

// DeleteClient deletes a client. A client with commissions is only deleted
// with Force, after an emergency snapshot; its commissions go with it.
func (s *ClientServiceImpl) DeleteClient(ctx context.Context, req primary.DeleteClientRequest) error {
	rec, err := s.store.LoadClient(ctx, req.ClientID)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("client %s: %w", req.ClientID, ErrClientNotFound)
	}

	contents, err := s.store.LoadAll(ctx)
	if err != nil {
		return err
	}
	var owned []models.StorageCommission
	for _, c := range contents.Commissions {
		if c.ClientID == req.ClientID {
			owned = append(owned, c)
		}
	}

	guard := commission.CanDeleteClient(commission.DeleteClientContext{
		ClientID:        req.ClientID,
		CommissionCount: len(owned),
		ForceDelete:     req.Force,
	})
	if err := guard.Error(); err != nil {
		return err
	}

	if len(owned) > 0 {
		key, err := s.snapshots.CreateSnapshot(ctx, fmt.Sprintf("before deleting client %s", req.ClientID))
		if err != nil {
			return err
		}
		s.log.Info("deleting client with commissions",
			zap.String("client", req.ClientID),
			zap.Int("commissions", len(owned)),
			zap.String("snapshot", key),
		)
		for _, c := range owned {
			if err := s.store.DeleteCommission(ctx, c.ID, c.Bucket()); err != nil {
				return err
			}
		}
	}

	if err := s.store.DeleteClient(ctx, req.ClientID); err != nil {
		return err
	}
	s.trigger.Trigger(ctx)
	return nil
}

func (s *ClientServiceImpl) loadView(ctx context.Context) (view, error) {
	contents, err := s.store.LoadAll(ctx)
	if err != nil {
		return view{}, err
	}
	return buildView(contents), nil
}

func sortClients(clients []models.Client) {
	sort.SliceStable(clients, func(i, j int) bool {
		a, b := strings.ToLower(clients[i].Name), strings.ToLower(clients[j].Name)
		if a != b {
			return a < b
		}
		return clients[i].ID < clients[j].ID
	})
}
