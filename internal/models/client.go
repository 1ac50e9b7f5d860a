package models

import "time"

// StorageClient is a client as persisted by the record store.
// Email is a legacy field kept for records written before contact was unified.
type StorageClient struct {
	ID           string `json:"id" validate:"required,max=64,recordid"`
	Name         string `json:"name" validate:"required,max=255,safename"`
	Email        string `json:"email,omitempty" validate:"max=320,emaillenient"`
	Contact      string `json:"contact" validate:"required_without=Email,max=50,nodanger"`
	ProfileImage string `json:"profile_image,omitempty" validate:"omitempty,imagepath"`
	Notes        string `json:"notes,omitempty" validate:"max=10000,nomarkup"`
	CreatedAt    string `json:"created_at" validate:"required"`
	UpdatedAt    string `json:"updated_at" validate:"required"`
}

// ContactChannel is the preferred way of reaching a client.
type ContactChannel string

const (
	ChannelEmail  ContactChannel = "email"
	ChannelSocial ContactChannel = "social"
	ChannelPhone  ContactChannel = "phone"
	ChannelOther  ContactChannel = "other"
)

// Client is the in-memory representation of a client.
// TotalCommissions and LastCommission are derived from the commission set
// and are never persisted.
type Client struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Contact          string         `json:"contact"`
	Avatar           string         `json:"avatar,omitempty"`
	TotalCommissions int            `json:"total_commissions"`
	JoinDate         time.Time      `json:"join_date"`
	LastCommission   time.Time      `json:"last_commission,omitzero"`
	Channel          ContactChannel `json:"channel"`
	Notes            string         `json:"notes,omitempty"`
}

// Snapshot returns the denormalized copy embedded into commissions.
func (c Client) Snapshot() ClientSnapshot {
	return ClientSnapshot{
		ID:      c.ID,
		Name:    c.Name,
		Contact: c.Contact,
		Avatar:  c.Avatar,
	}
}
