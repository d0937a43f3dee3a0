package roster

import (
	"time"

	"github.com/google/uuid"
)

// Agent is a sales/outreach agent that can receive distributed contacts.
type Agent struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobileNumber"`
	CountryCode  string    `json:"countryCode"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateAgentInput carries the fields required to create an agent.
type CreateAgentInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	CountryCode  string `json:"countryCode"`
	Password     string `json:"password"`
}

// UpdateAgentInput carries a partial agent update. Nil fields are left unchanged.
type UpdateAgentInput struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	MobileNumber *string `json:"mobileNumber"`
	CountryCode  *string `json:"countryCode"`
	IsActive     *bool   `json:"isActive"`
}
