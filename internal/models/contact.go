package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact message priorities
const (
	PriorityLow    = "Low"
	PriorityNormal = "Normal"
	PriorityUrgent = "Urgent"
)

type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Sender    string    `json:"sender"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Priority  string    `json:"priority"`
	Read      bool      `json:"read"`
}
