// internal/domain/models/message.go
package models

import "time"

// ContactMessage is a message sent through the contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Lu        bool      `json:"lu"` // read flag, false on creation
	Nom       string    `json:"nom"`
	Email     string    `json:"email"`
	Telephone string    `json:"telephone"`
	Sujet     string    `json:"sujet"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
