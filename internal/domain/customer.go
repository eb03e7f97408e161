package domain

import "time"

// Customer is keyed by ClerkID, the identity provider's id for the
// buyer, not by the row's own id. Created on first order, appended-to
// on subsequent ones.
type Customer struct {
	ID        string    `json:"id"`
	ClerkID   string    `json:"clerkId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Orders    []string  `json:"orders"`
	CreatedAt time.Time `json:"createdAt"`
}
