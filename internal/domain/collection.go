package domain

import "time"

// Collection groups products for a storefront category page. Titles are
// unique across collections; Products holds product ids and is kept in
// sync with each product's Collections list.
type Collection struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image"`
	Products    []string  `json:"products"`
	CreatedAt   time.Time `json:"createdAt"`
}
