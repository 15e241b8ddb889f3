package model

import "time"

// Client is a customer logo entry.
type Client struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Industry  *string   `json:"industry"`
	City      *string   `json:"city"`
	Website   *string   `json:"website"`
	Image     *string   `json:"image"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type ClientInput struct {
	Name        string
	Industry    string
	City        string
	Website     string
	SortOrder   string
	IsActive    bool
	Image       *Upload
	RemoveImage bool
}
