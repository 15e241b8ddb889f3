package model

import "time"

// DefaultIssueStatus is applied when a submitted status is blank.
const DefaultIssueStatus = "Open"

// KnownIssue statuses are free text; these are the conventional values
// offered by the admin form.
var IssueStatuses = []string{"Open", "In Progress", "Fixed"}

type KnownIssue struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Content   *string   `json:"content"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type KnownIssueInput struct {
	Title     string
	Status    string
	Content   string
	SortOrder string
	IsActive  bool
}
