package model

import "time"

// Software is a catalog product shown on the public site.
type Software struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Slug               *string   `json:"slug"`
	Category           *string   `json:"category"`
	Description        *string   `json:"description"`
	PriceOneTime       *int      `json:"price_one_time"`
	PriceYearly        *int      `json:"price_yearly"`
	IsFree             bool      `json:"is_free"`
	IsActive           bool      `json:"is_active"`
	DownloadURL        *string   `json:"download_url"`
	PaymentLinkOneTime *string   `json:"payment_link_onetime"`
	PaymentLinkYearly  *string   `json:"payment_link_yearly"`
	Image              *string   `json:"image"`
	SortOrder          int       `json:"sort_order"`
	CreatedAt          time.Time `json:"-"`
	UpdatedAt          time.Time `json:"-"`
}

// SoftwareInput is the admin form submission for a Software record.
// Numeric fields are raw strings; the service layer coerces them.
type SoftwareInput struct {
	Name               string
	Slug               string
	Category           string
	Description        string
	PriceOneTime       string
	PriceYearly        string
	IsFree             bool
	IsActive           bool
	DownloadURL        string
	PaymentLinkOneTime string
	PaymentLinkYearly  string
	SortOrder          string
	Image              *Upload
	RemoveImage        bool
}

// SoftwareName is the id/name pair used by release-note dropdowns.
type SoftwareName struct {
	ID   int64
	Name string
}
