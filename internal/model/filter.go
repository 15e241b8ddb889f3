package model

// ListFilter narrows repository listings. The zero value returns every row,
// which is what admin pages use.
type ListFilter struct {
	// OnlyVisible restricts to rows with is_active (or is_published for
	// release notes) set.
	OnlyVisible bool
}
