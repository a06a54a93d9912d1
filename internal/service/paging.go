package service

// Paging bounds for list operations.
const (
	DefaultLimit = 100
	MaxLimit     = 100
)

// Page is an offset/limit window over an id-ordered listing.
type Page struct {
	Limit  int
	Offset int
}

// Normalize fills defaults and clamps the window into range.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
