package domain

import "github.com/shopspring/decimal"

// Branch is a physical location
type Branch struct {
	ID   int64
	Name string
}

// Capster is a barber working at exactly one branch
type Capster struct {
	ID       int64
	Name     string
	Image    *string
	BranchID int64
}

// Summary returns the short form embedded into booking views
func (c *Capster) Summary() *CapsterSummary {
	return &CapsterSummary{ID: c.ID, Name: c.Name, Image: c.Image}
}

// CapsterSummary is the barber block shown with a booking
type CapsterSummary struct {
	ID    int64
	Name  string
	Image *string
}

// Service is a catalog entry. BranchID is nil for services offered everywhere
type Service struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	Duration int // minutes
	BranchID *int64
}

// ServiceTotals sums price and duration over a resolved service set
func ServiceTotals(services []*Service) (decimal.Decimal, int) {
	price := decimal.Zero
	duration := 0
	for _, s := range services {
		price = price.Add(s.Price)
		duration += s.Duration
	}
	return price, duration
}
