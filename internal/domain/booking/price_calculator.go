package booking

import "strings"

type PriceCalculator interface {
	// Price returns false when the destination has no catalog price.
	Price(destination string, travelerCount int) (Money, bool)
}

type Destination struct {
	Name      string
	UnitPrice int64
}

func DefaultDestinations() []Destination {
	return []Destination{
		{Name: "Ayodhya", UnitPrice: 15000},
		{Name: "Agra", UnitPrice: 12000},
		{Name: "Kullu Manali", UnitPrice: 20000},
		{Name: "Jaisalmer", UnitPrice: 18000},
	}
}

type CatalogPriceCalculator struct {
	destinations []Destination
	byKey        map[string]Destination
}

func NewCatalogPriceCalculator(destinations []Destination) (*CatalogPriceCalculator, error) {
	byKey := make(map[string]Destination, len(destinations))
	for _, d := range destinations {
		if d.UnitPrice <= 0 || d.UnitPrice > maxWholeAmount/MaxTravelers {
			return nil, ErrInvalidUnitPrice
		}
		key := catalogKey(d.Name)
		if _, dup := byKey[key]; dup {
			return nil, ErrDuplicateDestination
		}
		byKey[key] = d
	}
	return &CatalogPriceCalculator{
		destinations: append([]Destination(nil), destinations...),
		byKey:        byKey,
	}, nil
}

func NewDefaultPriceCalculator() *CatalogPriceCalculator {
	calc, err := NewCatalogPriceCalculator(DefaultDestinations())
	if err != nil {
		panic("default destination catalog is invalid: " + err.Error())
	}
	return calc
}

func (c *CatalogPriceCalculator) Price(destination string, travelerCount int) (Money, bool) {
	d, ok := c.byKey[catalogKey(destination)]
	if !ok {
		return Money{}, false
	}
	return Money{amount: float64(d.UnitPrice * int64(travelerCount))}, true
}

func (c *CatalogPriceCalculator) Destinations() []Destination {
	return append([]Destination(nil), c.destinations...)
}

func catalogKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

const msgTotalAmountRequired = "Total amount is required for destinations without a catalog price"

// ResolveTotal derives the authoritative total for a validated submission. Catalog prices
// win over client amounts; an unknown destination requires a client amount.
func ResolveTotal(calc PriceCalculator, v *ValidatedSubmission) (Money, error) {
	if m, ok := calc.Price(v.Trip.Destination(), v.Trip.TravelerCount()); ok {
		return m, nil
	}
	if v.TotalAmount == nil {
		return Money{}, NewValidationError(FieldError{Field: FieldTotalAmount, Message: msgTotalAmountRequired})
	}
	return *v.TotalAmount, nil
}
