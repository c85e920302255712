package catalog

import (
	"os"

	"travel-booking/internal/domain/booking"
	"travel-booking/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

type file struct {
	Destinations []entry `yaml:"destinations"`
}

type entry struct {
	Name      string `yaml:"name"`
	UnitPrice int64  `yaml:"unitPrice"`
}

// Load builds the price catalog from path, or the built-in catalog when path is empty.
func Load(path string) (*booking.CatalogPriceCalculator, error) {
	if path == "" {
		return booking.NewDefaultPriceCalculator(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrapf(err, "read catalog %s", path)
	}
	return Parse(data)
}

func Parse(data []byte) (*booking.CatalogPriceCalculator, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errs.Wrap(err, "parse catalog")
	}
	if len(f.Destinations) == 0 {
		return nil, errs.New("catalog lists no destinations")
	}

	dests := make([]booking.Destination, len(f.Destinations))
	for i, e := range f.Destinations {
		dests[i] = booking.Destination{Name: e.Name, UnitPrice: e.UnitPrice}
	}
	calc, err := booking.NewCatalogPriceCalculator(dests)
	if err != nil {
		return nil, errs.Wrap(err, "invalid catalog")
	}
	return calc, nil
}
