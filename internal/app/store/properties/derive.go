// internal/app/store/properties/derive.go
package properties

import (
	"strconv"

	"github.com/letkeeper/letkeeper/internal/domain/models"
)

// Derived counts are recomputed from the submitted room arrays on every
// create and update. Caller-supplied count fields are never trusted.

// CountBedrooms is the number of bedroom entries.
func CountBedrooms(bedrooms []models.Bedroom) int {
	return len(bedrooms)
}

// CountBeds sums the bed entries across all bedrooms.
func CountBeds(bedrooms []models.Bedroom) int {
	total := 0
	for _, b := range bedrooms {
		total += len(b.Beds)
	}
	return total
}

// CountBathrooms sums the numeric bathroom values. Half baths carry
// "0.5", so the total is fractional. Unparseable values contribute 0.
func CountBathrooms(bathrooms []models.Bathroom) float64 {
	total := 0.0
	for _, b := range bathrooms {
		v, err := strconv.ParseFloat(b.Value, 64)
		if err != nil {
			continue
		}
		total += v
	}
	return total
}

// applyDerived overwrites the property's count fields from its arrays.
func applyDerived(p *models.Property) {
	p.NumberOfBedrooms = CountBedrooms(p.Bedrooms)
	p.NumberOfBeds = CountBeds(p.Bedrooms)
	p.NumberOfBathrooms = CountBathrooms(p.Bathrooms)
}
