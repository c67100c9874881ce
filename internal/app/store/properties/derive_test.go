package properties

import (
	"testing"

	"github.com/letkeeper/letkeeper/internal/domain/models"
)

func TestDerivedCounts(t *testing.T) {
	bedrooms := []models.Bedroom{
		{Name: "Master", Beds: []any{"double"}},
		{Name: "Second", Beds: []any{"single", "single"}},
	}
	bathrooms := []models.Bathroom{
		{Type: "full", Value: "1"},
		{Type: "half", Value: "0.5"},
	}

	if got := CountBedrooms(bedrooms); got != 2 {
		t.Errorf("CountBedrooms = %d, want 2", got)
	}
	if got := CountBeds(bedrooms); got != 3 {
		t.Errorf("CountBeds = %d, want 3", got)
	}
	if got := CountBathrooms(bathrooms); got != 1.5 {
		t.Errorf("CountBathrooms = %v, want 1.5", got)
	}
}

func TestDerivedCountsEmptyArrays(t *testing.T) {
	if got := CountBedrooms(nil); got != 0 {
		t.Errorf("CountBedrooms(nil) = %d, want 0", got)
	}
	if got := CountBeds(nil); got != 0 {
		t.Errorf("CountBeds(nil) = %d, want 0", got)
	}
	if got := CountBathrooms(nil); got != 0 {
		t.Errorf("CountBathrooms(nil) = %v, want 0", got)
	}
}

func TestCountBathroomsSkipsUnparseable(t *testing.T) {
	bathrooms := []models.Bathroom{
		{Value: "1"},
		{Value: "not-a-number"},
		{Value: "0.5"},
	}
	if got := CountBathrooms(bathrooms); got != 1.5 {
		t.Errorf("CountBathrooms = %v, want 1.5", got)
	}
}

func TestApplyDerivedOverwritesCallerCounts(t *testing.T) {
	p := models.Property{
		NumberOfBedrooms:  99,
		NumberOfBathrooms: 99,
		NumberOfBeds:      99,
		Bedrooms: []models.Bedroom{
			{Beds: []any{"double", "single"}},
		},
		Bathrooms: []models.Bathroom{{Value: "2"}},
	}

	applyDerived(&p)

	if p.NumberOfBedrooms != 1 {
		t.Errorf("NumberOfBedrooms = %d, want 1", p.NumberOfBedrooms)
	}
	if p.NumberOfBeds != 2 {
		t.Errorf("NumberOfBeds = %d, want 2", p.NumberOfBeds)
	}
	if p.NumberOfBathrooms != 2 {
		t.Errorf("NumberOfBathrooms = %v, want 2", p.NumberOfBathrooms)
	}
}
