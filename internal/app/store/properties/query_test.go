package properties

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func geoClause(lng, lat, maxDistance float64) bson.M {
	return bson.M{
		"$near": bson.M{
			"$geometry": bson.M{
				"type":        "Point",
				"coordinates": []float64{lng, lat},
			},
			"$maxDistance": maxDistance,
		},
	}
}

func TestNearbyQueryGeoOnly(t *testing.T) {
	q := NearbyQuery(-0.1, 51.5, NearbyFilters{MaxDistance: 5000})

	want := bson.M{"address.position": geoClause(-0.1, 51.5, 5000)}
	if !reflect.DeepEqual(q, want) {
		t.Errorf("query = %#v, want %#v", q, want)
	}
}

func TestNearbyQueryAllFilters(t *testing.T) {
	q := NearbyQuery(-0.1, 51.5, NearbyFilters{
		MaxDistance:       1000,
		PropertyType:      "apartment",
		NumberOfBedrooms:  2,
		NumberOfBathrooms: 1.5,
		PetFriendly:       true,
		WalkInShower:      true,
		GroundFloor:       true,
	})

	want := bson.M{
		"address.position":    geoClause(-0.1, 51.5, 1000),
		"type":                "apartment",
		"number_of_bedrooms":  2,
		"number_of_bathrooms": 1.5,
		"summary.general.pet_friendly.is_available": true,
		"bathrooms.type": "walk-in-shower",
		"floor":          0,
	}
	if !reflect.DeepEqual(q, want) {
		t.Errorf("query = %#v, want %#v", q, want)
	}
}

func TestNearbyQueryZeroFiltersAddNothing(t *testing.T) {
	q := NearbyQuery(10, 20, NearbyFilters{MaxDistance: 100})

	if len(q) != 1 {
		t.Errorf("query has %d clauses, want 1 (geo only): %#v", len(q), q)
	}
}
