// internal/app/store/properties/query.go
package properties

import "go.mongodb.org/mongo-driver/bson"

// NearbyFilters narrows a proximity search. Zero values add no clause;
// the geo constraint itself is always present.
type NearbyFilters struct {
	MaxDistance       float64 `json:"maxDistance"`
	PropertyType      string  `json:"propertyType"`
	NumberOfBedrooms  int     `json:"numberOfBedrooms"`
	NumberOfBathrooms float64 `json:"numberOfBathrooms"`
	PetFriendly       bool    `json:"petFriendly"`
	WalkInShower      bool    `json:"walkInShower"`
	GroundFloor       bool    `json:"groundFloor"`
}

// NearbyQuery builds the proximity filter document: a $near clause on
// the indexed position plus exact-match clauses for each set filter.
func NearbyQuery(lng, lat float64, f NearbyFilters) bson.M {
	q := bson.M{
		"address.position": bson.M{
			"$near": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{lng, lat},
				},
				"$maxDistance": f.MaxDistance,
			},
		},
	}

	if f.PropertyType != "" {
		q["type"] = f.PropertyType
	}
	if f.NumberOfBedrooms > 0 {
		q["number_of_bedrooms"] = f.NumberOfBedrooms
	}
	if f.NumberOfBathrooms > 0 {
		q["number_of_bathrooms"] = f.NumberOfBathrooms
	}
	if f.PetFriendly {
		q["summary.general.pet_friendly.is_available"] = true
	}
	if f.WalkInShower {
		q["bathrooms.type"] = "walk-in-shower"
	}
	if f.GroundFloor {
		q["floor"] = 0
	}
	return q
}
