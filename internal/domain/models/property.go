// internal/domain/models/property.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoPoint is a GeoJSON point stored as [longitude, latitude].
// The properties collection carries a 2dsphere index on address.position.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from longitude/latitude.
func NewGeoPoint(lng, lat float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Address holds the structured address plus the indexed position.
type Address struct {
	Street          string   `bson:"street" json:"street"`
	Number          string   `bson:"number" json:"number"`
	City            string   `bson:"city" json:"city"`
	State           string   `bson:"state" json:"state"`
	Zip             string   `bson:"zip" json:"zip"`
	FreeFormAddress string   `bson:"free_form_address" json:"freeFormAddress"`
	Position        GeoPoint `bson:"position" json:"position"`
}

// Image is a stored image descriptor. Order within Property.Images is
// display order and is fully caller-replaceable.
type Image struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Key       string             `bson:"key" json:"key"`
	Name      string             `bson:"name" json:"name"`
	URL       string             `bson:"url" json:"url"`
	Thumbnail bool               `bson:"thumbnail" json:"thumbnail"`
}

// Video is a stored video descriptor.
type Video struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
	URL  string             `bson:"url" json:"url"`
	Type string             `bson:"type" json:"type"`
}

// Floorplan is the at-most-one floorplan descriptor. Absence is
// represented by empty strings, not a nil pointer, matching the
// stored document shape.
type Floorplan struct {
	Key  string `bson:"key" json:"key"`
	Name string `bson:"name" json:"name"`
	URL  string `bson:"url" json:"url"`
}

// IsZero reports whether no floorplan is attached.
func (f Floorplan) IsZero() bool {
	return f.Key == "" && f.Name == "" && f.URL == ""
}

// Bedroom holds the nested bedroom structure the derived counts are
// computed from. Beds is free-form (bed type descriptors).
type Bedroom struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type string             `bson:"type" json:"type"`
	Name string             `bson:"name" json:"name"`
	Beds []any              `bson:"beds" json:"beds"`
}

// Bathroom's Value is a numeric string ("1", "0.5"); the bathroom count
// is the sum of these values.
type Bathroom struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type  string             `bson:"type" json:"type"`
	Value string             `bson:"value" json:"value"`
}

// LivingRoom mirrors Bedroom but does not contribute to derived counts.
type LivingRoom struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type string             `bson:"type" json:"type"`
	Name string             `bson:"name" json:"name"`
	Beds []any              `bson:"beds" json:"beds"`
}

// SellingPoint is one marketing bullet.
type SellingPoint struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text string             `bson:"text" json:"text"`
}

// Amenity is a single summary entry: a display name, a stable value key,
// and whether the property has it.
type Amenity struct {
	Name        string `bson:"name" json:"name"`
	Value       string `bson:"value" json:"value"`
	IsAvailable bool   `bson:"is_available" json:"isAvailable"`
}

// GeneralAmenities groups the whole-property amenities.
type GeneralAmenities struct {
	Parking     Amenity `bson:"parking" json:"parking"`
	PetFriendly Amenity `bson:"pet_friendly" json:"petFriendly"`
	TV          Amenity `bson:"tv" json:"tv"`
	WiFi        Amenity `bson:"wifi" json:"wifi"`
	Ventilation Amenity `bson:"ventilation" json:"ventilation"`
	Workspace   Amenity `bson:"workspace" json:"workspace"`
	Elevator    Amenity `bson:"elevator" json:"elevator"`
}

// KitchenAmenities groups kitchen equipment.
type KitchenAmenities struct {
	Microwave  Amenity `bson:"microwave" json:"microwave"`
	Oven       Amenity `bson:"oven" json:"oven"`
	Hob        Amenity `bson:"hob" json:"hob"`
	Fridge     Amenity `bson:"fridge" json:"fridge"`
	Freezer    Amenity `bson:"freezer" json:"freezer"`
	Kettle     Amenity `bson:"kettle" json:"kettle"`
	Toaster    Amenity `bson:"toaster" json:"toaster"`
	Dishwasher Amenity `bson:"dishwasher" json:"dishwasher"`
}

// LaundryAmenities groups laundry equipment.
type LaundryAmenities struct {
	WashingMachine Amenity `bson:"washing_machine" json:"washingMachine"`
	ClothesHorse   Amenity `bson:"clothes_horse" json:"clothesHorse"`
	Iron           Amenity `bson:"iron" json:"iron"`
	TumbleDryer    Amenity `bson:"tumble_dryer" json:"tumbleDryer"`
}

// OutsideAmenities groups outdoor space amenities.
type OutsideAmenities struct {
	Garden  Amenity `bson:"garden" json:"garden"`
	Balcony Amenity `bson:"balcony" json:"balcony"`
	Patio   Amenity `bson:"patio" json:"patio"`
	BBQ     Amenity `bson:"bbq" json:"bbq"`
}

// SafetyAmenities groups safety certification amenities.
type SafetyAmenities struct {
	CarbonMonoxideAlarm Amenity `bson:"carbon_monoxide_alarm" json:"carbonMonoxideAlarm"`
	SmokeAlarm          Amenity `bson:"smoke_alarm" json:"smokeAlarm"`
	GasCertificate      Amenity `bson:"gas_certificate" json:"gasCertificate"`
	EICRRates           Amenity `bson:"eicr_rates" json:"eicrRates"`
}

// Summary is the full amenity sheet. The pet-friendly flag is queried by
// the proximity search (summary.general.pet_friendly.is_available).
type Summary struct {
	General GeneralAmenities `bson:"general" json:"general"`
	Kitchen KitchenAmenities `bson:"kitchen" json:"kitchen"`
	Laundry LaundryAmenities `bson:"laundry" json:"laundry"`
	Outside OutsideAmenities `bson:"outside" json:"outside"`
	Safety  SafetyAmenities  `bson:"safety" json:"safety"`
}

// ValueOnly wraps free-text policy fields stored as {value: "..."}.
type ValueOnly struct {
	Value string `bson:"value" json:"value"`
}

// UpdatedBy is one entry of the prepend-only edit history. New entries go
// to the front of Property.UpdatedBy; the list is never pruned.
type UpdatedBy struct {
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// Landlord is the internal rate card for the property's landlord.
type Landlord struct {
	Name         string `bson:"name" json:"name"`
	Email        string `bson:"email" json:"email"`
	Phone        string `bson:"phone" json:"phone"`
	NightlyRate  string `bson:"nightly_rate" json:"nightlyRate"`
	Deposit      string `bson:"deposit" json:"deposit"`
	CleaningFee  string `bson:"cleaning_fee" json:"cleaningFee"`
	Parking      string `bson:"parking" json:"parking"`
	PetFee       string `bson:"pet_fee" json:"petFee"`
	Other        string `bson:"other" json:"other"`
	QuoteOutDate string `bson:"quote_out_date" json:"quoteOutDate"`
	Status       string `bson:"status" json:"status"`
	Margin       string `bson:"margin" json:"margin"`
}

// ExternalRates is the guest-facing rate card.
type ExternalRates struct {
	NightlyRate string `bson:"nightly_rate" json:"nightlyRate"`
	Deposit     string `bson:"deposit" json:"deposit"`
	CleaningFee string `bson:"cleaning_fee" json:"cleaningFee"`
	Parking     string `bson:"parking" json:"parking"`
}

// Property is a rental listing.
//
// NumberOfBedrooms, NumberOfBathrooms and NumberOfBeds are derived from
// the Bedrooms/Bathrooms arrays on every write and are never taken from
// caller input. Alias is assigned at creation and permanent.
type Property struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Alias       string             `bson:"alias" json:"alias"`
	Type        string             `bson:"type" json:"type"`
	Description string             `bson:"description" json:"description"`

	Images    []Image   `bson:"images" json:"images"`
	Videos    []Video   `bson:"videos" json:"videos"`
	Floorplan Floorplan `bson:"floorplan" json:"floorplan"`

	Address Address `bson:"address" json:"address"`

	NumberOfBedrooms  int     `bson:"number_of_bedrooms" json:"numberOfBedrooms"`
	NumberOfBathrooms float64 `bson:"number_of_bathrooms" json:"numberOfBathrooms"`
	NumberOfBeds      int     `bson:"number_of_beds" json:"numberOfBeds"`

	Summary Summary `bson:"summary" json:"summary"`
	Floor   int     `bson:"floor" json:"floor"`

	ParkingType    ValueOnly `bson:"parking_type" json:"parkingType"`
	CheckInProcess ValueOnly `bson:"check_in_process" json:"checkInProcess"`
	PetsPolicy     ValueOnly `bson:"pets_policy" json:"petsPolicy"`
	Housekeeping   ValueOnly `bson:"housekeeping" json:"housekeeping"`
	CheckIn        string    `bson:"check_in" json:"checkIn"`
	CheckOut       string    `bson:"check_out" json:"checkOut"`

	Bedrooms      []Bedroom      `bson:"bedrooms" json:"bedrooms"`
	Bathrooms     []Bathroom     `bson:"bathrooms" json:"bathrooms"`
	LivingRooms   []LivingRoom   `bson:"living_rooms" json:"livingRooms"`
	SellingPoints []SellingPoint `bson:"selling_points" json:"sellingPoints"`

	LivePropertyLink string `bson:"live_property_link" json:"livePropertyLink"`
	Cancellation     string `bson:"cancellation" json:"cancellation"`

	CreatedBy primitive.ObjectID `bson:"created_by" json:"createdBy"`
	UpdatedBy []UpdatedBy        `bson:"updated_by" json:"updatedBy"`

	Booking   bool `bson:"booking" json:"booking"`
	IsActive  bool `bson:"is_active" json:"isActive"`
	IsDeleted bool `bson:"is_deleted" json:"isDeleted"`

	Landlord Landlord      `bson:"landlord" json:"landlord"`
	External ExternalRates `bson:"external" json:"external"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// PublicProperty is the unauthenticated view of a listing: the same
// document minus audit fields (createdBy, updatedBy, timestamps).
type PublicProperty struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Alias       string             `bson:"alias" json:"alias"`
	Type        string             `bson:"type" json:"type"`
	Description string             `bson:"description" json:"description"`

	Images    []Image   `bson:"images" json:"images"`
	Videos    []Video   `bson:"videos" json:"videos"`
	Floorplan Floorplan `bson:"floorplan" json:"floorplan"`

	Address Address `bson:"address" json:"address"`

	NumberOfBedrooms  int     `bson:"number_of_bedrooms" json:"numberOfBedrooms"`
	NumberOfBathrooms float64 `bson:"number_of_bathrooms" json:"numberOfBathrooms"`
	NumberOfBeds      int     `bson:"number_of_beds" json:"numberOfBeds"`

	Summary Summary `bson:"summary" json:"summary"`
	Floor   int     `bson:"floor" json:"floor"`

	ParkingType    ValueOnly `bson:"parking_type" json:"parkingType"`
	CheckInProcess ValueOnly `bson:"check_in_process" json:"checkInProcess"`
	PetsPolicy     ValueOnly `bson:"pets_policy" json:"petsPolicy"`
	Housekeeping   ValueOnly `bson:"housekeeping" json:"housekeeping"`
	CheckIn        string    `bson:"check_in" json:"checkIn"`
	CheckOut       string    `bson:"check_out" json:"checkOut"`

	Bedrooms      []Bedroom      `bson:"bedrooms" json:"bedrooms"`
	Bathrooms     []Bathroom     `bson:"bathrooms" json:"bathrooms"`
	LivingRooms   []LivingRoom   `bson:"living_rooms" json:"livingRooms"`
	SellingPoints []SellingPoint `bson:"selling_points" json:"sellingPoints"`

	LivePropertyLink string `bson:"live_property_link" json:"livePropertyLink"`
	Cancellation     string `bson:"cancellation" json:"cancellation"`

	Booking  bool `bson:"booking" json:"booking"`
	IsActive bool `bson:"is_active" json:"isActive"`

	External ExternalRates `bson:"external" json:"external"`
}
