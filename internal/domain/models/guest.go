// internal/domain/models/guest.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Guest is a booking: a stay at a property for a check-in/check-out
// window, recorded by the account that took the booking. No derived
// fields.
type Guest struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Phone      string             `bson:"phone" json:"phone"`
	Supplier   string             `bson:"supplier,omitempty" json:"supplier,omitempty"`
	Identifier string             `bson:"identifier,omitempty" json:"identifier,omitempty"`
	CheckIn    time.Time          `bson:"check_in" json:"checkIn"`
	CheckOut   time.Time          `bson:"check_out" json:"checkOut"`
	CreatedBy  primitive.ObjectID `bson:"created_by" json:"createdBy"`
	PropertyID primitive.ObjectID `bson:"property_id" json:"propertyId"`
	Other      string             `bson:"other,omitempty" json:"other,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// GuestListing is a Guest joined with display fields from the property
// and the creating account, as returned by the booking list queries.
type GuestListing struct {
	Guest         `bson:",inline"`
	PropertyName  string `bson:"property_name" json:"propertyName"`
	PropertyCity  string `bson:"property_city" json:"propertyCity"`
	CreatedByName string `bson:"created_by_name" json:"createdByName"`
}
