// internal/app/features/guests/types.go
package guests

import (
	"time"

	"github.com/letkeeper/letkeeper/internal/domain/models"
)

type createRequest struct {
	Name       string    `json:"name" validate:"required"`
	Email      string    `json:"email" validate:"required,email"`
	Phone      string    `json:"phone"`
	Supplier   string    `json:"supplier"`
	Identifier string    `json:"identifier"`
	CheckIn    time.Time `json:"checkIn" validate:"required"`
	CheckOut   time.Time `json:"checkOut" validate:"required"`
	PropertyID string    `json:"propertyId" validate:"required"`
	Other      string    `json:"other"`
}

type guestIDRequest struct {
	GuestID string `json:"guestId" validate:"required"`
}

type propertyIDRequest struct {
	PropertyID string `json:"propertyId" validate:"required"`
}

type fetchRequest struct {
	Skip  int64      `json:"skip"`
	Limit int64      `json:"limit"`
	From  *time.Time `json:"from"`
	To    *time.Time `json:"to"`
}

type createResponse struct {
	Success bool         `json:"success"`
	Guest   models.Guest `json:"guest"`
	Message string       `json:"message"`
}

type listResponse struct {
	Success bool                  `json:"success"`
	Guests  []models.GuestListing `json:"guests"`
	Number  int64                 `json:"number"`
}

type futureResponse struct {
	Success         bool                  `json:"success"`
	Guests          []models.GuestListing `json:"guests"`
	NextBookingDate *time.Time            `json:"nextBookingDate"`
}

type pastResponse struct {
	Success bool                  `json:"success"`
	Guests  []models.GuestListing `json:"guests"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
