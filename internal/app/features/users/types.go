// internal/app/features/users/types.go
package users

import "github.com/letkeeper/letkeeper/internal/domain/models"

type accountIDRequest struct {
	AccountID string `json:"accountId" validate:"required"`
}

type updateRequest struct {
	AccountID string `json:"accountId" validate:"required"`
	Data      struct {
		FirstName string `json:"firstName" validate:"required"`
		LastName  string `json:"lastName" validate:"required"`
		Email     string `json:"email" validate:"required,email"`
		Role      string `json:"role" validate:"required"`
	} `json:"data" validate:"required"`
}

type changePasswordRequest struct {
	AccountID string `json:"accountId" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
}

type listResponse struct {
	Success bool             `json:"success"`
	Users   []models.Account `json:"users"`
}

type accountResponse struct {
	Success bool           `json:"success"`
	Account models.Account `json:"account"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
