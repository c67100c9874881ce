// internal/domain/models/account.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account roles, least to most privileged.
const (
	RoleUser        = "user"
	RoleModerator   = "moderator"
	RoleAdmin       = "admin"
	RoleMasterAdmin = "masteradmin"
)

// ValidRole reports whether r is one of the four account roles.
func ValidRole(r string) bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin, RoleMasterAdmin:
		return true
	}
	return false
}

// CreatedBySnapshot is a point-in-time copy of the creator's identity,
// captured when the account is created. It is never updated afterwards,
// even if the creator is renamed or deleted.
type CreatedBySnapshot struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName string             `bson:"full_name" json:"fullName"`
	Alias    string             `bson:"alias" json:"alias"`
}

// Account is a staff identity. Accounts are soft-deleted via IsDeleted;
// the only physical removal path is an account deleting itself.
type Account struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string             `bson:"first_name" json:"firstName"`
	LastName  string             `bson:"last_name" json:"lastName"`
	FullName  string             `bson:"full_name" json:"fullName"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	ImageURL  string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`

	// Alias is the permanent slug derived from first+last name at creation.
	Alias string `bson:"alias" json:"alias"`
	Role  string `bson:"role" json:"role"`

	CreatedBy CreatedBySnapshot `bson:"created_by,omitempty" json:"createdBy"`

	IsDeleted  bool `bson:"is_deleted" json:"isDeleted"`
	IsInactive bool `bson:"is_inactive" json:"isInactive"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
