// internal/domain/models/activity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity is one immutable audit entry: an actor performed an action on
// a target. Description is derived from (action, target) before the
// entry is persisted and is never caller-supplied.
type Activity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	Action      string             `bson:"action" json:"action"`
	Target      string             `bson:"target" json:"target"`
	Description string             `bson:"description" json:"description"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
	Metadata    map[string]any     `bson:"metadata,omitempty" json:"metadata,omitempty"`
}
