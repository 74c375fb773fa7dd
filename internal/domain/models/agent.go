// internal/domain/models/agent.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Agent refers students to hostels and earns a commission per booking.
// An agent may serve several businesses; BusinessIDs holds the association.
type Agent struct {
	ID           primitive.ObjectID   `bson:"_id" json:"agentId"`
	BusinessIDs  []primitive.ObjectID `bson:"business_ids" json:"-"`
	DisplayName  string               `bson:"display_name" json:"agentName"`
	NameCI       string               `bson:"display_name_ci" json:"-"`
	Email        string               `bson:"email,omitempty" json:"email,omitempty"`
	Phone        string               `bson:"phone,omitempty" json:"phone,omitempty"`
	ProfileImage string               `bson:"profile_image,omitempty" json:"profileImage,omitempty"`
	Active       Flag                 `bson:"active,omitempty" json:"active"`
	Verified     Flag                 `bson:"verified,omitempty" json:"verified"`
	CreatedAt    time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updated_at" json:"updatedAt"`
}
