// internal/domain/models/activity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityEvent records a command issued by a business user.
type ActivityEvent struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	BusinessID primitive.ObjectID  `bson:"business_id" json:"businessId"`
	UserID     primitive.ObjectID  `bson:"user_id" json:"userId"`
	EventType  string              `bson:"event_type" json:"eventType"`
	SubjectID  *primitive.ObjectID `bson:"subject_id,omitempty" json:"subjectId,omitempty"`
	Summary    string              `bson:"summary,omitempty" json:"summary,omitempty"`
	Details    map[string]any      `bson:"details,omitempty" json:"details,omitempty"`
	Timestamp  time.Time           `bson:"timestamp" json:"timestamp"`
}
