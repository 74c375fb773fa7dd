// internal/app/features/activity/handler.go
package activity

import (
	activitystore "github.com/hostelhub/hostelhub/internal/app/store/activity"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	defaultRecentLimit = 50
	maxRecentLimit     = 200
)

// Handler serves the business's command history.
type Handler struct {
	Activity *activitystore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Activity: activitystore.New(db, logger),
		Log:      logger,
	}
}
