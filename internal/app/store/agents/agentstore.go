// internal/app/store/agents/agentstore.go
package agentstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("agents")}
}

// Create inserts an agent linked to businessID.
func (s *Store) Create(ctx context.Context, businessID primitive.ObjectID, a models.Agent) (models.Agent, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.BusinessIDs = []primitive.ObjectID{businessID}
	a.NameCI = text.Fold(a.DisplayName)
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Agent{}, apperr.PersistFailure("create agent", err)
	}
	return a, nil
}

// GetForBusiness loads an agent only if it is associated with businessID.
func (s *Store) GetForBusiness(ctx context.Context, businessID, agentID primitive.ObjectID) (models.Agent, error) {
	var a models.Agent
	err := s.c.FindOne(ctx, bson.M{"_id": agentID, "business_ids": businessID}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Agent{}, apperr.NotFound("agent")
	}
	if err != nil {
		return models.Agent{}, apperr.ReadFailure("get agent", err)
	}
	return a, nil
}

// ListByBusiness returns at most limit agents associated with businessID,
// ordered by id.
func (s *Store) ListByBusiness(ctx context.Context, businessID primitive.ObjectID, limit int) ([]models.Agent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit))
	cur, err := s.c.Find(ctx, bson.M{"business_ids": businessID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	agents := []models.Agent{}
	if err := cur.All(ctx, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

// Update changes the contact fields of an agent associated with businessID.
// Empty fields are left alone.
func (s *Store) Update(ctx context.Context, businessID, agentID primitive.ObjectID, a models.Agent) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if a.DisplayName != "" {
		set["display_name"] = a.DisplayName
		set["display_name_ci"] = text.Fold(a.DisplayName)
	}
	if a.Email != "" {
		set["email"] = a.Email
	}
	if a.Phone != "" {
		set["phone"] = a.Phone
	}
	if a.ProfileImage != "" {
		set["profile_image"] = a.ProfileImage
	}
	return s.update(ctx, businessID, agentID, bson.M{"$set": set}, "update agent")
}

// SetActive stores an explicit active flag.
func (s *Store) SetActive(ctx context.Context, businessID, agentID primitive.ObjectID, active bool) error {
	return s.setFlag(ctx, businessID, agentID, "active", active)
}

// SetVerified stores an explicit verified flag.
func (s *Store) SetVerified(ctx context.Context, businessID, agentID primitive.ObjectID, verified bool) error {
	return s.setFlag(ctx, businessID, agentID, "verified", verified)
}

func (s *Store) setFlag(ctx context.Context, businessID, agentID primitive.ObjectID, field string, v bool) error {
	update := bson.M{"$set": bson.M{field: v, "updated_at": time.Now().UTC()}}
	return s.update(ctx, businessID, agentID, update, "set agent "+field)
}

// Unlink removes businessID from the agent's businesses. The agent
// document itself survives because other businesses may still use it.
func (s *Store) Unlink(ctx context.Context, businessID, agentID primitive.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{"business_ids": businessID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	return s.update(ctx, businessID, agentID, update, "unlink agent")
}

func (s *Store) update(ctx context.Context, businessID, agentID primitive.ObjectID, update bson.M, op string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": agentID, "business_ids": businessID}, update)
	if err != nil {
		return apperr.PersistFailure(op, err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("agent")
	}
	return nil
}
