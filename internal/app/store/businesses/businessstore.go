// internal/app/store/businesses/businessstore.go
package businessstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/hostelhub/hostelhub/internal/app/system/normalize"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateBusiness = errors.New("a business with this name already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("businesses")}
}

func (s *Store) Create(ctx context.Context, b models.Business) (models.Business, error) {
	now := time.Now().UTC()
	b.ID = primitive.NewObjectID()
	b.Name = normalize.Name(b.Name)
	b.NameCI = text.Fold(b.Name)
	b.Email = normalize.Email(b.Email)
	b.Phone = normalize.Phone(b.Phone)
	b.CreatedAt = now
	b.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, b); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Business{}, ErrDuplicateBusiness
		}
		return models.Business{}, err
	}
	return b, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Business, error) {
	var b models.Business
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return models.Business{}, err
	}
	return b, nil
}
