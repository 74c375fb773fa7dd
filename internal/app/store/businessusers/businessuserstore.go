// internal/app/store/businessusers/businessuserstore.go
package businessuserstore

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
	"golang.org/x/crypto/bcrypt"
)

// User statuses.
const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

var (
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrBadCredentials covers unknown emails, wrong passwords and disabled users.
	ErrBadCredentials = errors.New("invalid email or password")
	errNoBusiness     = errors.New("business_id is required")
	errShortPassword  = errors.New("password must be at least 8 characters")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("business_users")}
}

// Create hashes password and inserts the user.
func (s *Store) Create(ctx context.Context, u models.BusinessUser, password string) (models.BusinessUser, error) {
	if u.BusinessID.IsZero() {
		return models.BusinessUser{}, errNoBusiness
	}
	if len(password) < 8 {
		return models.BusinessUser{}, errShortPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.BusinessUser{}, err
	}

	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.Email = normalize.Email(u.Email)
	u.EmailCI = text.Fold(u.Email)
	u.PasswordHash = string(hash)
	if u.Status == "" {
		u.Status = StatusActive
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.BusinessUser{}, ErrDuplicateEmail
		}
		return models.BusinessUser{}, err
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.BusinessUser, error) {
	var u models.BusinessUser
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.BusinessUser{}, err
	}
	return u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.BusinessUser, error) {
	var u models.BusinessUser
	if err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(normalize.Email(email))}).Decode(&u); err != nil {
		return models.BusinessUser{}, err
	}
	return u, nil
}

// Authenticate returns the active user whose password matches.
func (s *Store) Authenticate(ctx context.Context, email, password string) (models.BusinessUser, error) {
	u, err := s.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.BusinessUser{}, ErrBadCredentials
	}
	if err != nil {
		return models.BusinessUser{}, err
	}
	if u.Status != StatusActive {
		return models.BusinessUser{}, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return models.BusinessUser{}, ErrBadCredentials
	}
	return u, nil
}
