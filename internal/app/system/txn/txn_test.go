package txn_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/app/system/txn"
	"github.com/hostelhub/hostelhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestIsNotSupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("connection reset"), false},
		{"standalone server code", mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member or mongos"}, true},
		{"not allowed in transaction code", mongo.CommandError{Code: 263, Message: "Cannot run command in a multi-document transaction"}, true},
		{"unrelated command code", mongo.CommandError{Code: 11000, Message: "E11000 duplicate key"}, false},
		{"wrapped command error", apperr.PersistFailure("lock room", mongo.CommandError{Code: 20}), true},
		{"replica set message", errors.New("Transaction aborted: not a REPLICA SET member"), true},
		{"sessions unsupported message", errors.New("sessions are not supported by this deployment"), true},
		{"transaction alone", errors.New("transaction timed out"), false},
		{"room full", apperr.Conflict("room is full"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := txn.IsNotSupported(tt.err); got != tt.want {
				t.Errorf("IsNotSupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRun_CommitsWrites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := txn.Run(ctx, db, zap.NewNop(), func(ctx context.Context) error {
		if _, err := db.Collection("rooms").InsertOne(ctx, bson.M{"room_number": "T1"}); err != nil {
			return err
		}
		_, err := db.Collection("rooms").InsertOne(ctx, bson.M{"room_number": "T2"})
		return err
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	n, err := db.Collection("rooms").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count rooms: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 rooms, got %d", n)
	}
}

func TestRun_ReturnsCallbackError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	calls := 0
	err := txn.Run(ctx, db, nil, func(ctx context.Context) error {
		calls++
		return apperr.Conflict("room is full")
	})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected the callback's conflict, got %v", err)
	}
	if calls != 1 {
		t.Errorf("callback ran %d times, want 1", calls)
	}
}
