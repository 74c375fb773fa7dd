// Package roomoccupancy projects a hostel's rooms and their current
// occupants into occupancy views.
package roomoccupancy

import (
	"context"
	"time"

	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"github.com/hostelhub/hostelhub/internal/domain/occupancy"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HostelSource interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Hostel, error)
	GetForBusiness(ctx context.Context, businessID, id primitive.ObjectID) (models.Hostel, error)
}

type RoomSource interface {
	ListByHostel(ctx context.Context, hostelID primitive.ObjectID, limit int) ([]models.Room, error)
}

type OccupantSource interface {
	ListByRooms(ctx context.Context, roomIDs []primitive.ObjectID) ([]models.Occupant, error)
}

type Service struct {
	Hostels    HostelSource
	Rooms      RoomSource
	Occupants  OccupantSource
	WindowDays int
}

func New(hostels HostelSource, rooms RoomSource, occupants OccupantSource, windowDays int) *Service {
	if windowDays <= 0 {
		windowDays = occupancy.DefaultExpiryWindowDays
	}
	return &Service{Hostels: hostels, Rooms: rooms, Occupants: occupants, WindowDays: windowDays}
}

// Get returns the occupancy of up to limit rooms of hostelID in room
// number order. A limit of zero returns every room.
func (s *Service) Get(ctx context.Context, hostelID primitive.ObjectID, limit int, today time.Time) ([]occupancy.RoomOccupancy, error) {
	if _, err := s.Hostels.GetByID(ctx, hostelID); err != nil {
		return nil, err
	}
	return s.project(ctx, hostelID, limit, today)
}

// GetForBusiness is Get restricted to a hostel owned by businessID.
// Another business's hostel is reported as not found.
func (s *Service) GetForBusiness(ctx context.Context, businessID, hostelID primitive.ObjectID, limit int, today time.Time) ([]occupancy.RoomOccupancy, error) {
	if businessID.IsZero() {
		return nil, apperr.Unauthenticated()
	}
	if _, err := s.Hostels.GetForBusiness(ctx, businessID, hostelID); err != nil {
		return nil, err
	}
	return s.project(ctx, hostelID, limit, today)
}

func (s *Service) project(ctx context.Context, hostelID primitive.ObjectID, limit int, today time.Time) ([]occupancy.RoomOccupancy, error) {
	rooms, err := s.Rooms.ListByHostel(ctx, hostelID, limit)
	if err != nil {
		return nil, apperr.ReadFailure("list rooms", err)
	}
	ids := make([]primitive.ObjectID, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID
	}
	occupants, err := s.Occupants.ListByRooms(ctx, ids)
	if err != nil {
		return nil, apperr.ReadFailure("list occupants", err)
	}

	byRoom := make(map[primitive.ObjectID][]models.Occupant, len(rooms))
	for _, o := range occupants {
		byRoom[o.RoomID] = append(byRoom[o.RoomID], o)
	}

	out := make([]occupancy.RoomOccupancy, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, occupancy.Project(r, byRoom[r.ID], today, s.WindowDays))
	}
	return out, nil
}
