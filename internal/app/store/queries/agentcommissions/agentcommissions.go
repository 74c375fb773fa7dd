// Package agentcommissions builds the commission view of every agent a
// business works with.
package agentcommissions

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/domain/commission"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
	// DefaultFanout bounds concurrent per-agent booking reads.
	DefaultFanout = 8
)

// AgentSource lists the agents associated with a business, ordered by id.
type AgentSource interface {
	ListByBusiness(ctx context.Context, businessID primitive.ObjectID, limit int) ([]models.Agent, error)
	GetForBusiness(ctx context.Context, businessID, agentID primitive.ObjectID) (models.Agent, error)
}

// BookingSource lists one agent's bookings within one business.
type BookingSource interface {
	ListByAgent(ctx context.Context, businessID, agentID primitive.ObjectID) ([]models.Booking, error)
}

// Service derives agent summaries on every call; nothing is cached.
type Service struct {
	Agents       AgentSource
	Bookings     BookingSource
	Log          *zap.Logger
	DefaultLimit int
	Fanout       int
}

func New(agents AgentSource, bookings BookingSource, log *zap.Logger) *Service {
	return &Service{Agents: agents, Bookings: bookings, Log: log, DefaultLimit: DefaultLimit, Fanout: DefaultFanout}
}

// EffectiveLimit maps a requested limit onto the allowed range.
func (s *Service) EffectiveLimit(limit int) int {
	def := s.DefaultLimit
	if def <= 0 {
		def = DefaultLimit
	}
	if limit <= 0 {
		limit = def
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return limit
}

// Get returns a summary for each agent associated with businessID, in
// agent id order.
//
// When the agent list itself cannot be read the error is a read failure
// and no summaries are returned. When only some agents' bookings cannot
// be read, those agents are left out and the rest are returned together
// with an *apperr.PartialError naming them.
func (s *Service) Get(ctx context.Context, businessID primitive.ObjectID, limit int) ([]commission.AgentSummary, error) {
	if businessID.IsZero() {
		return nil, apperr.Unauthenticated()
	}

	agents, err := s.Agents.ListByBusiness(ctx, businessID, s.EffectiveLimit(limit))
	if err != nil {
		return nil, apperr.ReadFailure("list agents", err)
	}
	sort.SliceStable(agents, func(i, j int) bool {
		return bytes.Compare(agents[i].ID[:], agents[j].ID[:]) < 0
	})

	results := make([]commission.AgentSummary, len(agents))
	errs := make([]error, len(agents))

	fanout := s.Fanout
	if fanout <= 0 {
		fanout = 1
	}
	sem := make(chan struct{}, fanout)
	var wg sync.WaitGroup
	for i, a := range agents {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, a models.Agent) {
			defer wg.Done()
			defer func() { <-sem }()
			bookings, err := s.Bookings.ListByAgent(ctx, businessID, a.ID)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = commission.Summarize(a, businessID, bookings)
		}(i, a)
	}
	wg.Wait()

	out := make([]commission.AgentSummary, 0, len(agents))
	var partial *apperr.PartialError
	for i, a := range agents {
		if errs[i] != nil {
			if partial == nil {
				partial = &apperr.PartialError{}
			}
			partial.FailedIDs = append(partial.FailedIDs, a.ID.Hex())
			partial.Causes = append(partial.Causes, errs[i])
			s.logger().Warn("agent bookings read failed",
				zap.String("business_id", businessID.Hex()),
				zap.String("agent_id", a.ID.Hex()),
				zap.Error(errs[i]))
			continue
		}
		out = append(out, results[i])
	}
	if partial != nil {
		return out, partial
	}
	return out, nil
}

// GetOne returns the summary of a single agent of businessID.
func (s *Service) GetOne(ctx context.Context, businessID, agentID primitive.ObjectID) (commission.AgentSummary, error) {
	if businessID.IsZero() {
		return commission.AgentSummary{}, apperr.Unauthenticated()
	}
	a, err := s.Agents.GetForBusiness(ctx, businessID, agentID)
	if err != nil {
		return commission.AgentSummary{}, err
	}
	bookings, err := s.Bookings.ListByAgent(ctx, businessID, agentID)
	if err != nil {
		return commission.AgentSummary{}, apperr.ReadFailure("list agent bookings", err)
	}
	return commission.Summarize(a, businessID, bookings), nil
}

func (s *Service) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
