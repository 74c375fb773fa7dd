// Package agentstatus changes an agent's active or verified flag and
// returns the refreshed commission view.
package agentstatus

import (
	"context"

	"github.com/hostelhub/hostelhub/internal/app/store/activity"
	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/domain/commission"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Field names a status flag.
type Field string

const (
	Active   Field = "active"
	Verified Field = "verified"
)

// Writer persists explicit flag values.
type Writer interface {
	SetActive(ctx context.Context, businessID, agentID primitive.ObjectID, active bool) error
	SetVerified(ctx context.Context, businessID, agentID primitive.ObjectID, verified bool) error
}

// Marker is the per-session single-flight marker.
type Marker interface {
	AcquireToggle(ctx context.Context, sessionID, agentID string) (bool, error)
	ReleaseToggle(ctx context.Context, sessionID, agentID string) error
}

// Lister re-reads the commission view after a change.
type Lister interface {
	Get(ctx context.Context, businessID primitive.ObjectID, limit int) ([]commission.AgentSummary, error)
}

// Recorder audits successful changes.
type Recorder interface {
	Record(ctx context.Context, businessID, userID primitive.ObjectID, eventType string, subject *primitive.ObjectID, summary string, details map[string]any)
}

type Toggler struct {
	Writer   Writer
	Marker   Marker
	Lister   Lister
	Recorder Recorder
	Log      *zap.Logger
}

// Request identifies one status change.
type Request struct {
	SessionID  string
	BusinessID primitive.ObjectID
	UserID     primitive.ObjectID
	AgentID    primitive.ObjectID
	// Limit is passed to the re-fetch.
	Limit int
}

// SetActive stores an explicit active flag for the agent.
func (t *Toggler) SetActive(ctx context.Context, req Request, active bool) ([]commission.AgentSummary, error) {
	return t.set(ctx, req, Active, active)
}

// SetVerified stores an explicit verified flag for the agent.
func (t *Toggler) SetVerified(ctx context.Context, req Request, verified bool) ([]commission.AgentSummary, error) {
	return t.set(ctx, req, Verified, verified)
}

// set acquires the session marker, persists the flag, releases the
// marker and then re-runs the commission view. A second change while one
// is in flight fails with ToggleInFlight. When the write fails nothing is
// re-read and the caller keeps its current view.
//
// The re-fetch result may carry a PartialError alongside its list; that
// is passed through unchanged because the write itself succeeded.
func (t *Toggler) set(ctx context.Context, req Request, field Field, value bool) ([]commission.AgentSummary, error) {
	if req.BusinessID.IsZero() {
		return nil, apperr.Unauthenticated()
	}
	if req.AgentID.IsZero() {
		return nil, apperr.Invalid("agent id is required", nil)
	}
	log := t.logger().With(
		zap.String("business_id", req.BusinessID.Hex()),
		zap.String("agent_id", req.AgentID.Hex()),
		zap.String("field", string(field)),
		zap.Bool("value", value))

	agentID := req.AgentID.Hex()
	ok, err := t.Marker.AcquireToggle(ctx, req.SessionID, agentID)
	if err != nil {
		return nil, apperr.PersistFailure("acquire toggle marker", err)
	}
	if !ok {
		return nil, apperr.ToggleInFlight(agentID)
	}

	err = t.write(ctx, req, field, value)
	// release with a context that survives a cancelled request
	if relErr := t.Marker.ReleaseToggle(context.WithoutCancel(ctx), req.SessionID, agentID); relErr != nil {
		log.Warn("release toggle marker failed", zap.Error(relErr))
	}
	if err != nil {
		log.Warn("agent status change failed", zap.Error(err))
		return nil, err
	}
	log.Info("agent status changed")

	if t.Recorder != nil {
		subject := req.AgentID
		t.Recorder.Record(ctx, req.BusinessID, req.UserID, activity.EventAgentStatusChanged, &subject,
			string(field)+" set", map[string]any{"field": string(field), "value": value})
	}

	return t.Lister.Get(ctx, req.BusinessID, req.Limit)
}

func (t *Toggler) write(ctx context.Context, req Request, field Field, value bool) error {
	var err error
	switch field {
	case Active:
		err = t.Writer.SetActive(ctx, req.BusinessID, req.AgentID, value)
	case Verified:
		err = t.Writer.SetVerified(ctx, req.BusinessID, req.AgentID, value)
	default:
		return apperr.Invalid("unknown status field "+string(field), nil)
	}
	if err == nil || apperr.KindOf(err) != "" {
		return err
	}
	return apperr.PersistFailure("set agent "+string(field), err)
}

func (t *Toggler) logger() *zap.Logger {
	if t.Log == nil {
		return zap.NewNop()
	}
	return t.Log
}
