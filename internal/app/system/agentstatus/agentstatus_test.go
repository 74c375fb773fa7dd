package agentstatus

import (
	"context"
	"errors"
	"testing"

	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/app/system/sessionstate"
	"github.com/hostelhub/hostelhub/internal/domain/commission"
	"github.com/hostelhub/hostelhub/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeWriter struct {
	flags map[primitive.ObjectID]*[2]models.Flag
	err   error
	// during runs while the write is "in flight"
	during func()
}

func (w *fakeWriter) set(agentID primitive.ObjectID, i int, v bool) error {
	if w.during != nil {
		w.during()
	}
	if w.err != nil {
		return w.err
	}
	f, ok := w.flags[agentID]
	if !ok {
		return apperr.NotFound("agent")
	}
	f[i] = models.FlagOf(v)
	return nil
}

func (w *fakeWriter) SetActive(_ context.Context, _, agentID primitive.ObjectID, v bool) error {
	return w.set(agentID, 0, v)
}

func (w *fakeWriter) SetVerified(_ context.Context, _, agentID primitive.ObjectID, v bool) error {
	return w.set(agentID, 1, v)
}

type fakeLister struct {
	w     *fakeWriter
	calls int
}

func (l *fakeLister) Get(_ context.Context, _ primitive.ObjectID, _ int) ([]commission.AgentSummary, error) {
	l.calls++
	var out []commission.AgentSummary
	for id, f := range l.w.flags {
		out = append(out, commission.AgentSummary{AgentID: id, Active: f[0], Verified: f[1], LastBookingDate: commission.NoBookings})
	}
	return out, nil
}

type fakeRecorder struct{ events []string }

func (r *fakeRecorder) Record(_ context.Context, _, _ primitive.ObjectID, eventType string, _ *primitive.ObjectID, _ string, _ map[string]any) {
	r.events = append(r.events, eventType)
}

type harness struct {
	agent    primitive.ObjectID
	writer   *fakeWriter
	lister   *fakeLister
	marker   *sessionstate.MemoryStore
	recorder *fakeRecorder
	toggler  *Toggler
	req      Request
}

func newHarness() *harness {
	agent := primitive.NewObjectID()
	w := &fakeWriter{flags: map[primitive.ObjectID]*[2]models.Flag{agent: {models.Unset, models.Unset}}}
	h := &harness{
		agent:    agent,
		writer:   w,
		lister:   &fakeLister{w: w},
		marker:   sessionstate.NewMemoryStore(0, 0),
		recorder: &fakeRecorder{},
	}
	h.toggler = &Toggler{Writer: w, Marker: h.marker, Lister: h.lister, Recorder: h.recorder}
	h.req = Request{SessionID: "s1", BusinessID: primitive.NewObjectID(), UserID: primitive.NewObjectID(), AgentID: agent}
	return h
}

func TestSetActive_PersistsAndRefetches(t *testing.T) {
	h := newHarness()

	list, err := h.toggler.SetActive(context.Background(), h.req, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.False, list[0].Active)
	assert.Equal(t, 1, h.lister.calls)
	assert.Equal(t, []string{"agent_status_changed"}, h.recorder.events)

	p, _ := h.marker.Processing(context.Background(), "s1")
	assert.Empty(t, p, "marker released")
}

func TestSetVerified(t *testing.T) {
	h := newHarness()

	list, err := h.toggler.SetVerified(context.Background(), h.req, true)
	require.NoError(t, err)
	assert.Equal(t, models.True, list[0].Verified)
	assert.Equal(t, models.Unset, list[0].Active)
}

func TestSetActive_FailureLeavesStateAndSkipsRefetch(t *testing.T) {
	h := newHarness()
	h.writer.err = errors.New("write concern timeout")

	list, err := h.toggler.SetActive(context.Background(), h.req, false)
	assert.Nil(t, list)
	assert.ErrorIs(t, err, apperr.ErrPersistFailure)
	assert.Equal(t, 0, h.lister.calls)
	assert.Empty(t, h.recorder.events)
	assert.Equal(t, models.Unset, h.writer.flags[h.agent][0])

	p, _ := h.marker.Processing(context.Background(), "s1")
	assert.Empty(t, p, "marker released after failure")
}

func TestSetActive_UnknownAgent(t *testing.T) {
	h := newHarness()
	h.req.AgentID = primitive.NewObjectID()

	_, err := h.toggler.SetActive(context.Background(), h.req, true)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, 0, h.lister.calls)
}

func TestSetActive_SecondToggleWhileInFlightIsRejected(t *testing.T) {
	h := newHarness()

	var nested error
	h.writer.during = func() {
		h.writer.during = nil
		_, nested = h.toggler.SetActive(context.Background(), h.req, true)
	}

	_, err := h.toggler.SetActive(context.Background(), h.req, false)
	require.NoError(t, err)
	assert.ErrorIs(t, nested, apperr.ErrToggleInFlight)
	assert.Equal(t, models.False, h.writer.flags[h.agent][0], "only the first change lands")
}

func TestSetActive_OtherSessionNotBlocked(t *testing.T) {
	h := newHarness()

	var nested error
	h.writer.during = func() {
		h.writer.during = nil
		other := h.req
		other.SessionID = "s2"
		_, nested = h.toggler.SetVerified(context.Background(), other, true)
	}

	_, err := h.toggler.SetActive(context.Background(), h.req, false)
	require.NoError(t, err)
	assert.NoError(t, nested)
}

func TestSetActive_Unauthenticated(t *testing.T) {
	h := newHarness()
	h.req.BusinessID = primitive.NilObjectID

	_, err := h.toggler.SetActive(context.Background(), h.req, true)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}
