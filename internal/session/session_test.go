package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/lecturedesk/internal/model"
)

func waitResolved(t *testing.T, sess *Session) {
	t.Helper()
	select {
	case <-sess.Resolved():
	case <-time.After(2 * time.Second):
		t.Fatal("location was not resolved in time")
	}
}

func TestOpenStartsRequesting(t *testing.T) {
	reg := NewRegistry(NewResolver(DefaultOptions()))
	sess := reg.Open(1)

	assert.Equal(t, StatusRequesting, sess.Status())
	assert.True(t, sess.Options.HighAccuracy)
	assert.Equal(t, 10*time.Second, sess.Options.Timeout)
	_, ok := sess.Location()
	assert.False(t, ok)
	assert.True(t, sess.Menu.Hidden())
}

func TestReportResolvesLocation(t *testing.T) {
	reg := NewRegistry(NewResolver(DefaultOptions()))
	sess := reg.Open(1)

	require.NoError(t, sess.Locator().Report(model.Location{Lat: 12.9716, Lng: 77.5946}, nil))
	waitResolved(t, sess)

	loc, ok := sess.Location()
	require.True(t, ok)
	assert.Equal(t, model.Location{Lat: 12.9716, Lng: 77.5946}, loc)
	assert.Equal(t, "Location: 12.971600, 77.594600", sess.Status())

	err := sess.Locator().Report(model.Location{Lat: 1, Lng: 1}, nil)
	assert.ErrorIs(t, err, ErrAlreadyReported, "second report is ignored")
	loc, _ = sess.Location()
	assert.Equal(t, 12.9716, loc.Lat)
}

func TestUnsupportedReport(t *testing.T) {
	reg := NewRegistry(NewResolver(DefaultOptions()))
	sess := reg.Open(1)

	require.NoError(t, sess.Locator().Report(model.Location{}, ErrUnsupported))
	waitResolved(t, sess)

	assert.Equal(t, StatusUnsupported, sess.Status())
	_, ok := sess.Location()
	assert.False(t, ok)
}

func TestDeniedReport(t *testing.T) {
	reg := NewRegistry(NewResolver(DefaultOptions()))
	sess := reg.Open(1)

	require.NoError(t, sess.Locator().Report(model.Location{}, errors.New("User denied Geolocation")))
	waitResolved(t, sess)
	assert.Equal(t, StatusFailed, sess.Status())
}

func TestTimeoutLeavesLocationUnset(t *testing.T) {
	reg := NewRegistry(NewResolver(Options{HighAccuracy: true, Timeout: 20 * time.Millisecond}))
	sess := reg.Open(1)

	waitResolved(t, sess)
	assert.Equal(t, StatusFailed, sess.Status())
	_, ok := sess.Location()
	assert.False(t, ok)
}

func TestReportAfterTimeoutIsRejected(t *testing.T) {
	reg := NewRegistry(NewResolver(Options{HighAccuracy: true, Timeout: 20 * time.Millisecond}))
	sess := reg.Open(1)
	waitResolved(t, sess)

	for i := 0; i < 2; i++ {
		err := sess.Locator().Report(model.Location{Lat: 12.9716, Lng: 77.5946}, nil)
		assert.ErrorIs(t, err, ErrTimeout, "late report %d", i+1)
	}
	assert.Equal(t, StatusFailed, sess.Status())
	_, ok := sess.Location()
	assert.False(t, ok)
}

func TestReportBeforeDeadlineWins(t *testing.T) {
	loc := NewReportedLocator()
	require.NoError(t, loc.Report(model.Location{Lat: 1, Lng: 2}, nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := loc.CurrentPosition(ctx, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, model.Location{Lat: 1, Lng: 2}, got)
}

func TestFailureLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, failureLevel(ErrUnsupported))
	assert.Equal(t, zerolog.ErrorLevel, failureLevel(ErrTimeout))
	assert.Equal(t, zerolog.ErrorLevel, failureLevel(errors.New("User denied Geolocation")))
}

func TestReportedLocatorHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewReportedLocator().CurrentPosition(ctx, DefaultOptions())
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestGetIsScopedToDoctor(t *testing.T) {
	reg := NewRegistry(NewResolver(DefaultOptions()))
	sess := reg.Open(1)

	got, err := reg.Get(sess.ID, 1)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	_, err = reg.Get(sess.ID, 2)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = reg.Get("missing", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCloseDoctor(t *testing.T) {
	reg := NewRegistry(NewResolver(DefaultOptions()))
	reg.Open(1)
	reg.Open(1)
	keep := reg.Open(2)

	assert.Equal(t, 2, reg.CloseDoctor(1))
	assert.Equal(t, 1, reg.Len())
	_, err := reg.Get(keep.ID, 2)
	assert.NoError(t, err)
}

func TestSweepDropsIdleSessions(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	reg := NewRegistry(NewResolver(DefaultOptions()))
	reg.now = func() time.Time { return now }

	stale := reg.Open(1)
	now = now.Add(20 * time.Minute)
	fresh := reg.Open(1)
	now = now.Add(15 * time.Minute)

	assert.Equal(t, 1, reg.Sweep(30*time.Minute))
	_, err := reg.Get(stale.ID, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = reg.Get(fresh.ID, 1)
	assert.NoError(t, err)
}
