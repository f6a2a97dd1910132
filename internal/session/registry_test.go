package session

import (
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerroom/internal/gameid"
)

func TestRegistryCreateAssignsUnguessableID(t *testing.T) {
	r := NewRegistry(quartz.NewMock(t))

	s1, err := r.Create(testConfig())
	require.NoError(t, err)
	s2, err := r.Create(testConfig())
	require.NoError(t, err)

	assert.NoError(t, gameid.Validate(s1.ID()))
	assert.NoError(t, gameid.Validate(s2.ID()))
	assert.NotEqual(t, s1.ID(), s2.ID())
	assert.Equal(t, 2, r.Len())
}

func TestRegistryCreateValidatesConfig(t *testing.T) {
	r := NewRegistry(quartz.NewMock(t))

	cfg := testConfig()
	cfg.MaxSeats = 1
	_, err := r.Create(cfg)
	assert.Error(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestRegistryGetUnknownID(t *testing.T) {
	r := NewRegistry(quartz.NewMock(t))

	_, err := r.Get("no-such-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistryDelete(t *testing.T) {
	r := NewRegistry(quartz.NewMock(t))
	s, err := r.Create(testConfig())
	require.NoError(t, err)

	r.Delete(s.ID())
	_, err = r.Get(s.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, r.Len())
}

func TestSessionsAreIsolated(t *testing.T) {
	r := NewRegistry(quartz.NewMock(t))
	s1, err := r.Create(testConfig())
	require.NoError(t, err)
	s2, err := r.Create(testConfig())
	require.NoError(t, err)

	require.NoError(t, s1.AddPlayer("p1", "Alice", 1000))
	require.NoError(t, s2.AddPlayer("p2", "Bob", 500))

	snap1, err := r.Snapshot(s1.ID(), "p1")
	require.NoError(t, err)
	snap2, err := r.Snapshot(s2.ID(), "p2")
	require.NoError(t, err)

	require.Len(t, snap1.Players, 1)
	require.Len(t, snap2.Players, 1)
	assert.Equal(t, "p1", snap1.Players[0].ID)
	assert.Equal(t, "p2", snap2.Players[0].ID)
}

func TestRegistrySnapshotUnknownSession(t *testing.T) {
	r := NewRegistry(quartz.NewMock(t))
	_, err := r.Snapshot("missing", "viewer")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
