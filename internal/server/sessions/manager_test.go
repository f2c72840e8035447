package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msavelyev/notedesk/internal/common"
)

func TestCreateAndResolve(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Create("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, err := m.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	// Resolving again without intervening changes keeps working.
	username, err = m.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestResolve_UnknownToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, err := m.Resolve("not-a-token")
	assert.ErrorIs(t, err, common.ErrNoSession)
}

func TestResolve_TamperedToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Create("alice")
	require.NoError(t, err)

	_, err = m.Resolve(token + "x")
	assert.ErrorIs(t, err, common.ErrNoSession)
}

func TestResolve_WrongSecret(t *testing.T) {
	m1 := NewManager("secret-one", time.Hour)
	m2 := NewManager("secret-two", time.Hour)

	token, err := m1.Create("alice")
	require.NoError(t, err)

	_, err = m2.Resolve(token)
	assert.ErrorIs(t, err, common.ErrNoSession)
}

func TestResolve_ExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, err := m.Create("alice")
	require.NoError(t, err)

	_, err = m.Resolve(token)
	assert.ErrorIs(t, err, common.ErrNoSession)
}

func TestDestroy(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Create("alice")
	require.NoError(t, err)

	m.Destroy(token)

	_, err = m.Resolve(token)
	assert.ErrorIs(t, err, common.ErrNoSession)

	// Destroying an already-destroyed session is a no-op.
	m.Destroy(token)
}

func TestSessionsAreIndependent(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	t1, err := m.Create("alice")
	require.NoError(t, err)
	t2, err := m.Create("bob")
	require.NoError(t, err)

	m.Destroy(t1)

	username, err := m.Resolve(t2)
	require.NoError(t, err)
	assert.Equal(t, "bob", username)
}
