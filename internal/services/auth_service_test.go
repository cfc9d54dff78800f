package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/seaward/fleetdash/internal/models"
	"github.com/seaward/fleetdash/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	st, err := store.New(db, true)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestLoginSuccess(t *testing.T) {
	st := openTestStore(t)
	auth, err := NewAuthService(st)
	require.NoError(t, err)
	require.Nil(t, auth.CurrentUser())

	user, err := auth.Login("admin@entnt.in", "admin123")
	require.NoError(t, err)
	require.Equal(t, "1", user.ID)
	require.Equal(t, models.RoleAdmin, user.Role)
	require.Empty(t, user.Password, "the session user never carries a password")

	session, err := st.Session()
	require.NoError(t, err)
	require.NotNil(t, session)
	require.Equal(t, "1", session.User.ID)
	require.Empty(t, session.User.Password)
	require.NotEmpty(t, session.Token)
}

func TestLoginFailureIsGeneric(t *testing.T) {
	st := openTestStore(t)
	auth, err := NewAuthService(st)
	require.NoError(t, err)

	// wrong password and unknown email look identical to the caller
	_, err = auth.Login("admin@entnt.in", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login("nobody@entnt.in", "admin123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.Nil(t, auth.CurrentUser())
	session, err := st.Session()
	require.NoError(t, err)
	require.Nil(t, session, "failed logins leave no session")
}

func TestSessionRestoreRoundTrip(t *testing.T) {
	st := openTestStore(t)
	auth, err := NewAuthService(st)
	require.NoError(t, err)

	_, err = auth.Login("engineer@entnt.in", "engine123")
	require.NoError(t, err)

	// a new service over the same store stands in for a process restart
	restored, err := NewAuthService(st)
	require.NoError(t, err)

	current := restored.CurrentUser()
	require.NotNil(t, current)
	require.Equal(t, "3", current.ID)
	require.Equal(t, models.RoleEngineer, current.Role)
	require.Empty(t, current.Password)
}

func TestLogout(t *testing.T) {
	st := openTestStore(t)
	auth, err := NewAuthService(st)
	require.NoError(t, err)

	_, err = auth.Login("inspector@entnt.in", "inspect123")
	require.NoError(t, err)
	require.NotNil(t, auth.CurrentUser())

	require.NoError(t, auth.Logout())
	require.Nil(t, auth.CurrentUser())

	session, err := st.Session()
	require.NoError(t, err)
	require.Nil(t, session)

	// restart after logout comes up unauthenticated
	restored, err := NewAuthService(st)
	require.NoError(t, err)
	require.Nil(t, restored.CurrentUser())
}
