package simulation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcofed/federation-api/internal/model"
	"github.com/arcofed/federation-api/internal/repository/memory"
)

func newService(users *memory.UserRepository) *Service {
	return NewService(users, zerolog.Nop())
}

func TestStartRoleSimulation(t *testing.T) {
	svc := newService(memory.NewUserRepository())

	state, err := svc.StartRole(context.Background(), "admin-1", model.RoleAthlete)
	require.NoError(t, err)
	assert.Equal(t, model.SimulationModeRole, state.Mode)
	assert.Equal(t, model.RoleAthlete, state.EffectiveRole())

	got := svc.Get("admin-1")
	require.NotNil(t, got)
	assert.Equal(t, model.RoleAthlete, got.EffectiveRole())
}

func TestStartRoleUnknownRole(t *testing.T) {
	svc := newService(memory.NewUserRepository())

	_, err := svc.StartRole(context.Background(), "admin-1", model.Role("wizard"))
	assert.Error(t, err)
	assert.Nil(t, svc.Get("admin-1"))
}

func TestStartUserSimulationTargetFound(t *testing.T) {
	users := memory.NewUserRepository()
	users.Add(&model.User{
		Base:       model.Base{ID: uuid.New()},
		ExternalID: "ATH-042",
		Name:       "Robin Archer",
		Role:       model.RoleAthlete,
	})
	svc := newService(users)

	state, err := svc.StartUser(context.Background(), "admin-1", "ATH-042", model.RoleCoach)
	require.NoError(t, err)
	assert.False(t, state.Degraded)
	require.NotNil(t, state.TargetUser)
	assert.Equal(t, "Robin Archer", state.TargetUser.Name)
	// The target's real role wins over the requested label.
	assert.Equal(t, model.RoleAthlete, state.EffectiveRole())
}

func TestStartUserSimulationDegradedOnMissingTarget(t *testing.T) {
	svc := newService(memory.NewUserRepository())

	state, err := svc.StartUser(context.Background(), "admin-1", "ATH-999", model.RoleCoach)
	require.NoError(t, err)
	assert.True(t, state.Degraded)
	assert.Nil(t, state.TargetUser)
	// Only the requested role label is carried.
	assert.Equal(t, model.RoleCoach, state.EffectiveRole())
}

// failingUserRepository simulates an unreachable identity store.
type failingUserRepository struct{}

func (failingUserRepository) GetByID(context.Context, uuid.UUID) (*model.User, error) {
	return nil, errors.New("connection refused")
}

func (failingUserRepository) GetByExternalID(context.Context, string) (*model.User, error) {
	return nil, errors.New("connection refused")
}

func (failingUserRepository) GetByEmail(context.Context, string) (*model.User, error) {
	return nil, errors.New("connection refused")
}

func TestStartUserSimulationDegradedOnLookupError(t *testing.T) {
	svc := NewService(failingUserRepository{}, zerolog.Nop())

	state, err := svc.StartUser(context.Background(), "admin-1", "ATH-042", model.RoleAthlete)
	require.NoError(t, err)
	assert.True(t, state.Degraded)
	assert.Nil(t, state.TargetUser)
	assert.Equal(t, model.RoleAthlete, state.EffectiveRole())

	// The session is live despite the failed lookup.
	got := svc.Get("admin-1")
	require.NotNil(t, got)
	assert.True(t, got.Degraded)
}

func TestSessionsAreKeyedByAdmin(t *testing.T) {
	svc := newService(memory.NewUserRepository())
	ctx := context.Background()

	_, err := svc.StartRole(ctx, "admin-1", model.RoleAthlete)
	require.NoError(t, err)
	_, err = svc.StartRole(ctx, "admin-2", model.RoleJudge)
	require.NoError(t, err)

	assert.Equal(t, model.RoleAthlete, svc.Get("admin-1").EffectiveRole())
	assert.Equal(t, model.RoleJudge, svc.Get("admin-2").EffectiveRole())
}

func TestNewSessionReplacesOld(t *testing.T) {
	svc := newService(memory.NewUserRepository())
	ctx := context.Background()

	_, err := svc.StartRole(ctx, "admin-1", model.RoleAthlete)
	require.NoError(t, err)
	_, err = svc.StartUser(ctx, "admin-1", "ATH-999", model.RoleCoach)
	require.NoError(t, err)

	got := svc.Get("admin-1")
	require.NotNil(t, got)
	assert.Equal(t, model.SimulationModeUser, got.Mode)
}

func TestClearEndsSession(t *testing.T) {
	svc := newService(memory.NewUserRepository())

	_, err := svc.StartRole(context.Background(), "admin-1", model.RoleAthlete)
	require.NoError(t, err)

	svc.Clear("admin-1")
	assert.Nil(t, svc.Get("admin-1"))

	// Clearing again is a no-op.
	svc.Clear("admin-1")
	assert.Nil(t, svc.Get("admin-1"))
}
