package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/resource-hub/internal/model"
)

func TestRegister(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	event := createEvent(t, repos, "Summit", "Cloud", testEventDate)

	reg, err := repos.Registrations.Register(ctx, event.ID, model.RegisterRequest{UserName: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)
	assert.Equal(t, event.ID, reg.EventID)
	assert.Equal(t, "Summit", reg.EventTitle)
	assert.Equal(t, model.RegistrationRegistered, reg.Status)
	assert.Nil(t, reg.UserID)
	require.NotNil(t, reg.Email)
	assert.Equal(t, "ann@example.com", *reg.Email)

	byUser, err := repos.Registrations.Register(ctx, event.ID, model.RegisterRequest{UserID: ptr(int64(7))})
	require.NoError(t, err)
	require.NotNil(t, byUser.UserID)
	assert.Equal(t, int64(7), *byUser.UserID)
	assert.Nil(t, byUser.Email)
}

func TestRegister_Duplicates(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	event := createEvent(t, repos, "Summit", "Cloud", testEventDate)

	_, err := repos.Registrations.Register(ctx, event.ID, model.RegisterRequest{UserName: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)
	_, err = repos.Registrations.Register(ctx, event.ID, model.RegisterRequest{UserName: "Ann B", Email: "ann@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateRegistration)

	_, err = repos.Registrations.Register(ctx, event.ID, model.RegisterRequest{UserID: ptr(int64(7))})
	require.NoError(t, err)
	_, err = repos.Registrations.Register(ctx, event.ID, model.RegisterRequest{UserID: ptr(int64(7))})
	assert.ErrorIs(t, err, ErrDuplicateRegistration)

	// The same person may register for a different event.
	other := createEvent(t, repos, "Expo", "Cloud", testEventDate)
	_, err = repos.Registrations.Register(ctx, other.ID, model.RegisterRequest{UserName: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)
}

func TestRegister_MissingEvent(t *testing.T) {
	repos := setupTestDB(t)

	_, err := repos.Registrations.Register(context.Background(), 9999, model.RegisterRequest{UserName: "Ann", Email: "ann@example.com"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByEvent_OldestFirst(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	event := createEvent(t, repos, "Summit", "Cloud", testEventDate)
	other := createEvent(t, repos, "Other", "Cloud", testEventDate)

	first, err := repos.Registrations.Register(ctx, event.ID, model.RegisterRequest{UserName: "A", Email: "a@example.com"})
	require.NoError(t, err)
	second, err := repos.Registrations.Register(ctx, event.ID, model.RegisterRequest{UserName: "B", Email: "b@example.com"})
	require.NoError(t, err)
	_, err = repos.Registrations.Register(ctx, other.ID, model.RegisterRequest{UserName: "C", Email: "c@example.com"})
	require.NoError(t, err)

	regs, err := repos.Registrations.ListByEvent(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, regs, 2)
	assert.Equal(t, first.ID, regs[0].ID)
	assert.Equal(t, second.ID, regs[1].ID)
}
