package services_test

import (
	"context"
	"testing"

	"blogicum/models"
	"blogicum/services"
	"blogicum/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTest(t)
	svc := services.NewUserService(db)

	user, err := svc.CreateUser(ctx, &models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "wonderland",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "wonderland", user.Password)

	got, err := svc.Authenticate(ctx, "alice", "wonderland")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidLogin)
	_, err = svc.Authenticate(ctx, "nobody", "wonderland")
	assert.ErrorIs(t, err, services.ErrInvalidLogin)

	_, err = svc.CreateUser(ctx, &models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "again!",
	})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
	assert.Contains(t, verr.Fields, "email")
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTest(t)
	svc := services.NewUserService(db)

	alice := testutil.CreateUser(t, db, "alice")
	testutil.CreateUser(t, db, "bob")

	updated, err := svc.UpdateProfile(ctx, alice, &models.ProfileForm{
		FirstName: "Alice",
		LastName:  "Liddell",
		Username:  "alice2",
		Email:     "a2@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
	assert.Equal(t, "Alice Liddell", updated.FullName())
	assert.True(t, updated.CheckPassword(testutil.DefaultPassword), "password untouched")

	_, err = svc.UpdateProfile(ctx, alice, &models.ProfileForm{Username: "bob", Email: "a2@example.com"})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")

	_, err = svc.UpdateProfile(ctx, alice, &models.ProfileForm{Username: "alice2", Email: "a2@example.com"})
	assert.NoError(t, err, "keeping own username is not a conflict")

	_, err = svc.UpdateProfile(ctx, nil, &models.ProfileForm{})
	assert.ErrorIs(t, err, services.ErrPermissionDenied)
}
