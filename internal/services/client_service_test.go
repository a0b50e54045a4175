package services

import (
	"context"
	"testing"

	"github.com/franciscosanchezn/gin-recipe-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientService(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	owner := testutil.CreateUser(t, db, "admin@example.com")
	svc := NewClientService(db)

	client, secret, err := svc.CreateClient(ctx, owner.ID, ClientRequest{Name: "Importer"})
	require.NoError(t, err)
	assert.NotEmpty(t, secret)
	assert.NotEqual(t, secret, client.Secret, "only the hash is stored")
	assert.Equal(t, GrantClientCredentials, client.GrantTypes)

	stored, err := svc.GetClientByID(ctx, client.ID)
	require.NoError(t, err)
	assert.True(t, stored.VerifyPassword(secret))
	assert.False(t, stored.VerifyPassword("wrong"))

	clients, err := svc.GetClientsByUserID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, clients, 1)

	assert.ErrorIs(t, svc.DeleteClient(ctx, client.ID, owner.ID+1), ErrNotFound)
	require.NoError(t, svc.DeleteClient(ctx, client.ID, owner.ID))
	_, err = svc.GetClientByID(ctx, client.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateClientValidation(t *testing.T) {
	svc := NewClientService(testutil.NewTestDB(t))

	var validationErr *ValidationError
	_, _, err := svc.CreateClient(context.Background(), 1, ClientRequest{Name: " "})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "name", validationErr.Field)

	_, _, err = svc.CreateClient(context.Background(), 1, ClientRequest{Name: "x", GrantTypes: "implicit"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "grant_types", validationErr.Field)
}

func TestEnsurePublicClient(t *testing.T) {
	ctx := context.Background()
	svc := NewClientService(testutil.NewTestDB(t))

	client, err := svc.EnsurePublicClient(ctx, "recipe-web", "Recipe Web")
	require.NoError(t, err)
	assert.True(t, client.IsPublic())
	assert.True(t, client.VerifyPassword(""))

	again, err := svc.EnsurePublicClient(ctx, "recipe-web", "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "Recipe Web", again.Name, "existing client is kept")
}
