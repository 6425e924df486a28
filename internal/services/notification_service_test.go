package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sajibdev/chirpnet/backend/internal/models"
)

func TestListHydratesActorsAndMarksRead(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice, err := env.signup(ctx, "alice")
	require.NoError(t, err)
	bob, err := env.signup(ctx, "bob")
	require.NoError(t, err)

	_, err = env.userService.ToggleFollow(ctx, alice, bob.ID)
	require.NoError(t, err)
	post, err := env.postService.CreatePost(ctx, bob, "hello", "")
	require.NoError(t, err)
	actor, _ := env.users.GetByID(ctx, alice.ID)
	_, err = env.postService.ToggleLike(ctx, actor, post.ID)
	require.NoError(t, err)

	bobActor, _ := env.users.GetByID(ctx, bob.ID)
	views, err := env.notifService.List(ctx, bobActor)
	require.NoError(t, err)
	require.Len(t, views, 2)
	for _, view := range views {
		assert.Equal(t, alice.ID, view.From.ID)
		assert.Equal(t, "alice", view.From.Username)
	}

	types := []string{views[0].Type, views[1].Type}
	assert.Contains(t, types, models.NotificationTypeFollow)
	assert.Contains(t, types, models.NotificationTypeLike)

	// Listing marks everything read for the next fetch.
	stored, err := env.notifs.GetByRecipient(bob.ID.Hex())
	require.NoError(t, err)
	for _, n := range stored {
		assert.True(t, n.Read)
	}
}

func TestDeleteAllRemovesOnlyOwnNotifications(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice, err := env.signup(ctx, "alice")
	require.NoError(t, err)
	bob, err := env.signup(ctx, "bob")
	require.NoError(t, err)

	// Each follows the other, so each holds one notification.
	_, err = env.userService.ToggleFollow(ctx, alice, bob.ID)
	require.NoError(t, err)
	bobActor, _ := env.users.GetByID(ctx, bob.ID)
	_, err = env.userService.ToggleFollow(ctx, bobActor, alice.ID)
	require.NoError(t, err)

	require.NoError(t, env.notifService.DeleteAll(ctx, bobActor))

	bobStored, err := env.notifs.GetByRecipient(bob.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, bobStored)

	aliceStored, err := env.notifs.GetByRecipient(alice.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, aliceStored, 1)
}
