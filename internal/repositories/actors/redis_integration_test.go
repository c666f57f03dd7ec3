//go:build integration
// +build integration

package actors_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/dnd-rules-engine/internal/repositories/actors"
	"github.com/KirkDiggler/dnd-rules-engine/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRepository_Integration(t *testing.T) {
	client := testutils.CreateRedisContainer(t)

	repo := actors.NewRedisRepository(&actors.RedisRepoConfig{
		Client: client,
	})

	ctx := context.Background()

	t.Run("save and retrieve actor", func(t *testing.T) {
		actor := testutils.CreateTestActor("itest-actor-1", "Grunk")
		data := actors.Snapshot(actor, "itest-encounter")

		require.NoError(t, repo.Save(ctx, data))

		retrieved, err := repo.Get(ctx, "itest-actor-1")
		require.NoError(t, err)
		assert.Equal(t, data.Name, retrieved.Name)
		assert.Equal(t, data.Abilities, retrieved.Abilities)
		assert.Equal(t, data.ProficiencyBonus, retrieved.ProficiencyBonus)
	})

	t.Run("scope index and batch fetch", func(t *testing.T) {
		for _, id := range []string{"itest-actor-2", "itest-actor-3"} {
			data := actors.Snapshot(testutils.CreateTestActor(id, id), "itest-party")
			require.NoError(t, repo.Save(ctx, data))
		}

		ids, err := repo.ListScope(ctx, "itest-party")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"itest-actor-2", "itest-actor-3"}, ids)

		batch, err := repo.GetBatch(ctx, ids)
		require.NoError(t, err)
		assert.Len(t, batch, 2)
	})

	t.Run("delete removes snapshot and index entry", func(t *testing.T) {
		data := actors.Snapshot(testutils.CreateTestActor("itest-actor-4", "Mira"), "itest-solo")
		require.NoError(t, repo.Save(ctx, data))

		require.NoError(t, repo.Delete(ctx, "itest-actor-4"))

		_, err := repo.Get(ctx, "itest-actor-4")
		assert.Error(t, err)

		ids, err := repo.ListScope(ctx, "itest-solo")
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}
