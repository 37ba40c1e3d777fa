package firebase

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskerpro/models"
)

// Roda contra o emulador do Firestore (FIRESTORE_EMULATOR_HOST).
func TestFirestoreTaskStoreRoundTrip(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST não definida")
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "taskerpro-test")
	require.NoError(t, err)
	defer client.Close()

	store := NewFirestoreTaskStore(client)
	desc := "2 litres"
	require.NoError(t, store.SaveTask(ctx, models.TaskItem{ID: 2, Title: "Walk dog", UserID: "alice"}))
	require.NoError(t, store.SaveTask(ctx, models.TaskItem{ID: 1, Title: "Buy milk", Description: &desc, UserID: "alice"}))
	require.NoError(t, store.SetTaskCompleted(ctx, 2, true))

	tasks, err := store.LoadTasks(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(tasks), 2)
	assert.Equal(t, 1, tasks[0].ID)
	require.NotNil(t, tasks[0].Description)
	assert.Equal(t, "2 litres", *tasks[0].Description)
	assert.True(t, tasks[1].IsCompleted)

	assert.Error(t, store.SetTaskCompleted(ctx, 9999, true))
}
