package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/model"
)

func newStores(t *testing.T) map[string]Store {
	t.Helper()

	disk := NewDiskStorage(t.TempDir())
	require.NoError(t, disk.Init())

	return map[string]Store{
		"memory": NewMemoryStorage(),
		"disk":   disk,
	}
}

func TestMissingKeysReturnDefaults(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.GetUser()
			assert.ErrorIs(t, err, ErrNotFound)

			history, err := store.GetHistory()
			require.NoError(t, err)
			assert.Empty(t, history)

			settings, err := store.GetSettings()
			require.NoError(t, err)
			assert.Equal(t, model.DefaultSettings(), settings)
			assert.False(t, settings.AutoSaveMedia)
			assert.Equal(t, 1.1, settings.VoiceRate)

			memory, err := store.GetMemory()
			require.NoError(t, err)
			assert.Equal(t, "", memory)
		})
	}
}

func TestUserRoundTrip(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			user := &model.UserProfile{Name: "Bruno", Photo: model.DefaultAvatar, IsGuest: false}
			require.NoError(t, store.SaveUser(user))

			got, err := store.GetUser()
			require.NoError(t, err)
			assert.Equal(t, user, got)
		})
	}
}

func TestHistoryPersistAndClear(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			messages := []model.Message{
				{ID: 1, Sender: model.SenderUser, Text: "oi", Timestamp: time.Now().Truncate(time.Second)},
				{ID: 2, Sender: model.SenderAI, Text: "Opa, tudo certo?", Timestamp: time.Now().Truncate(time.Second)},
			}
			require.NoError(t, store.SaveHistory(messages))

			got, err := store.GetHistory()
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, int64(1), got[0].ID)
			assert.Equal(t, "Opa, tudo certo?", got[1].Text)

			require.NoError(t, store.ClearHistory())

			got, err = store.GetHistory()
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestMemoryReplacedWholesale(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.SaveMemory("gosta de RPG"))
			require.NoError(t, store.SaveMemory("gosta de RPG e joga LoL"))

			memory, err := store.GetMemory()
			require.NoError(t, err)
			assert.Equal(t, "gosta de RPG e joga LoL", memory)
		})
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			settings := model.UserSettings{AutoSaveMedia: true, VoiceURI: "pt-br-voice", VoiceRate: 1.5}
			require.NoError(t, store.SaveSettings(settings))

			got, err := store.GetSettings()
			require.NoError(t, err)
			assert.Equal(t, settings, got)
		})
	}
}
