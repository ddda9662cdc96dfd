package conversation

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/model"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/storage"
)

func newStore(t *testing.T) (*Store, storage.Store) {
	t.Helper()

	persist := storage.NewMemoryStorage()
	store, err := New(persist)
	require.NoError(t, err)

	return store, persist
}

func TestNextIDStrictlyIncreasing(t *testing.T) {
	store, _ := newStore(t)

	prev := store.NextID()
	for i := 0; i < 1000; i++ {
		id := store.NextID()
		require.Greater(t, id, prev)
		prev = id
	}
}

func TestNextIDUniqueUnderConcurrency(t *testing.T) {
	store, _ := newStore(t)

	const workers = 8
	const perWorker = 200

	var mu sync.Mutex
	seen := make(map[int64]bool)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := store.NextID()
				mu.Lock()
				assert.False(t, seen[id])
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}

func TestAppendPersistsSynchronously(t *testing.T) {
	store, persist := newStore(t)

	msg := model.Message{ID: store.NextID(), Sender: model.SenderUser, Text: "oi", Timestamp: time.Now()}
	store.Append(msg)

	history, err := persist.GetHistory()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "oi", history[0].Text)
}

func TestReplaceByID(t *testing.T) {
	store, persist := newStore(t)

	id := store.NextID()
	store.Append(model.Message{ID: id, Sender: model.SenderAI, Text: "Opa", Timestamp: time.Now()})

	ok := store.ReplaceByID(id, func(msg *model.Message) {
		msg.Text = "Opa, tudo certo?"
	})
	assert.True(t, ok)

	messages := store.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "Opa, tudo certo?", messages[0].Text)

	// 落盘快照必须跟上
	history, err := persist.GetHistory()
	require.NoError(t, err)
	assert.Equal(t, "Opa, tudo certo?", history[0].Text)
}

func TestReplaceByIDAbsentIsNoop(t *testing.T) {
	store, _ := newStore(t)

	ok := store.ReplaceByID(42, func(msg *model.Message) {
		msg.Text = "never"
	})

	assert.False(t, ok)
	assert.Zero(t, store.Len())
}

func TestClear(t *testing.T) {
	store, persist := newStore(t)

	store.Append(model.Message{ID: store.NextID(), Sender: model.SenderUser, Text: "a"})
	store.Append(model.Message{ID: store.NextID(), Sender: model.SenderAI, Text: "b"})
	store.Clear()

	assert.Zero(t, store.Len())

	history, err := persist.GetHistory()
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestLoadRebuildsIndex(t *testing.T) {
	persist := storage.NewMemoryStorage()
	require.NoError(t, persist.SaveHistory([]model.Message{
		{ID: 10, Sender: model.SenderUser, Text: "oi"},
		{ID: 11, Sender: model.SenderAI, Text: "Opa"},
	}))

	store, err := New(persist)
	require.NoError(t, err)
	require.NoError(t, store.Load())

	ok := store.ReplaceByID(11, func(msg *model.Message) {
		msg.Text = "Opa!"
	})
	assert.True(t, ok)
	assert.Equal(t, "Opa!", store.Messages()[1].Text)
}
