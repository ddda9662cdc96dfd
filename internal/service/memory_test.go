package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsolidationFiresAtThreshold(t *testing.T) {
	fake := &fakeAI{completeText: "gosta de RPG e joga LoL"}
	fake.streams = make([][]string, 10)
	for i := range fake.streams {
		fake.streams[i] = []string{"resposta"}
	}
	svc, store := newService(t, fake)

	for i := 0; i < 4; i++ {
		drain(svc, fmt.Sprintf("msg %d", i), "")
	}
	assert.Zero(t, fake.completeCalls())
	assert.Equal(t, 4, svc.ExchangeCount())

	drain(svc, "quinta mensagem", "")

	// 第 5 轮后恰好一次合并请求，计数器归零
	require.Equal(t, 1, fake.completeCalls())
	assert.Zero(t, svc.ExchangeCount())

	memory, err := store.GetMemory()
	require.NoError(t, err)
	assert.Equal(t, "gosta de RPG e joga LoL", memory)

	// 合并请求携带最近一轮的两行转写
	assert.Contains(t, fake.completes[0], "User: quinta mensagem")
	assert.Contains(t, fake.completes[0], "AI: resposta")

	// 再来 4 轮不会触发
	for i := 0; i < 4; i++ {
		drain(svc, fmt.Sprintf("extra %d", i), "")
	}
	assert.Equal(t, 1, fake.completeCalls())
}

func TestConsolidationUnchangedMemorySkipsWrite(t *testing.T) {
	fake := &fakeAI{completeText: "memória atual"}
	fake.streams = make([][]string, 5)
	for i := range fake.streams {
		fake.streams[i] = []string{"ok"}
	}
	svc, store := newService(t, fake)
	require.NoError(t, store.SaveMemory("memória atual"))

	for i := 0; i < 5; i++ {
		drain(svc, "oi", "")
	}

	require.Equal(t, 1, fake.completeCalls())
	memory, err := store.GetMemory()
	require.NoError(t, err)
	assert.Equal(t, "memória atual", memory)
}

func TestConsolidationFailureKeepsMemory(t *testing.T) {
	fake := &fakeAI{completeErr: assert.AnError}
	fake.streams = make([][]string, 5)
	for i := range fake.streams {
		fake.streams[i] = []string{"ok"}
	}
	svc, store := newService(t, fake)
	require.NoError(t, store.SaveMemory("antiga"))

	for i := 0; i < 5; i++ {
		drain(svc, "oi", "")
	}

	memory, err := store.GetMemory()
	require.NoError(t, err)
	assert.Equal(t, "antiga", memory)
	// 失败也要消耗这一次窗口，计数从零重来
	assert.Zero(t, svc.ExchangeCount())
}

func TestConsolidationTrimsResponse(t *testing.T) {
	fake := &fakeAI{completeText: "  nova memória  \n"}
	fake.streams = make([][]string, 5)
	for i := range fake.streams {
		fake.streams[i] = []string{"ok"}
	}
	svc, store := newService(t, fake)

	for i := 0; i < 5; i++ {
		drain(svc, "oi", "")
	}

	memory, err := store.GetMemory()
	require.NoError(t, err)
	assert.Equal(t, "nova memória", memory)
	assert.False(t, strings.HasPrefix(memory, " "))
}
