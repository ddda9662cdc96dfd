package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/model"
)

func TestLocalCommandsRecognized(t *testing.T) {
	for _, input := range []string{"limpar chat", "CLEAR", "  limpar  ", "Limpar Chat"} {
		t.Run(input, func(t *testing.T) {
			fake := &fakeAI{}
			svc, store := newService(t, fake)

			// 预置一些历史
			svc.AddSystemMessage("Fala!")
			drain(svc, input, "")

			// 清空后只剩确认消息（延迟为 0，同步入队）
			messages := svc.Messages()
			require.Len(t, messages, 1)
			assert.Equal(t, clearAckText, messages[0].Text)
			assert.Equal(t, model.SenderAI, messages[0].Sender)

			// 持久化历史也被清掉再重写
			history, err := store.GetHistory()
			require.NoError(t, err)
			require.Len(t, history, 1)
			assert.Equal(t, clearAckText, history[0].Text)

			// 没碰远端
			assert.Empty(t, fake.replies)
			assert.Zero(t, fake.completeCalls())
		})
	}
}

func TestNonCommandGoesRemote(t *testing.T) {
	fake := &fakeAI{streams: [][]string{{"Limpar o quê? kkk"}}}
	svc, _ := newService(t, fake)

	drain(svc, "limpar tudo", "")

	messages := svc.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "limpar tudo", messages[0].Text)
	assert.Equal(t, "Limpar o quê? kkk", messages[1].Text)
}

func TestClearHistoryFromSettings(t *testing.T) {
	fake := &fakeAI{streams: [][]string{{"Opa"}}}
	svc, _ := newService(t, fake)

	drain(svc, "oi", "")
	ack := svc.ClearHistory()

	messages := svc.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "Histórico apagado.", messages[0].Text)
	assert.Equal(t, ack.ID, messages[0].ID)
}
