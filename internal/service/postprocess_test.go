package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/speech"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/storage"
)

type captureSynth struct {
	mu     sync.Mutex
	spoken []string
}

func (c *captureSynth) Speak(ctx context.Context, text, voiceURI string, rate float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.spoken = append(c.spoken, text)
	return nil
}

func (c *captureSynth) all() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.spoken, "|")
}

func newVoiceService(t *testing.T, fake *fakeAI) (*ChatService, *captureSynth) {
	t.Helper()

	synth := &captureSynth{}
	svc, err := New(storage.NewMemoryStorage(), fake, speech.NewPlayer(synth), Options{
		MemoryThreshold: 5,
		MediaDir:        t.TempDir(),
	})
	require.NoError(t, err)

	return svc, synth
}

func TestVoiceModeSpeaksCleanText(t *testing.T) {
	fake := &fakeAI{streams: [][]string{{"Opa, tudo certo?"}}}
	svc, synth := newVoiceService(t, fake)

	svc.SetVoiceMode(true)
	drain(svc, "oi", "")

	assert.Eventually(t, func() bool {
		return strings.Contains(synth.all(), "Opa, tudo certo?")
	}, 2*time.Second, 10*time.Millisecond)
}

// 有图片指令的回复不播报——按指令本身判定，而不是生成是否成功
func TestVoiceModeSkippedOnImageDirective(t *testing.T) {
	fake := &fakeAI{
		streams: [][]string{{"Boa ideia! [[GENERATE_IMAGE: a robot dragon]]"}},
		image:   "data:image/jpeg;base64,aW1n",
	}
	svc, synth := newVoiceService(t, fake)

	svc.SetVoiceMode(true)
	require.Eventually(t, func() bool {
		return strings.Contains(synth.all(), "Modo voz on")
	}, 2*time.Second, 10*time.Millisecond)

	drain(svc, "desenha", "")

	assert.Never(t, func() bool {
		return strings.Contains(synth.all(), "Boa ideia!")
	}, 300*time.Millisecond, 25*time.Millisecond)
}

func TestVoiceModeOffNothingSpoken(t *testing.T) {
	fake := &fakeAI{streams: [][]string{{"Opa!"}}}
	svc, synth := newVoiceService(t, fake)

	drain(svc, "oi", "")

	assert.Never(t, func() bool {
		return synth.all() != ""
	}, 200*time.Millisecond, 25*time.Millisecond)
}
