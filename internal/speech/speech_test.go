package speech

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "multiple sentences",
			in:   "Opa, tudo certo? Bora jogar. GG!",
			want: []string{"Opa, tudo certo?", " Bora jogar.", " GG!"},
		},
		{
			name: "no terminal punctuation",
			in:   "sem pontuação final",
			want: []string{"sem pontuação final"},
		},
		{
			name: "empty",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.in))
		})
	}
}

type recordingSynth struct {
	mu     sync.Mutex
	spoken []string
	failOn string
	done   chan struct{}
	expect int
}

func (r *recordingSynth) Speak(ctx context.Context, text, voiceURI string, rate float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.spoken = append(r.spoken, text)
	if len(r.spoken) == r.expect && r.done != nil {
		close(r.done)
	}

	if text == r.failOn {
		return errors.New("playback error")
	}

	return nil
}

func TestPlayerContinuesPastChunkError(t *testing.T) {
	synth := &recordingSynth{failOn: " Bora jogar.", done: make(chan struct{}), expect: 3}
	player := NewPlayer(synth)

	player.Speak("Opa, tudo certo? Bora jogar. GG!", "", 1.1)

	select {
	case <-synth.done:
	case <-time.After(2 * time.Second):
		t.Fatal("playback did not finish")
	}

	synth.mu.Lock()
	defer synth.mu.Unlock()
	require.Len(t, synth.spoken, 3)
	assert.Equal(t, " GG!", synth.spoken[2])
}

type blockingSynth struct {
	started chan struct{}
	once    sync.Once
}

func (b *blockingSynth) Speak(ctx context.Context, text, voiceURI string, rate float64) error {
	b.once.Do(func() { close(b.started) })
	<-ctx.Done()
	return ctx.Err()
}

func TestPlayerStopCancelsPlayback(t *testing.T) {
	synth := &blockingSynth{started: make(chan struct{})}
	player := NewPlayer(synth)

	player.Speak("Uma frase bem longa. Outra frase.", "", 1.0)

	select {
	case <-synth.started:
	case <-time.After(2 * time.Second):
		t.Fatal("playback never started")
	}

	player.Stop()
	// Stop 之后再次 Stop 是安全的
	player.Stop()
}

func TestNoopRecognizer(t *testing.T) {
	_, err := NoopRecognizer{}.Listen(context.Background())
	assert.ErrorIs(t, err, ErrUnsupported)
}
