package speech

import (
	"context"
	"sync"

	"github.com/weslleynogueiralucas-prog/parceiro-backend/pkg/logger"
)

// Player 顺序播放分句后的文本块：某一块播放出错时继续下一块，
// 新的 Speak 或 Stop 会立刻取消当前播放。
type Player struct {
	synth Synthesizer

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewPlayer(synth Synthesizer) *Player {
	if synth == nil {
		synth = NoopSynthesizer{}
	}

	return &Player{synth: synth}
}

func (p *Player) Speak(text, voiceURI string, rate float64) {
	p.Stop()

	ctx, cancel := context.WithCancel(context.Background())

	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()

	chunks := SplitSentences(text)

	go func() {
		defer cancel()

		for _, chunk := range chunks {
			if ctx.Err() != nil {
				return
			}

			if err := p.synth.Speak(ctx, chunk, voiceURI, rate); err != nil {
				// 单块失败不阻断后续播放
				logger.Debugf("Speech chunk failed: %v", err)
			}
		}
	}()
}

// Stop 同步取消当前播放
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}
