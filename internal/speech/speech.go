// Package speech 定义语音采集与播放的协作方接口，并实现分句播放逻辑。
// 具体引擎（浏览器 TTS、本地 STT）在边界之外；能力缺失按静默 no-op 处理。
package speech

import (
	"context"
	"errors"
	"regexp"
)

var ErrUnsupported = errors.New("speech capability not available")

// Recognizer 采集单句语音，语言固定由实现决定
type Recognizer interface {
	Listen(ctx context.Context) (string, error)
}

// Synthesizer 播放一段文本。Player 负责分句与顺序调度。
type Synthesizer interface {
	Speak(ctx context.Context, text, voiceURI string, rate float64) error
}

type NoopRecognizer struct{}

func (NoopRecognizer) Listen(ctx context.Context) (string, error) {
	return "", ErrUnsupported
}

type NoopSynthesizer struct{}

func (NoopSynthesizer) Speak(ctx context.Context, text, voiceURI string, rate float64) error {
	return nil
}

// 句末标点切分，长文本分块播放防止引擎截断
var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]+|[^.!?]+$`)

func SplitSentences(text string) []string {
	chunks := sentenceRe.FindAllString(text, -1)
	if len(chunks) == 0 && text != "" {
		return []string{text}
	}

	return chunks
}
