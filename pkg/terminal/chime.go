package terminal

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	chimeSampleRate = beep.SampleRate(44100)
	chimeFrequency  = 880
	chimeDuration   = 60 * time.Millisecond
)

// Chime 通过管道时的提示音
type Chime interface {
	Play()
	Close()
}

// nopChime 没有音频设备时使用
type nopChime struct{}

func (nopChime) Play()  {}
func (nopChime) Close() {}

type speakerChime struct{}

// NewSpeakerChime 初始化扬声器
// 失败时记录日志并返回静音实现，没有声音不影响运行
func NewSpeakerChime() Chime {
	if err := speaker.Init(chimeSampleRate, chimeSampleRate.N(time.Second/10)); err != nil {
		log.Printf("[Terminal] Audio initialization failed: %v", err)
		return nopChime{}
	}
	return speakerChime{}
}

func (speakerChime) Play() {
	sine, err := generators.SineTone(chimeSampleRate, chimeFrequency)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(chimeSampleRate.N(chimeDuration), sine))
}

func (speakerChime) Close() {
	speaker.Close()
}
