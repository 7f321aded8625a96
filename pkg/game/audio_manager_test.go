package game

import (
	"encoding/binary"
	"testing"
	"time"
)

func TestChimePCM(t *testing.T) {
	const sampleRate = 48000
	pcm := chimePCM(sampleRate, 880, 100*time.Millisecond)

	if want := sampleRate / 10 * 4; len(pcm) != want {
		t.Fatalf("PCM length: expected %d bytes, got %d", want, len(pcm))
	}

	// 左右声道相同
	for i := 0; i < len(pcm); i += 4 {
		if binary.LittleEndian.Uint16(pcm[i:]) != binary.LittleEndian.Uint16(pcm[i+2:]) {
			t.Fatalf("sample %d: left and right channels differ", i/4)
		}
	}

	// 首样本为 0，末尾已淡出接近静音
	first := int16(binary.LittleEndian.Uint16(pcm[0:]))
	last := int16(binary.LittleEndian.Uint16(pcm[len(pcm)-4:]))
	if first != 0 {
		t.Errorf("first sample: expected 0, got %d", first)
	}
	if last > 100 || last < -100 {
		t.Errorf("last sample should be faded out, got %d", last)
	}
}

func TestPlayPassChime_Silent(t *testing.T) {
	t.Run("无音频上下文", func(t *testing.T) {
		am := NewAudioManager(nil, nil)
		if am.PlayPassChime() {
			t.Error("PlayPassChime without audio context should not play")
		}
	})

	t.Run("音效已关闭", func(t *testing.T) {
		sm := NewSettingsManager(nil)
		sm.SetSoundEnabled(false)
		am := NewAudioManager(nil, sm)
		if am.PlayPassChime() {
			t.Error("PlayPassChime with sound disabled should not play")
		}
	})
}
