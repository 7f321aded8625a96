package game

import (
	"encoding/binary"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// 通过提示音参数
const (
	chimeFrequency = 880.0
	chimeDuration  = 120 * time.Millisecond
)

// AudioManager 音频管理器
// 目前只负责通过管道时的提示音，音量与开关从 SettingsManager 读取
type AudioManager struct {
	context         *audio.Context   // 可为 nil（静音模式）
	settingsManager *SettingsManager // 可为 nil
	chime           *audio.Player
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，为 nil 时所有播放请求都会被忽略
//   - sm: 设置管理器，为 nil 时按默认设置播放
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		context:         ctx,
		settingsManager: sm,
	}
	if ctx != nil {
		am.chime = ctx.NewPlayerFromBytes(chimePCM(ctx.SampleRate(), chimeFrequency, chimeDuration))
		log.Printf("[AudioManager] Chime ready (%d Hz sample rate)", ctx.SampleRate())
	}
	return am
}

// PlayPassChime 播放通过提示音
//
// 返回：
//   - bool: 是否实际播放
func (am *AudioManager) PlayPassChime() bool {
	if am.chime == nil {
		return false
	}
	volume := DefaultSettings().SoundVolume
	if am.settingsManager != nil {
		settings := am.settingsManager.GetSettings()
		if !settings.SoundEnabled {
			return false
		}
		volume = settings.SoundVolume
	}

	am.chime.SetVolume(volume)
	if err := am.chime.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind chime: %v", err)
	}
	am.chime.Play()
	return true
}

// chimePCM 生成 16 位小端立体声正弦波，尾部线性淡出避免爆音
func chimePCM(sampleRate int, frequency float64, duration time.Duration) []byte {
	samples := int(float64(sampleRate) * duration.Seconds())
	buf := make([]byte, samples*4)
	for i := 0; i < samples; i++ {
		envelope := 1 - float64(i)/float64(samples)
		v := math.Sin(2*math.Pi*frequency*float64(i)/float64(sampleRate)) * envelope * 0.5
		s := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], s)
		binary.LittleEndian.PutUint16(buf[i*4+2:], s)
	}
	return buf
}
