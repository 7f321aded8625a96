package level

import (
	"math/rand/v2"
	"time"
)

// RandomSource 闭区间 [lo, hi] 上的均匀随机数来源
type RandomSource interface {
	Range(lo, hi float64) float64
}

type pcgSource struct {
	rng *rand.Rand
}

// NewRandomSource 创建基于 PCG 的随机源
// seed 为 0 时使用当前时间作为种子
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &pcgSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *pcgSource) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}
