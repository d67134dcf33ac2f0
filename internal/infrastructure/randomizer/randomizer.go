package randomizer

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
	"time"
)

type randomizerImpl struct {
	mu  sync.Mutex // Защищает доступ к генератору случайных чисел
	rnd *rand.Rand
}

// New создаёт randomizer с непредсказуемым seed из crypto/rand.
func New() Randomizer {
	return NewSeeded(newSeed())
}

// NewSeeded создаёт детерминированный randomizer: одинаковый seed даёт одинаковую
// последовательность перемешиваний.
func NewSeeded(seed int64) Randomizer {
	return &randomizerImpl{
		rnd: rand.New(rand.NewSource(seed)), // #nosec G404
	}
}

// ForSeed выбирает между NewSeeded и New в зависимости от наличия seed.
func ForSeed(seed *int64) Randomizer {
	if seed == nil {
		return New()
	}
	return NewSeeded(*seed)
}

// Shuffle перемешивает элементы используя Fisher-Yates shuffle алгоритм.
func (r *randomizerImpl) Shuffle(n int, swap func(i, j int)) {
	if n <= 1 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rnd.Shuffle(n, swap)
}

func newSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
