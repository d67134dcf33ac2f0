package randomizer

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func shuffled(r Randomizer, values []int) []int {
	out := append([]int(nil), values...)
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func TestShuffleKeepsAllElements(t *testing.T) {
	values := shuffled(New(), []int{1, 2, 3, 4})

	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	require.Equal(t, []int{1, 2, 3, 4}, sorted)
}

func TestShuffleNoopForShortSlices(t *testing.T) {
	require.Equal(t, []int{1}, shuffled(New(), []int{1}))
}

func TestSeededRandomizersAreReproducible(t *testing.T) {
	input := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	a, b := NewSeeded(42), NewSeeded(42)
	for i := 0; i < 5; i++ {
		require.Equal(t, shuffled(a, input), shuffled(b, input))
	}
}

func TestForSeed(t *testing.T) {
	seed := int64(7)
	input := []int{1, 2, 3, 4, 5, 6}
	require.Equal(t, shuffled(NewSeeded(seed), input), shuffled(ForSeed(&seed), input))
	require.NotNil(t, ForSeed(nil))
}
