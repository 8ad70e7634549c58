package weighted

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListGetApproximatesWeights(t *testing.T) {
	l := New[string]()
	require.True(t, l.Add(1, "coal"))
	require.True(t, l.Add(3, "iron"))
	require.True(t, l.Add(6, "stone"))

	r := rand.New(rand.NewPCG(1, 2))
	counts := make(map[string]int)
	const draws = 200_000
	for range draws {
		v, ok := l.Get(r)
		require.True(t, ok)
		counts[v]++
	}
	for v, weight := range map[string]float64{"coal": 0.1, "iron": 0.3, "stone": 0.6} {
		got := float64(counts[v]) / draws
		assert.InDelta(t, weight, got, 0.01, "share of %v", v)
	}
}

func TestListRejectsNonPositiveWeights(t *testing.T) {
	l := New[int]()
	assert.False(t, l.Add(0, 1))
	assert.False(t, l.Add(-2, 2))
	assert.False(t, l.Add(math.NaN(), 3))
	assert.False(t, l.Add(math.Inf(1), 4))
	assert.True(t, l.Empty())

	_, ok := l.Get(rand.New(rand.NewPCG(0, 0)))
	assert.False(t, ok)
}

func TestEmptyNeverYields(t *testing.T) {
	l := Empty[string]()
	assert.False(t, l.Add(5, "x"))
	r := rand.New(rand.NewPCG(3, 4))
	for range 1000 {
		v, ok := l.Get(r)
		require.False(t, ok)
		require.Empty(t, v)
	}
	assert.Empty(t, l.Values())
}

func TestSingletonAlwaysYields(t *testing.T) {
	l := Singleton("gold")
	assert.False(t, l.Add(10, "diamond"))
	r := rand.New(rand.NewPCG(5, 6))
	for range 1000 {
		v, ok := l.Get(r)
		require.True(t, ok)
		require.Equal(t, "gold", v)
	}
	assert.Equal(t, []string{"gold"}, l.Values())
}

func TestListDeterministicForSameStream(t *testing.T) {
	l := New[int]()
	for i := 1; i <= 5; i++ {
		l.Add(float64(i), i)
	}
	a, b := rand.New(rand.NewPCG(9, 9)), rand.New(rand.NewPCG(9, 9))
	for range 100 {
		va, _ := l.Get(a)
		vb, _ := l.Get(b)
		require.Equal(t, va, vb)
	}
}

func TestValuesKeepInsertionOrder(t *testing.T) {
	l := New[string]()
	l.Add(2, "b")
	l.Add(1, "a")
	l.Add(3, "c")
	assert.Equal(t, []string{"b", "a", "c"}, l.Values())
	assert.Equal(t, 3, l.Len())
	assert.InDelta(t, 6.0, l.Weight(), 1e-9)
}
