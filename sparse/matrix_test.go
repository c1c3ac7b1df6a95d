package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cpmech/goeq/sparse"
)

func diagPattern(n int) *sparse.Pattern {
	var tables [][]sparse.Entry
	for i := 0; i < n; i++ {
		tables = append(tables, []sparse.Entry{{Local: 0, Global: i}})
	}
	return sparse.Analyze(tables, n)
}

func TestMatrix_ZeroIsIdempotent(t *testing.T) {
	p := diagPattern(3)
	m := p.NewMatrix()
	m.Add(p.Position(0, 0), 5)
	m.Zero()
	m.Zero()
	for _, v := range m.Vals {
		assert.Zero(t, v)
	}
}

func TestMatrix_ForkJoin(t *testing.T) {
	tables := [][]sparse.Entry{
		{{Local: 0, Global: 0}, {Local: 1, Global: 1}},
	}
	p := sparse.Analyze(tables, 2)
	m := p.NewMatrix()
	a := m.Fork()
	b := m.Fork()
	a.Add(p.Position(0, 0), 1)
	a.Add(p.Position(0, 1), 2)
	b.Add(p.Position(0, 0), 10)
	b.Add(p.Position(1, 1), 3)

	m.Join(a)
	m.Join(b)

	dense := m.ToDense()
	assert.Equal(t, 11.0, dense[0][0])
	assert.Equal(t, 2.0, dense[0][1])
	assert.Equal(t, 2.0, dense[1][0], "symmetric mirror")
	assert.Equal(t, 3.0, dense[1][1])
}

func TestMatrix_MulVecSymmetric(t *testing.T) {
	tables := [][]sparse.Entry{
		{{Local: 0, Global: 0}, {Local: 1, Global: 1}},
	}
	p := sparse.Analyze(tables, 2)
	m := p.NewMatrix()
	m.Add(p.Position(0, 0), 2)
	m.Add(p.Position(0, 1), 1)
	m.Add(p.Position(1, 1), 3)
	// A = [[2,1],[1,3]]
	x := []float64{1, 1}
	y := make([]float64, 2)
	m.MulVec(x, y)
	assert.Equal(t, 3.0, y[0])
	assert.Equal(t, 4.0, y[1])
}

func TestMatrix_ToSymDenseRoundTrips(t *testing.T) {
	tables := [][]sparse.Entry{
		{{Local: 0, Global: 0}, {Local: 1, Global: 1}},
	}
	p := sparse.Analyze(tables, 2)
	m := p.NewMatrix()
	m.Add(p.Position(0, 0), 4)
	m.Add(p.Position(0, 1), 1)
	m.Add(p.Position(1, 1), 5)
	d := m.ToSymDense()
	assert.Equal(t, 4.0, d.At(0, 0))
	assert.Equal(t, 1.0, d.At(0, 1))
	assert.Equal(t, 1.0, d.At(1, 0))
	assert.Equal(t, 5.0, d.At(1, 1))
}
