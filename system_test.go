package goeq_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goeq "github.com/cpmech/goeq"
	_ "github.com/cpmech/goeq/solver"
)

// linearElement is a minimal element whose local contribution is an affine
// function of its DoFs' current values: local_lhs is the constant stiffness
// k, local_rhs[i] = f[i] + sum_j k[i][j]*dofs[j].Value. For a genuinely
// linear problem this makes the Newton driver converge to the exact
// solution of k*v + f = target in a single correction, which is what the test
// scenarios below exercise.
type linearElement struct {
	dofs []*goeq.Dof
	k    [][]float64
	f    []float64
}

func (e *linearElement) Dofs() []*goeq.Dof { return e.dofs }

func (e *linearElement) Compute(*goeq.Config) ([][]float64, []float64, error) {
	n := len(e.dofs)
	rhs := make([]float64, n)
	for i := 0; i < n; i++ {
		rhs[i] = e.f[i]
		for j := 0; j < n; j++ {
			rhs[i] += e.k[i][j] * e.dofs[j].Value
		}
	}
	return e.k, rhs, nil
}

// alwaysOneElement is the iteration-limit scenario's degenerate element: it
// reports local_lhs = [[1]], local_rhs = [1] no matter what, so the
// residual never moves and the driver can only exit via IterationLimit.
type alwaysOneElement struct {
	dof *goeq.Dof
}

func (e *alwaysOneElement) Dofs() []*goeq.Dof { return []*goeq.Dof{e.dof} }
func (e *alwaysOneElement) Compute(*goeq.Config) ([][]float64, []float64, error) {
	return [][]float64{{1}}, []float64{1}, nil
}

func TestScenario1_OneFreeDofLinearElement(t *testing.T) {
	d := &goeq.Dof{Key: goeq.Key{Owner: "d", Channel: "x"}, Target: 0}
	el := &linearElement{dofs: []*goeq.Dof{d}, k: [][]float64{{2}}, f: []float64{1}}

	sys, err := goeq.New([]goeq.Element{el}, goeq.DefaultConfig())
	require.NoError(t, err)

	reason, err := sys.Solve()
	require.NoError(t, err)
	assert.Equal(t, goeq.ResidualBelowTol, reason)
	assert.InDelta(t, -0.5, d.Delta, 1e-9)
}

func TestScenario2_TwoElementsSharingOneDof(t *testing.T) {
	a := &goeq.Dof{Key: goeq.Key{Owner: "a", Channel: "x"}, Target: 1}
	b := &goeq.Dof{Key: goeq.Key{Owner: "b", Channel: "x"}, Target: 2}

	e1 := &linearElement{dofs: []*goeq.Dof{a, b}, k: [][]float64{{2, -1}, {-1, 2}}, f: []float64{0, 0}}
	e2 := &linearElement{dofs: []*goeq.Dof{b}, k: [][]float64{{1}}, f: []float64{0}}

	sys, err := goeq.New([]goeq.Element{e1, e2}, goeq.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 2, sys.Free())

	reason, err := sys.Solve()
	require.NoError(t, err)
	assert.Equal(t, goeq.ResidualBelowTol, reason)

	residualA, okA := sys.Dof(a.Key)
	residualB, okB := sys.Dof(b.Key)
	require.True(t, okA)
	require.True(t, okB)
	assert.InDelta(t, 0, residualA.Residual, 1e-7)
	assert.InDelta(t, 0, residualB.Residual, 1e-7)
}

func TestScenario3_MixedFreeFixed(t *testing.T) {
	a := &goeq.Dof{Key: goeq.Key{Owner: "a", Channel: "x"}, Target: 1}
	mid := &goeq.Dof{Key: goeq.Key{Owner: "mid", Channel: "x"}, Fixed: true, Value: 5}
	c := &goeq.Dof{Key: goeq.Key{Owner: "c", Channel: "x"}, Target: 1}

	k := [][]float64{
		{2, -1, 0},
		{-1, 2, -1},
		{0, -1, 2},
	}
	el := &linearElement{dofs: []*goeq.Dof{a, mid, c}, k: k, f: []float64{0, 0, 0}}

	sys, err := goeq.New([]goeq.Element{el}, goeq.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 2, sys.Free(), "only a and c are free; mid is fixed and excluded from F")

	_, err = sys.Solve()
	require.NoError(t, err)
}

func TestScenario4_EmptySystem(t *testing.T) {
	sys, err := goeq.New(nil, goeq.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 0, sys.Free())

	reason, err := sys.Solve()
	require.NoError(t, err)
	assert.Equal(t, goeq.ResidualBelowTol, reason, "a zero-length residual has norm 0, which is always below rtol")
}

func TestScenario5_IterationLimit(t *testing.T) {
	d := &goeq.Dof{Key: goeq.Key{Owner: "d", Channel: "x"}, Target: 0}
	el := &alwaysOneElement{dof: d}

	cfg := goeq.DefaultConfig()
	cfg.Rtol = 0
	cfg.Xtol = 0
	cfg.MaxIter = 5

	sys, err := goeq.New([]goeq.Element{el}, cfg)
	require.NoError(t, err)

	reason, err := sys.Solve()
	require.NoError(t, err)
	assert.Equal(t, goeq.IterationLimit, reason)
	assert.InDelta(t, -5.0, d.Delta, 1e-9)
}

// elementSpec is a random element's plain data, independent of any
// particular Dof instantiation, so the same mathematical problem can be
// built twice over two disjoint sets of *Dof objects.
type elementSpec struct {
	i, j     int
	k        [][]float64
	f        []float64
}

func TestScenario6_SerialVsParallelAgreement(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	const nElements = 50
	// nFreeDofs is the size of the DoF pool the two-DoF elements draw from;
	// only the DoFs some element touches (at most 2*nElements = 100) become
	// free DoFs of the System. The others keep zero Delta and Residual.
	const nFreeDofs = 200

	targets := make([]float64, nFreeDofs)
	for i := range targets {
		targets[i] = rng.Float64()
	}

	specs := make([]elementSpec, nElements)
	for e := range specs {
		i, j := rng.Intn(nFreeDofs), rng.Intn(nFreeDofs)
		for j == i {
			j = rng.Intn(nFreeDofs)
		}
		kii := 2 + rng.Float64()
		kjj := 2 + rng.Float64()
		kij := rng.Float64() - 0.5
		specs[e] = elementSpec{
			i: i, j: j,
			k: [][]float64{{kii, kij}, {kij, kjj}},
			f: []float64{rng.Float64(), rng.Float64()},
		}
	}

	build := func() ([]goeq.Element, []*goeq.Dof) {
		dofs := make([]*goeq.Dof, nFreeDofs)
		for i := range dofs {
			dofs[i] = &goeq.Dof{
				Key:    goeq.Key{Owner: "rand", Channel: string(rune('A' + i%26)) + string(rune('0' + i/26))},
				Target: targets[i],
			}
		}
		elements := make([]goeq.Element, nElements)
		for e, sp := range specs {
			elements[e] = &linearElement{dofs: []*goeq.Dof{dofs[sp.i], dofs[sp.j]}, k: sp.k, f: sp.f}
		}
		return elements, dofs
	}

	cfgSerial := goeq.DefaultConfig()
	cfgSerial.MaxIter = 1

	cfgParallel := cfgSerial
	cfgParallel.Parallel = true
	cfgParallel.Workers = 4

	elementsSerial, dofsSerial := build()
	sysSerial, err := goeq.New(elementsSerial, cfgSerial)
	require.NoError(t, err)

	elementsParallel, dofsParallel := build()
	sysParallel, err := goeq.New(elementsParallel, cfgParallel)
	require.NoError(t, err)

	_, err = sysSerial.Solve()
	require.NoError(t, err)
	_, err = sysParallel.Solve()
	require.NoError(t, err)

	for i := range dofsSerial {
		assert.InDelta(t, dofsSerial[i].Residual, dofsParallel[i].Residual, 1e-9)
		assert.InDelta(t, dofsSerial[i].Delta, dofsParallel[i].Delta, 1e-9)
	}
}
