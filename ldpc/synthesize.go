package ldpc

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrConfig marks an invalid code configuration (bad dimensions, empty
// weight-candidate sets). Synthesis never fails for any other reason:
// heuristic exhaustion degrades to an unconstrained fallback.
var ErrConfig = errors.New("ldpc: invalid code configuration")

// CodeParams fully determines one synthesized code. Equal params (including
// Seed) reproduce a bit-identical matrix.
type CodeParams struct {
	N          int   // codeword length
	K          int   // message length
	ColWeights []int // candidate column weights for information columns
	RowWeights []int // candidate target row weights for parity rows
	Seed       int64
}

func (p CodeParams) check() error {
	if p.N-p.K <= 0 {
		return fmt.Errorf("%w: n=%d k=%d", ErrConfig, p.N, p.K)
	}
	if len(p.ColWeights) == 0 || len(p.RowWeights) == 0 {
		return fmt.Errorf("%w: empty weight candidate set", ErrConfig)
	}
	for _, w := range p.ColWeights {
		if w < 1 {
			return fmt.Errorf("%w: column weight %d", ErrConfig, w)
		}
	}
	for _, w := range p.RowWeights {
		if w < 1 {
			return fmt.Errorf("%w: row weight %d", ErrConfig, w)
		}
	}
	return nil
}

// RowSelector picks the parity-check rows an information column connects to.
// used[i] is true if row i already carries a nonzero from an earlier
// information column. Implementations must draw only from rng so a fixed seed
// reproduces the matrix.
type RowSelector interface {
	SelectRows(rng *rand.Rand, m, w int, used []bool) []int
}

// heuristicSelector is the default policy: up to 100 draws of w distinct
// rows; the first 50 reject any draw touching an already-used row. This
// approximates 4-cycle avoidance, it does not bound girth.
type heuristicSelector struct{}

func (heuristicSelector) SelectRows(rng *rand.Rand, m, w int, used []bool) []int {
	for attempt := 0; attempt < 100; attempt++ {
		pick := rng.Perm(m)[:w]
		if attempt < 50 {
			clash := false
			for _, r := range pick {
				if used[r] {
					clash = true
					break
				}
			}
			if clash {
				continue
			}
		}
		return pick
	}
	return rng.Perm(m)[:w]
}

// Synthesize builds the parity-check matrix for p using the default
// row-selection heuristic.
func Synthesize(p CodeParams) (*ParityCheckMatrix, error) {
	return SynthesizeWith(p, heuristicSelector{})
}

// SynthesizeWith builds the parity-check matrix for p with an explicit
// row-selection policy. The construction runs in a fixed draw order —
// information columns 0..K-1, parity staircase, row balancing 0..M-1,
// zero-row repair, zero-column repair — so the seed alone determines the
// result.
func SynthesizeWith(p CodeParams, sel RowSelector) (*ParityCheckMatrix, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	h, err := NewParityCheckMatrix(p.N, p.K)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(p.Seed))
	m := h.M

	// Information columns.
	used := make([]bool, m)
	for j := 0; j < p.K; j++ {
		w := p.ColWeights[rng.Intn(len(p.ColWeights))]
		if w > m {
			w = m
		}
		for _, i := range sel.SelectRows(rng, m, w, used) {
			h.Set(i, j)
			used[i] = true
		}
	}

	// Parity staircase: H[i][K+i] = 1, H[i-1][K+i] = 1.
	for i := 0; i < m; i++ {
		h.Set(i, p.K+i)
		if i > 0 {
			h.Set(i-1, p.K+i)
		}
	}

	// Row-weight balancing over information columns only.
	for i := 0; i < m; i++ {
		target := p.RowWeights[rng.Intn(len(p.RowWeights))]
		deficit := target - h.RowDegree(i)
		if deficit <= 0 {
			continue
		}
		free := make([]int, 0, p.K)
		for j := 0; j < p.K; j++ {
			if !h.Get(i, j) {
				free = append(free, j)
			}
		}
		for ; deficit > 0 && len(free) > 0; deficit-- {
			idx := rng.Intn(len(free))
			h.Set(i, free[idx])
			free[idx] = free[len(free)-1]
			free = free[:len(free)-1]
		}
	}

	// Degeneracy repair: no row or column may end up empty.
	for i := 0; i < m; i++ {
		if h.RowDegree(i) == 0 {
			h.Set(i, rng.Intn(p.N))
		}
	}
	for j := 0; j < p.N; j++ {
		if h.ColDegree(j) == 0 {
			h.Set(rng.Intn(m), j)
		}
	}
	return h, nil
}
