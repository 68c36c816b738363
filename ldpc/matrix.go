package ldpc

import (
	"errors"
	"fmt"
)

// Binary parity-check matrices over GF(2). Rows are stored as uint64 bitsets
// over the N codeword columns; M = N-K parity checks.

type ParityCheckMatrix struct {
	N int // codeword length (columns)
	K int // message length
	M int // parity checks (rows), M = N-K

	words int        // uint64 words per row
	rows  [][]uint64 // M rows, each a bitset over N columns
}

// NewParityCheckMatrix allocates an all-zero MxN matrix.
func NewParityCheckMatrix(n, k int) (*ParityCheckMatrix, error) {
	m := n - k
	if n <= 0 || k <= 0 || m <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions n=%d k=%d", ErrConfig, n, k)
	}
	words := (n + 63) / 64
	rows := make([][]uint64, m)
	for i := range rows {
		rows[i] = make([]uint64, words)
	}
	return &ParityCheckMatrix{N: n, K: k, M: m, words: words, rows: rows}, nil
}

func (h *ParityCheckMatrix) Get(i, j int) bool {
	return h.rows[i][j>>6]&(1<<uint(j&63)) != 0
}

func (h *ParityCheckMatrix) Set(i, j int) {
	h.rows[i][j>>6] |= 1 << uint(j&63)
}

// RowDegree returns the number of nonzero entries in row i.
func (h *ParityCheckMatrix) RowDegree(i int) int {
	d := 0
	for j := 0; j < h.N; j++ {
		if h.Get(i, j) {
			d++
		}
	}
	return d
}

// ColDegree returns the number of nonzero entries in column j.
func (h *ParityCheckMatrix) ColDegree(j int) int {
	d := 0
	for i := 0; i < h.M; i++ {
		if h.Get(i, j) {
			d++
		}
	}
	return d
}

// RowDegrees returns the degree of every row, in row order.
func (h *ParityCheckMatrix) RowDegrees() []int {
	out := make([]int, h.M)
	for i := range out {
		out[i] = h.RowDegree(i)
	}
	return out
}

// ColDegrees returns the degree of every column, in column order.
func (h *ParityCheckMatrix) ColDegrees() []int {
	out := make([]int, h.N)
	for j := range out {
		out[j] = h.ColDegree(j)
	}
	return out
}

// Ones returns the total number of nonzero entries.
func (h *ParityCheckMatrix) Ones() int {
	t := 0
	for i := 0; i < h.M; i++ {
		t += h.RowDegree(i)
	}
	return t
}

// RowIndices returns the 1-indexed columns of row i's nonzeros, ascending.
func (h *ParityCheckMatrix) RowIndices(i int) []int {
	out := make([]int, 0, 8)
	for j := 0; j < h.N; j++ {
		if h.Get(i, j) {
			out = append(out, j+1)
		}
	}
	return out
}

// ColIndices returns the 1-indexed rows of column j's nonzeros, ascending.
func (h *ParityCheckMatrix) ColIndices(j int) []int {
	out := make([]int, 0, 8)
	for i := 0; i < h.M; i++ {
		if h.Get(i, j) {
			out = append(out, i+1)
		}
	}
	return out
}

// Equal reports whether two matrices have identical dimensions and nonzeros.
func (h *ParityCheckMatrix) Equal(o *ParityCheckMatrix) bool {
	if o == nil || h.N != o.N || h.K != o.K || h.M != o.M {
		return false
	}
	for i := range h.rows {
		for w := range h.rows[i] {
			if h.rows[i][w] != o.rows[i][w] {
				return false
			}
		}
	}
	return true
}

// Validate checks the structural invariants every synthesized matrix must
// hold: no zero-degree row or column, and the dual-diagonal staircase on the
// parity submatrix (columns K..N-1) that permits sequential parity
// computation.
func (h *ParityCheckMatrix) Validate() error {
	for i := 0; i < h.M; i++ {
		if h.RowDegree(i) == 0 {
			return fmt.Errorf("row %d has degree 0", i)
		}
	}
	for j := 0; j < h.N; j++ {
		if h.ColDegree(j) == 0 {
			return fmt.Errorf("column %d has degree 0", j)
		}
	}
	for i := 0; i < h.M; i++ {
		if !h.Get(i, h.K+i) {
			return fmt.Errorf("staircase main diagonal missing at row %d", i)
		}
		if i > 0 && !h.Get(i-1, h.K+i) {
			return fmt.Errorf("staircase sub-diagonal missing at row %d", i-1)
		}
	}
	return nil
}

var errNilMatrix = errors.New("nil matrix")
