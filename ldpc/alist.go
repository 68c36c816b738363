package ldpc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// AList text codec. The belief-propagation engine that consumes persisted
// matrices parses exactly this layout, so the writer emits single-space
// separated tokens, one record per line, in this fixed order:
//
//	n m
//	max_col_degree max_row_degree
//	col_degree[0] .. col_degree[n-1]
//	row_degree[0] .. row_degree[m-1]
//	n lines: 1-indexed row numbers of each column's nonzeros
//	m lines: 1-indexed column numbers of each row's nonzeros

// ErrFormat marks a malformed AList document. Parse never returns a partial
// matrix alongside it.
var ErrFormat = errors.New("alist: malformed document")

// WriteAList serializes h to w in AList format.
func WriteAList(w io.Writer, h *ParityCheckMatrix) error {
	if h == nil {
		return errNilMatrix
	}
	colDeg := h.ColDegrees()
	rowDeg := h.RowDegrees()
	maxCol, maxRow := 0, 0
	for _, d := range colDeg {
		if d > maxCol {
			maxCol = d
		}
	}
	for _, d := range rowDeg {
		if d > maxRow {
			maxRow = d
		}
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n%d %d\n", h.N, h.M, maxCol, maxRow); err != nil {
		return err
	}
	if err := writeInts(bw, colDeg); err != nil {
		return err
	}
	if err := writeInts(bw, rowDeg); err != nil {
		return err
	}
	for j := 0; j < h.N; j++ {
		if err := writeInts(bw, h.ColIndices(j)); err != nil {
			return err
		}
	}
	for i := 0; i < h.M; i++ {
		if err := writeInts(bw, h.RowIndices(i)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeInts(w io.Writer, vals []int) error {
	var sb strings.Builder
	for i, v := range vals {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

// ParseAList is the strict inverse of WriteAList. Any header, line-count, or
// declared-versus-actual degree mismatch fails with ErrFormat.
func ParseAList(r io.Reader) (*ParityCheckMatrix, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: missing header", ErrFormat)
	}
	n, m, err := parsePair(lines[0])
	if err != nil {
		return nil, fmt.Errorf("%w: dimension header %q", ErrFormat, lines[0])
	}
	maxCol, maxRow, err := parsePair(lines[1])
	if err != nil {
		return nil, fmt.Errorf("%w: degree header %q", ErrFormat, lines[1])
	}
	if n <= 0 || m <= 0 || m >= n {
		return nil, fmt.Errorf("%w: dimensions n=%d m=%d", ErrFormat, n, m)
	}
	want := 4 + n + m
	if len(lines) < want {
		return nil, fmt.Errorf("%w: %d lines, need %d", ErrFormat, len(lines), want)
	}
	for _, extra := range lines[want:] {
		if strings.TrimSpace(extra) != "" {
			return nil, fmt.Errorf("%w: trailing content", ErrFormat)
		}
	}
	colDeg, err := parseIntLine(lines[2], n)
	if err != nil {
		return nil, fmt.Errorf("%w: column degree sequence: %v", ErrFormat, err)
	}
	rowDeg, err := parseIntLine(lines[3], m)
	if err != nil {
		return nil, fmt.Errorf("%w: row degree sequence: %v", ErrFormat, err)
	}
	for _, d := range colDeg {
		if d < 0 || d > maxCol {
			return nil, fmt.Errorf("%w: column degree %d exceeds declared max %d", ErrFormat, d, maxCol)
		}
	}
	for _, d := range rowDeg {
		if d < 0 || d > maxRow {
			return nil, fmt.Errorf("%w: row degree %d exceeds declared max %d", ErrFormat, d, maxRow)
		}
	}

	h, err := NewParityCheckMatrix(n, n-m)
	if err != nil {
		return nil, fmt.Errorf("%w: dimensions n=%d m=%d", ErrFormat, n, m)
	}
	// Column connection lists populate the matrix.
	for j := 0; j < n; j++ {
		idx, err := parseIntLine(lines[4+j], colDeg[j])
		if err != nil {
			return nil, fmt.Errorf("%w: column %d list: %v", ErrFormat, j, err)
		}
		seen := make(map[int]bool, len(idx))
		for _, ri := range idx {
			if ri < 1 || ri > m {
				return nil, fmt.Errorf("%w: column %d references row %d", ErrFormat, j, ri)
			}
			if seen[ri] {
				return nil, fmt.Errorf("%w: column %d lists row %d twice", ErrFormat, j, ri)
			}
			seen[ri] = true
			h.Set(ri-1, j)
		}
	}
	// Row connection lists must agree with the columns exactly.
	for i := 0; i < m; i++ {
		idx, err := parseIntLine(lines[4+n+i], rowDeg[i])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d list: %v", ErrFormat, i, err)
		}
		seen := make(map[int]bool, len(idx))
		for _, cj := range idx {
			if cj < 1 || cj > n {
				return nil, fmt.Errorf("%w: row %d references column %d", ErrFormat, i, cj)
			}
			if !h.Get(i, cj-1) {
				return nil, fmt.Errorf("%w: row %d lists column %d absent from column lists", ErrFormat, i, cj)
			}
			seen[cj] = true
		}
		if h.RowDegree(i) != len(seen) {
			return nil, fmt.Errorf("%w: row %d degree %d disagrees with column lists", ErrFormat, i, h.RowDegree(i))
		}
	}
	return h, nil
}

func parsePair(line string) (int, int, error) {
	fs := strings.Fields(line)
	if len(fs) != 2 {
		return 0, 0, fmt.Errorf("expected 2 tokens, got %d", len(fs))
	}
	a, err := strconv.Atoi(fs[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(fs[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func parseIntLine(line string, want int) ([]int, error) {
	fs := strings.Fields(line)
	if len(fs) != want {
		return nil, fmt.Errorf("expected %d tokens, got %d", want, len(fs))
	}
	out := make([]int, len(fs))
	for i, f := range fs {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// SaveAListFile writes h to path.
func SaveAListFile(path string, h *ParityCheckMatrix) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteAList(f, h); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadAListFile reads a matrix saved by SaveAListFile.
func LoadAListFile(path string) (*ParityCheckMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseAList(f)
}
