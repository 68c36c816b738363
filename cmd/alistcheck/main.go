// alistcheck parses AList files and verifies the structural invariants the
// decode engine relies on: every row and column connected, declared degrees
// matching the connection lists, and the parity staircase.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dvradio/superframe/ldpc"
)

func main() {
	noStaircase := flag.Bool("no-staircase", false, "skip the parity staircase check (foreign matrices)")
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: alistcheck [-no-staircase] file.alist ...")
		os.Exit(2)
	}
	failed := false
	for _, path := range flag.Args() {
		h, err := ldpc.LoadAListFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
			continue
		}
		if *noStaircase {
			err = degreeCheck(h)
		} else {
			err = h.Validate()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
			continue
		}
		maxCol, maxRow := 0, 0
		for _, d := range h.ColDegrees() {
			if d > maxCol {
				maxCol = d
			}
		}
		for _, d := range h.RowDegrees() {
			if d > maxRow {
				maxRow = d
			}
		}
		fmt.Printf("%s: n=%d k=%d m=%d ones=%d max_col=%d max_row=%d\n",
			path, h.N, h.K, h.M, h.Ones(), maxCol, maxRow)
	}
	if failed {
		os.Exit(1)
	}
}

func degreeCheck(h *ldpc.ParityCheckMatrix) error {
	for i, d := range h.RowDegrees() {
		if d == 0 {
			return fmt.Errorf("row %d has degree 0", i)
		}
	}
	for j, d := range h.ColDegrees() {
		if d == 0 {
			return fmt.Errorf("column %d has degree 0", j)
		}
	}
	return nil
}
