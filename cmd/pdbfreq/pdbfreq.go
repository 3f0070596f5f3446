// 18 Oct 2026
// Count record types and field values over a set of PDB files.

package main

import (
	"os"

	"github.com/andrew-torda/pdbfreq/pkg/pdbfreq"
)

func main() {
	os.Exit(pdbfreq.Mymain(os.Args[1:]))
}
