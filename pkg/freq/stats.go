// Package freq collects record and field statistics from PDB files.
//
// Scan reads one file and returns a FileStats. Aggregate takes the
// FileStats from a set of files and adds one more, called ".ALL", which
// summarises the corpus. Counts in ".ALL" are the maximum seen in any one
// file, not the sum. The number of distinct values of a field in ".ALL"
// is the size of the union over all files.
// There is no package level state, so files can be scanned in parallel.
package freq

import "strings"

// AllName is the name of the aggregate entry. The leading dot puts it
// before the real file names when sorted.
const AllName = ".ALL"

// Derived counters which are not record names.
const (
	KeyMolID       = "COMPND MOL_ID"
	KeyBiomt       = "REMARK 350 BIOMTn"
	KeyBiomolecule = "REMARK 350 BIOMOLECULE"
	KeySmtry       = "REMARK 290 SMTRYn"
)

// Counts maps a record tag or derived key to a number.
type Counts map[string]int

// ValueSet is a set of raw field values.
type ValueSet map[string]struct{}

// FileStats is everything we know about one file.
type FileStats struct {
	Name   string              // base name of the file, labels the report row
	ID     string              // base name without extension, used in the field listing
	Counts Counts              // tags, derived keys and, after Aggregate, field breadths
	Values map[string]ValueSet // distinct values per "<tag> <field>" style key
	Index  Index               // this file's share of the field value index
}

// NewFileStats gives an empty set of statistics.
func NewFileStats(name, id string) *FileStats {
	return &FileStats{
		Name:   name,
		ID:     id,
		Counts: make(Counts),
		Values: make(map[string]ValueSet),
		Index:  make(Index),
	}
}

func (fs *FileStats) addValue(key, value string) {
	vs, ok := fs.Values[key]
	if !ok {
		vs = make(ValueSet)
		fs.Values[key] = vs
	}
	vs[value] = struct{}{}
}

// Merge folds o into fs. Counts take the larger of the two, value sets
// and the index are joined. The operation is commutative and
// associative, so the order files are merged in does not matter.
func (fs *FileStats) Merge(o *FileStats) {
	for k, n := range o.Counts {
		if cur, ok := fs.Counts[k]; !ok || n > cur {
			fs.Counts[k] = n
		}
	}
	for k, vs := range o.Values {
		for v := range vs {
			fs.addValue(k, v)
		}
	}
	fs.Index.Merge(o.Index)
}

// SetBreadth writes the number of distinct values for each value set
// into Counts, so the report can treat them as ordinary columns.
func (fs *FileStats) SetBreadth() {
	for k, vs := range fs.Values {
		fs.Counts[k] = len(vs)
	}
}

// fieldKey is the name of the breadth column for a field.
func fieldKey(tag, field string) string { return tag + " " + field }

// anomalyKey is the name of a counter for an odd element or charge.
func anomalyKey(tag, field, value string) string {
	return tag + " " + field + "_" + strings.TrimSpace(value)
}
