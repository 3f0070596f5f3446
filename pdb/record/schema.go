// Package record knows the fixed column layout of old style PDB files.
// It says which record a line belongs to and cuts fields out of it.
// Nothing here fails. A short or broken line gives short or empty
// fields, which is what we want when surveying the files in the wild.
package record

import "sort"

// Kind is the closed set of record types we do something with.
// Everything else is KindOther and is only counted.
type Kind byte

const (
	KindOther Kind = iota
	KindAtom
	KindHetatm
	KindHelix
	KindCompnd
	KindRemark290
	KindRemark350
)

// Field is a named, fixed column range. Start and End count from 1
// and End is included, as in the format documentation.
type Field struct {
	Name       string
	Start, End int
}

// atomFields is shared by ATOM and HETATM.
var atomFields = []Field{
	{"name", 13, 16},
	{"altLoc", 17, 17},
	{"resName", 18, 20},
	{"chainID", 22, 22},
	{"iCode", 27, 27},
	{"element", 77, 78},
	{"charge", 79, 80},
}

var helixFields = []Field{
	{"class", 39, 40},
}

var schema = map[Kind][]Field{
	KindAtom:   sortFields(atomFields),
	KindHetatm: sortFields(atomFields),
	KindHelix:  sortFields(helixFields),
}

func sortFields(f []Field) []Field {
	s := append([]Field(nil), f...)
	sort.Slice(s, func(i, j int) bool { return s[i].Name < s[j].Name })
	return s
}

// Fields returns the fields we extract for a kind of record, sorted by
// name. It is nil for untracked records. The slice is shared, so do
// not write to it.
func Fields(k Kind) []Field { return schema[k] }

// Tracked says if a kind of record has fields to extract.
func Tracked(k Kind) bool { return len(schema[k]) > 0 }
