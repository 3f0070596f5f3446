package record

// ResClass says what sort of residue name we have.
type ResClass byte

const (
	ResUnknown ResClass = iota
	ResAmino
	ResNucleic
)

var aminoNames = map[string]bool{
	"ALA": true, "ARG": true, "ASN": true, "ASP": true, "CYS": true,
	"GLY": true, "GLU": true, "GLN": true, "HIS": true, "ILE": true,
	"LEU": true, "LYS": true, "MET": true, "PHE": true, "PRO": true,
	"SEC": true, "SER": true, "THR": true, "TRP": true, "TYR": true,
	"VAL": true,
}

// Nucleic acid names are right justified in the three resName columns.
// Old files used I, T and U with a "+" for modified bases.
var nucleicNames = map[string]bool{
	"  A": true, "  C": true, "  G": true, "  I": true, "  T": true, "  U": true,
	" DA": true, " DC": true, " DG": true, " DI": true, " DT": true, " DU": true,
	" +A": true, " +C": true, " +G": true, " +I": true, " +T": true, " +U": true,
}

// ClassifyRes looks up a raw, untrimmed resName field.
func ClassifyRes(resName string) ResClass {
	switch {
	case nucleicNames[resName]:
		return ResNucleic
	case aminoNames[resName]:
		return ResAmino
	}
	return ResUnknown
}

// String gives the suffix used for derived statistics.
func (c ResClass) String() string {
	switch c {
	case ResAmino:
		return "AMINO"
	case ResNucleic:
		return "NUCLEIC"
	}
	return "OTHER"
}

// commonElements are the only element symbols not reported as unusual.
var commonElements = map[string]bool{"C": true, "N": true, "O": true}

// CommonElement takes a trimmed element symbol.
func CommonElement(el string) bool { return commonElements[el] }
