package record

import "strings"

// Record names which need more than counting.
const (
	Atom   = "ATOM"
	Hetatm = "HETATM"
	Helix  = "HELIX"
	Compnd = "COMPND"
	Remark = "REMARK"
)

const tagWidth = 6

// Tag returns the record name of a line. It is the first six columns
// without trailing blanks, in upper case. REMARK lines with a number in
// columns 8-10, followed by a blank, become "REMARK 350" and so on.
// Anything odd about a REMARK line leaves it as plain "REMARK".
func Tag(line string) string {
	tag := upperASCII(strings.TrimRight(Cut(line, 1, tagWidth), " \t\r"))
	if tag != Remark {
		return tag
	}
	if len(line) <= 10 || line[10] != ' ' {
		return tag
	}
	num := strings.TrimSpace(Cut(line, 8, 10))
	if !allDigits(num) {
		return tag
	}
	return tag + " " + num
}

// KindOf maps a tag from Tag onto the record kinds we know about.
func KindOf(tag string) Kind {
	switch tag {
	case Atom:
		return KindAtom
	case Hetatm:
		return KindHetatm
	case Helix:
		return KindHelix
	case Compnd:
		return KindCompnd
	case Remark + " 290":
		return KindRemark290
	case Remark + " 350":
		return KindRemark350
	}
	return KindOther
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// upperASCII leaves bytes outside a-z alone, so odd bytes in broken
// files come through unchanged.
func upperASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'a' && s[i] <= 'z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'a' && b[j] <= 'z' {
					b[j] -= 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
