package freq

import (
	"regexp"
	"strings"

	"github.com/andrew-torda/pdbfreq/pdb/record"
)

// A rule does the extra work for one kind of record, after the tag
// has been counted.
type rule func(fs *FileStats, tag, line string)

var rules = map[record.Kind]rule{
	record.KindAtom:      atomRule,
	record.KindHetatm:    hetatmRule,
	record.KindHelix:     helixRule,
	record.KindCompnd:    compndRule,
	record.KindRemark290: remark290Rule,
	record.KindRemark350: remark350Rule,
}

var (
	molIDRe  = regexp.MustCompile(`^\s*MOL_ID: `)
	biomtRe  = regexp.MustCompile(`^\s*BIOMT\d `)
	biomolRe = regexp.MustCompile(`^\s*BIOMOLECULE:`)
	smtryRe  = regexp.MustCompile(`^\s*SMTRY\d `)
)

const (
	compndCol = 11 // COMPND text starts here
	remarkCol = 12 // and REMARK text here
)

// fields cuts out every field of the record, notes the raw value in the
// index and the value sets, then hands it to each, if not nil.
func fields(fs *FileStats, k record.Kind, tag, line string, each func(field, value string)) {
	for _, f := range record.Fields(k) {
		value := record.Extract(line, f)
		fs.Index.Add(tag, f.Name, value, fs.ID)
		fs.addValue(fieldKey(tag, f.Name), value)
		if each != nil {
			each(f.Name, value)
		}
	}
}

// oddAtom counts unusual element symbols and any charge at all.
func oddAtom(fs *FileStats, tag, field, value string) {
	switch field {
	case "element":
		if !record.CommonElement(strings.TrimSpace(value)) {
			fs.Counts[anomalyKey(tag, field, value)]++
		}
	case "charge":
		if strings.TrimSpace(value) != "" {
			fs.Counts[anomalyKey(tag, field, value)]++
		}
	}
}

// atomRule puts every residue name in a class. Anything we do not
// recognise in an ATOM record ends up under resName_OTHER.
func atomRule(fs *FileStats, tag, line string) {
	fields(fs, record.KindAtom, tag, line, func(field, value string) {
		if field == "resName" {
			c := record.ClassifyRes(value)
			fs.addValue(fieldKey(tag, field+"_"+c.String()), value)
			return
		}
		oddAtom(fs, tag, field, value)
	})
}

// hetatmRule is like atomRule, but unknown residues are normal for
// HETATM, so they are not collected.
func hetatmRule(fs *FileStats, tag, line string) {
	fields(fs, record.KindHetatm, tag, line, func(field, value string) {
		if field == "resName" {
			if c := record.ClassifyRes(value); c != record.ResUnknown {
				fs.addValue(fieldKey(tag, field+"_"+c.String()), value)
			}
			return
		}
		oddAtom(fs, tag, field, value)
	})
}

func helixRule(fs *FileStats, tag, line string) {
	fields(fs, record.KindHelix, tag, line, nil)
}

func compndRule(fs *FileStats, tag, line string) {
	if molIDRe.MatchString(record.From(line, compndCol)) {
		fs.Counts[KeyMolID]++
	}
}

// remark350Rule counts BIOMT lines. There are three per matrix, which
// the report takes care of.
func remark350Rule(fs *FileStats, tag, line string) {
	content := record.From(line, remarkCol)
	switch {
	case biomtRe.MatchString(content):
		fs.Counts[KeyBiomt]++
	case biomolRe.MatchString(content):
		fs.Counts[KeyBiomolecule]++
	}
}

// remark290Rule counts SMTRY lines, three per symmetry operator.
func remark290Rule(fs *FileStats, tag, line string) {
	if smtryRe.MatchString(record.From(line, remarkCol)) {
		fs.Counts[KeySmtry]++
	}
}
