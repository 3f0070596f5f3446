// Package report writes the results of a run. There is a csv table with
// a row per file and a column per tag, and a text listing of every value
// seen in every field, with the files it came from.
// The output only depends on the statistics, so two runs over the same
// files give identical reports.
package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/andrew-torda/matrix"
	"github.com/andrew-torda/pdbfreq/pdb/record"
	"github.com/andrew-torda/pdbfreq/pkg/freq"
)

// Default output file names.
const (
	TagsFile   = "pdbfreq_tags.csv"
	FieldsFile = "pdbfreq_fields.txt"
)

const ruleWidth = 78

// perMatrix holds the counters that see three lines, one per matrix row,
// for each operator. They are divided by three on the way out.
var perMatrix = map[string]bool{
	freq.KeyBiomt: true,
	freq.KeySmtry: true,
}

// Table is the tag report before it is written.
type Table struct {
	Rows []string          // file names, sorted, including the aggregate
	Keys []string          // column names, sorted
	Grid *matrix.FMatrix2d // Grid.Mat[row][key]
}

// NewTable lays the counts out as a grid. Missing counts are zero.
// Columns come from the aggregate, which has every key any file has.
func NewTable(c *freq.Corpus) *Table {
	files := append([]*freq.FileStats(nil), c.Files...)
	sort.SliceStable(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	keys := make([]string, 0, len(c.All().Counts))
	for k := range c.All().Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := &Table{
		Rows: make([]string, len(files)),
		Keys: keys,
		Grid: matrix.NewFMatrix2d(len(files), len(keys)),
	}
	for i, fs := range files {
		t.Rows[i] = fs.Name
		for j, k := range keys {
			n := fs.Counts[k]
			if perMatrix[k] {
				n /= 3
			}
			t.Grid.Mat[i][j] = float32(n) // exact up to 2^24
		}
	}
	return t
}

// WriteTags writes the tag table in csv format. Tags and values come
// straight from the files, so anything odd in them gets quoted.
func WriteTags(w io.Writer, c *freq.Corpus) error {
	t := NewTable(c)
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(append([]string{"filename"}, t.Keys...)); err != nil {
		return err
	}
	record := make([]string, len(t.Keys)+1)
	for i, name := range t.Rows {
		record[0] = name
		for j := range t.Keys {
			record[j+1] = strconv.Itoa(int(t.Grid.Mat[i][j]))
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteFields lists, for each field of each tag we saw, every value and
// the files that had it.
func WriteFields(w io.Writer, c *freq.Corpus) error {
	hrule := strings.Repeat("-", ruleWidth)
	bw := bufio.NewWriter(w)
	for _, tag := range c.Index.Tags() {
		for _, f := range record.Fields(record.KindOf(tag)) {
			fmt.Fprintf(bw, "%s\n%s.%s\n%s\n", hrule, tag, f.Name, hrule)
			for _, v := range c.Index.Values(tag, f.Name) {
				ids := c.Index.Files(tag, f.Name, v)
				fmt.Fprintf(bw, "%-5s : %s\n", v, strings.Join(ids, ", "))
			}
		}
	}
	return bw.Flush()
}

// WriteFile creates fname and calls wrt on it.
func WriteFile(fname string, c *freq.Corpus, wrt func(io.Writer, *freq.Corpus) error) error {
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("output file %v: %w", fname, err)
	}
	if err := wrt(fp, c); err != nil {
		fp.Close()
		return fmt.Errorf("writing %v: %w", fname, err)
	}
	if err := fp.Close(); err != nil {
		return fmt.Errorf("closing %v: %w", fname, err)
	}
	return nil
}
