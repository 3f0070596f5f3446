package freq

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/andrew-torda/pdbfreq/pdb/record"
	"github.com/andrew-torda/pdbfreq/pdb/zwrap"
)

// maxLine is the most of a line we keep. Real records are 80 columns.
// Anything longer is junk, so the rest of it is read and dropped.
const maxLine = 64 * 1024

// An Opener gives a reader for an input file. OpenFile is the normal
// one. Tests put something that breaks in between.
type Opener func(fname string) (io.ReadCloser, error)

// OpenFile maps the file and decompresses it if necessary.
func OpenFile(fname string) (io.ReadCloser, error) {
	fz, err := zwrap.Open(fname)
	if err != nil {
		return nil, err
	}
	return fz, nil
}

// errorName sticks a problem causing filename on an error message
func errorName(fname string, e error) error {
	return fmt.Errorf("working on %q: %w", fname, e)
}

// Names gives the report name of a file, its base name, and the ID used
// in the field listing, which is the base name without a .gz and
// without the extension.
func Names(fname string) (name, id string) {
	name = filepath.Base(fname)
	id = name
	if strings.HasSuffix(strings.ToLower(id), ".gz") {
		id = id[:len(id)-len(".gz")]
	}
	id = strings.TrimSuffix(id, filepath.Ext(id))
	return name, id
}

// Line takes one line of a file and updates the statistics.
func (fs *FileStats) Line(line string) {
	tag := record.Tag(line)
	fs.Counts[tag]++
	if r, ok := rules[record.KindOf(tag)]; ok {
		r(fs, tag, line)
	}
}

// readLine returns the next line without its line ending. ok is false
// if there was nothing left to read. A line longer than the reader's
// buffer is cut short and the rest of it skipped.
func readLine(br *bufio.Reader) (line string, ok bool, err error) {
	b, err := br.ReadSlice('\n')
	ok = err == nil || len(b) > 0
	line = strings.TrimSuffix(strings.TrimSuffix(string(b), "\n"), "\r")
	for err == bufio.ErrBufferFull {
		_, err = br.ReadSlice('\n')
	}
	return line, ok, err
}

// Scan reads every line from r. A read error means the statistics for
// the file are incomplete, so we return nothing. An over-long line is
// not an error.
func Scan(r io.Reader, name, id string) (*FileStats, error) {
	fs := NewFileStats(name, id)
	br := bufio.NewReaderSize(r, maxLine)
	for {
		line, ok, err := readLine(br)
		if ok {
			fs.Line(line)
		}
		if err == io.EOF {
			return fs, nil
		}
		if err != nil {
			return nil, errorName(name, err)
		}
	}
}

// ScanFile opens a file with open, or OpenFile if open is nil, and
// scans it.
func ScanFile(fname string, open Opener) (fs *FileStats, err error) {
	if open == nil {
		open = OpenFile
	}
	rdr, err := open(fname)
	if err != nil {
		return nil, errorName(fname, err)
	}
	defer func() {
		if e := rdr.Close(); e != nil && err == nil {
			fs, err = nil, errorName(fname, e)
		}
	}()
	name, id := Names(fname)
	return Scan(rdr, name, id)
}
