// Package zwrap opens an input file by mapping it into memory and,
// if the contents are gzipped, puts a decompressor in front of it.
// Upon calling Close, the decompressor is closed, the mapping is
// released and the underlying file is closed.
// We look at the first bytes, not the name, so a compressed file
// called x.pdb is read correctly.
package zwrap

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

type FpGzip struct { // This is what we return.
	fp   *os.File
	mm   mmap.MMap
	rdr  io.Reader // either the mapped bytes or zrdr
	zrdr *gzip.Reader
}

// isGzip checks for the gzip magic number.
func isGzip(b []byte) bool { return len(b) >= 2 && b[0] == 0x1f && b[1] == 0x8b }

// Open maps fname read-only. An empty file cannot be mapped, so it
// just gives EOF on the first read.
func Open(fname string) (*FpGzip, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	fi, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, err
	}
	if fi.IsDir() {
		fp.Close()
		return nil, fmt.Errorf("%s is a directory", fname)
	}
	fpz := &FpGzip{fp: fp}
	if fi.Size() == 0 {
		fpz.rdr = bytes.NewReader(nil)
		return fpz, nil
	}
	if fpz.mm, err = mmap.Map(fp, mmap.RDONLY, 0); err != nil {
		fp.Close()
		return nil, fmt.Errorf("mapping %s: %w", fname, err)
	}
	fpz.rdr = bytes.NewReader(fpz.mm)
	if !isGzip(fpz.mm) {
		return fpz, nil
	}
	if fpz.zrdr, err = gzip.NewReader(fpz.rdr); err != nil {
		fpz.Close()
		return nil, fmt.Errorf("decompressing %s: %w", fname, err)
	}
	fpz.rdr = fpz.zrdr
	return fpz, nil
}

// Compressed says if we are reading through a decompressor.
func (fc *FpGzip) Compressed() bool { return fc.zrdr != nil }

// Read makes sure we read from the decompressed stream if there is one.
func (fc *FpGzip) Read(p []byte) (int, error) { return fc.rdr.Read(p) }

// Close closes the decompressor, then the mapping, then the file.
// All the errors are returned.
func (fc *FpGzip) Close() error {
	var errs []error
	if fc.zrdr != nil {
		errs = append(errs, fc.zrdr.Close())
	}
	if fc.mm != nil {
		errs = append(errs, fc.mm.Unmap())
	}
	errs = append(errs, fc.fp.Close())
	return errors.Join(errs...)
}
