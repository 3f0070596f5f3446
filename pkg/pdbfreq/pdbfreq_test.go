package pdbfreq_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/andrew-torda/pdbfreq/pkg/common"
	"github.com/andrew-torda/pdbfreq/pkg/config"
	"github.com/andrew-torda/pdbfreq/pkg/freq"
	. "github.com/andrew-torda/pdbfreq/pkg/pdbfreq"
	"github.com/andrew-torda/pdbfreq/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

// TestMain makes sure the reader goroutines all finish.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const pdb1 = `HEADER    HYDROLASE                               01-JAN-00   1ABC
COMPND    MOL_ID: 1;
REMARK   2 RESOLUTION.    1.90 ANGSTROMS.
REMARK 350 BIOMOLECULE: 1
REMARK 350   BIOMT1   1  1.000000  0.000000  0.000000        0.00000
REMARK 350   BIOMT2   1  0.000000  1.000000  0.000000        0.00000
REMARK 350   BIOMT3   1  0.000000  0.000000  1.000000        0.00000
HELIX    1   1 GLY A    4  HIS A   15  1                                  12
ATOM      1  N   ALA A   1      11.104   6.134  -6.504  1.00  0.00           N
ATOM      2  CA  ALA A   1      11.639   6.071  -5.147  1.00  0.00           C
ATOM      3  SG  CYS A   2      12.000   6.000  -5.000  1.00  0.00           S
HETATM    4  O   HOH A 101       1.000   2.000   3.000  1.00  0.00           O
END
`

const pdb2 = `HEADER    TRANSFERASE                             01-JAN-00   2XYZ
ATOM      1  N   GLY B   1      11.104   6.134  -6.504  1.00  0.00           N
ATOM      2  CA  UNK B   1      11.639   6.071  -5.147  1.00  0.00           C
HETATM    3 ZN    ZN B 201       1.000   2.000   3.000  1.00  0.00          ZN2+
END
`

func quiet() *zap.Logger { return zap.NewNop() }

func testCfg(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.OutDir = t.TempDir()
	cfg.Workers = 2
	cfg.Log = ""
	return cfg
}

func corpusDir(t *testing.T) string {
	dir := t.TempDir()
	for name, s := range map[string]string{"1abc.pdb": pdb1, "2XYZ.PDB": pdb2, "notes.txt": "hello"} {
		_, err := common.WrtIn(dir, name, s)
		require.NoError(t, err)
	}
	return dir
}

func TestTargets(t *testing.T) {
	dir := corpusDir(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.pdb"), 0o755))
	_, err := common.WrtIn(dir, "3def.pdb.gz", "x")
	require.NoError(t, err)
	cfg := config.Default()

	got, err := Targets(dir, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "1abc.pdb"), filepath.Join(dir, "2XYZ.PDB")}, got)

	cfg.Gzip = true
	got, err = Targets(dir, cfg)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	// A single file is read whatever it is called.
	txt := filepath.Join(dir, "notes.txt")
	got, err = Targets(txt, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{txt}, got)

	for _, bad := range []string{filepath.Join(dir, "missing"), "/dev/null"} {
		_, err = Targets(bad, cfg)
		assert.ErrorIs(t, err, ErrNotFileOrDir, bad)
	}
}

func TestScanAllSkips(t *testing.T) {
	dir := corpusDir(t)
	for _, name := range []string{"3aaa.pdb", "4bbb.pdb"} {
		_, err := common.WrtIn(dir, name, pdb2)
		require.NoError(t, err)
	}
	cfg := testCfg(t)
	fnames, err := Targets(dir, cfg)
	require.NoError(t, err)
	require.Len(t, fnames, 4)
	open := func(fname string) (io.ReadCloser, error) {
		if strings.HasSuffix(fname, "3aaa.pdb") {
			return nil, errors.New("disk on fire")
		}
		return freq.OpenFile(fname)
	}
	files, skipped, err := ScanAll(context.Background(), fnames, cfg, open, quiet())
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	var names []string
	for _, fs := range files {
		names = append(names, fs.Name)
	}
	assert.Equal(t, []string{"1abc.pdb", "2XYZ.PDB", "4bbb.pdb"}, names)
}

func TestScanAllCancelled(t *testing.T) {
	dir := corpusDir(t)
	cfg := testCfg(t)
	fnames, err := Targets(dir, cfg)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = ScanAll(ctx, fnames, cfg, nil, quiet())
	assert.ErrorIs(t, err, context.Canceled)
}

func readOut(t *testing.T, cfg *config.Config) (string, string) {
	tags, err := os.ReadFile(filepath.Join(cfg.OutDir, cfg.TagsFile))
	require.NoError(t, err)
	fields, err := os.ReadFile(filepath.Join(cfg.OutDir, cfg.FieldsFile))
	require.NoError(t, err)
	return string(tags), string(fields)
}

func TestRun(t *testing.T) {
	dir := corpusDir(t)
	cfg := testCfg(t)
	cfg.DB = filepath.Join(cfg.OutDir, "pdbfreq.db")
	c, err := Run(context.Background(), dir, cfg, quiet())
	require.NoError(t, err)
	require.Len(t, c.Files, 3)
	all := c.All()
	assert.Equal(t, 3, all.Counts["ATOM"])
	assert.Equal(t, 1, all.Counts["HETATM"])
	assert.Equal(t, 1, all.Counts["ATOM resName_OTHER"])
	assert.Equal(t, 3, all.Counts["ATOM resName_AMINO"])
	assert.Equal(t, 1, all.Counts["ATOM element_S"])
	assert.Equal(t, 1, all.Counts["HETATM charge_2+"])
	assert.Equal(t, 3, all.Counts[freq.KeyBiomt])

	tags, fields := readOut(t, cfg)
	lines := strings.Split(strings.TrimSpace(tags), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "filename,"))
	assert.True(t, strings.HasPrefix(lines[1], ".ALL,"))
	assert.True(t, strings.HasPrefix(lines[2], "1abc.pdb,"))
	assert.True(t, strings.HasPrefix(lines[3], "2XYZ.PDB,"))
	assert.Contains(t, fields, "ATOM.resName\n")
	assert.Contains(t, fields, "UNK   : 2XYZ\n")
	assert.Contains(t, fields, "ALA   : 1abc\n")
	assert.Contains(t, fields, "HELIX.class\n")

	// Same input, same output, byte for byte.
	_, err = Run(context.Background(), dir, cfg, quiet())
	require.NoError(t, err)
	tags2, fields2 := readOut(t, cfg)
	assert.Equal(t, tags, tags2)
	assert.Equal(t, fields, fields2)

	s, err := store.Open(cfg.DB)
	require.NoError(t, err)
	defer s.Close()
	n, err := s.Count(context.Background(), "1abc.pdb", freq.KeyBiomt)
	require.NoError(t, err)
	assert.Equal(t, 3, n) // raw, not divided
}

func TestRunEmptyDir(t *testing.T) {
	cfg := testCfg(t)
	c, err := Run(context.Background(), t.TempDir(), cfg, quiet())
	require.NoError(t, err)
	assert.Len(t, c.Files, 1)
	tags, fields := readOut(t, cfg)
	assert.Equal(t, "filename\n.ALL\n", tags)
	assert.Equal(t, "", fields)
}

func TestRunGzip(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(pdb1))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1abc.pdb.gz"), buf.Bytes(), 0o644))

	cfg := testCfg(t)
	cfg.Gzip = true
	c, err := Run(context.Background(), dir, cfg, quiet())
	require.NoError(t, err)
	require.Len(t, c.Files, 2)
	assert.Equal(t, 3, c.All().Counts["ATOM"])
	assert.Equal(t, []string{"1abc"}, c.Index.Files("ATOM", "resName", "ALA"))
}

// With every read failing, every file is skipped but we still get a
// report.
func TestRunBrokenIO(t *testing.T) {
	cfg := testCfg(t)
	cfg.BrokenIO = 1
	c, err := Run(context.Background(), corpusDir(t), cfg, quiet())
	require.NoError(t, err)
	assert.Len(t, c.Files, 1)
	tags, _ := readOut(t, cfg)
	assert.Equal(t, "filename\n.ALL\n", tags)
}

func TestOpenerOf(t *testing.T) {
	cfg := config.Default()
	fname := filepath.Join(corpusDir(t), "1abc.pdb")
	_, err := freq.ScanFile(fname, OpenerOf(cfg))
	assert.NoError(t, err)
	cfg.BrokenIO = 1
	_, err = freq.ScanFile(fname, OpenerOf(cfg))
	assert.Error(t, err)
}

func TestLogWhere(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "pdbfreq.log")
	log, closeLog, err := LogWhere(fname, false)
	require.NoError(t, err)
	log.Info("processing", zap.String("file", "1abc.pdb"))
	log.Debug("not shown")
	require.NoError(t, log.Sync())
	require.NoError(t, closeLog())
	b, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Contains(t, string(b), "processing")
	assert.Contains(t, string(b), "1abc.pdb")
	assert.NotContains(t, string(b), "not shown")

	log, closeLog, err = LogWhere("", true)
	require.NoError(t, err)
	log.Info("nowhere")
	assert.NoError(t, closeLog())

	_, _, err = LogWhere(filepath.Join(t.TempDir(), "no", "dir", "x.log"), false)
	assert.Error(t, err)
}

func TestMymain(t *testing.T) {
	dir := corpusDir(t)
	out := t.TempDir()
	var w bytes.Buffer

	code := MymainTo([]string{"-o", out, "--log", ""}, &w)
	assert.Equal(t, common.ExitUsageError, code)
	assert.Contains(t, w.String(), "Usage:")

	w.Reset()
	code = MymainTo([]string{"-o", out, "--log", "", filepath.Join(dir, "nothing.here")}, &w)
	assert.Equal(t, common.ExitFailure, code)
	assert.Contains(t, w.String(), "ERROR: not file or directory")

	w.Reset()
	code = MymainTo([]string{"--no-such-flag", dir}, &w)
	assert.Equal(t, common.ExitUsageError, code)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing should be written after an error")

	w.Reset()
	code = MymainTo([]string{"-o", out, "--log", "", "-r", "3", dir}, &w)
	assert.Equal(t, common.ExitSuccess, code, w.String())
	assert.FileExists(t, filepath.Join(out, "pdbfreq_tags.csv"))
	assert.FileExists(t, filepath.Join(out, "pdbfreq_fields.txt"))
}

func TestMymainConfig(t *testing.T) {
	dir := corpusDir(t)
	out := t.TempDir()
	cfgName := filepath.Join(t.TempDir(), "pdbfreq.yaml")
	yml := "out_dir: " + out + "\ntags_file: t.csv\nfields_file: f.txt\nlog: \"\"\nworkers: 1\n"
	require.NoError(t, os.WriteFile(cfgName, []byte(yml), 0o644))
	var w bytes.Buffer

	code := MymainTo([]string{"-c", cfgName, "--tags", "flag.csv", dir}, &w)
	assert.Equal(t, common.ExitSuccess, code, w.String())
	assert.FileExists(t, filepath.Join(out, "flag.csv")) // flag beats file
	assert.FileExists(t, filepath.Join(out, "f.txt"))
	assert.NoFileExists(t, filepath.Join(out, "t.csv"))

	code = MymainTo([]string{"-c", filepath.Join(out, "missing.yaml"), dir}, &w)
	assert.Equal(t, common.ExitUsageError, code)
}

// Flags show the same defaults a run would use.
func TestFlagDefaults(t *testing.T) {
	var w bytes.Buffer
	cmd := NewCommand(&w)
	def := config.Default()
	workers := strconv.Itoa(runtime.NumCPU())
	assert.Equal(t, workers, cmd.Flags().Lookup("workers").DefValue)
	assert.Equal(t, def.TagsFile, cmd.Flags().Lookup("tags").DefValue)
	assert.Equal(t, def.Log, cmd.Flags().Lookup("log").DefValue)

	code := MymainTo([]string{"--help"}, &w)
	assert.Equal(t, common.ExitSuccess, code)
	assert.Contains(t, w.String(), "(default "+workers+")")
}
