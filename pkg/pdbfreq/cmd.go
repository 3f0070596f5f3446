package pdbfreq

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/andrew-torda/pdbfreq/pkg/common"
	"github.com/andrew-torda/pdbfreq/pkg/config"
	"github.com/spf13/cobra"
)

// errUsage marks a problem with the command line, as opposed to a
// problem with the files.
var errUsage = errors.New("usage")

// CmdFlag is literally command line flags after parsing. They only win
// over the config file if they were given.
type CmdFlag struct {
	Config     string
	Workers    int
	OutDir     string
	TagsFile   string
	FieldsFile string
	Extension  string
	Gzip       bool
	DB         string
	Log        string
	Verbose    bool
	BrokenIO   float32
}

// settings puts together the defaults, the config file and the flags.
func settings(cmd *cobra.Command, flags *CmdFlag) (*config.Config, error) {
	cfg := config.Default()
	if flags.Config != "" {
		var err error
		if cfg, err = config.Load(flags.Config); err != nil {
			return nil, err
		}
	}
	set := cmd.Flags().Changed
	if set("workers") {
		cfg.Workers = flags.Workers
	}
	if set("outdir") {
		cfg.OutDir = flags.OutDir
	}
	if set("tags") {
		cfg.TagsFile = flags.TagsFile
	}
	if set("fields") {
		cfg.FieldsFile = flags.FieldsFile
	}
	if set("ext") {
		cfg.Extension = flags.Extension
	}
	if set("gzip") {
		cfg.Gzip = flags.Gzip
	}
	if set("db") {
		cfg.DB = flags.DB
	}
	if set("log") {
		cfg.Log = flags.Log
	}
	if set("verbose") {
		cfg.Verbose = flags.Verbose
	}
	if set("broken-io") {
		cfg.BrokenIO = flags.BrokenIO
	}
	return cfg, cfg.Check()
}

// NewCommand builds the command. Output from cobra goes to w.
func NewCommand(w io.Writer) *cobra.Command {
	var flags CmdFlag
	cmd := &cobra.Command{
		Use:   "pdbfreq (<pdbfile> | <dir>)",
		Short: "Count records and field values in PDB format files",
		Long: `pdbfreq reads one PDB file, or every .pdb file in a directory, and
counts how often each record type occurs and which values turn up in
the fields of ATOM, HETATM and HELIX records.

It writes pdbfreq_tags.csv, with a row per file and a row .ALL holding
the largest count seen in any file, and pdbfreq_fields.txt, listing every
field value and the files it came from.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: want one file or directory, got %d arguments", errUsage, len(args))
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := settings(cmd, &flags)
			if err != nil {
				return fmt.Errorf("%w: %v", errUsage, err)
			}
			log, closeLog, err := logWhere(cfg.Log, cfg.Verbose)
			if err != nil {
				return fmt.Errorf("log file %s: %w", cfg.Log, err)
			}
			defer closeLog()
			defer log.Sync()
			_, err = Run(context.Background(), args[0], cfg, log)
			return err
		},
	}
	cmd.SetOut(w)
	cmd.SetErr(w)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})
	def := config.Default()
	f := cmd.Flags()
	f.StringVarP(&flags.Config, "config", "c", "", "yaml file with settings")
	f.IntVarP(&flags.Workers, "workers", "r", def.Workers, "num reader threads")
	f.StringVarP(&flags.OutDir, "outdir", "o", def.OutDir, "directory for the reports")
	f.StringVar(&flags.TagsFile, "tags", def.TagsFile, "name of the tag count table")
	f.StringVar(&flags.FieldsFile, "fields", def.FieldsFile, "name of the field value listing")
	f.StringVar(&flags.Extension, "ext", def.Extension, "read files in a directory with this extension")
	f.BoolVarP(&flags.Gzip, "gzip", "z", def.Gzip, "also read gzipped files (ext.gz)")
	f.StringVar(&flags.DB, "db", def.DB, "also save results in this sqlite file")
	f.StringVar(&flags.Log, "log", def.Log, `where to log: "", stdout, stderr or a file`)
	f.BoolVarP(&flags.Verbose, "verbose", "v", def.Verbose, "more logging")
	f.Float32Var(&flags.BrokenIO, "broken-io", def.BrokenIO, "probability of artificial read errors, for testing")
	f.MarkHidden("broken-io")
	return cmd
}

// Mymain runs the command on args and returns the exit code.
func Mymain(args []string) int {
	return mymain(args, os.Stderr)
}

func mymain(args []string, w io.Writer) int {
	cmd := NewCommand(w)
	cmd.SetArgs(args)
	err := cmd.Execute()
	switch {
	case err == nil:
		return common.ExitSuccess
	case errors.Is(err, errUsage):
		fmt.Fprintln(w, "Error:", err)
		fmt.Fprint(w, cmd.UsageString())
		return common.ExitUsageError
	case errors.Is(err, ErrNotFileOrDir):
		fmt.Fprintln(w, "ERROR:", err)
		return common.ExitFailure
	}
	fmt.Fprintln(w, err)
	return common.ExitFailure
}
