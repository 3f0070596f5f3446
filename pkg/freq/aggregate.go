package freq

// Corpus is the result of a run.
type Corpus struct {
	Files []*FileStats // in the order they were found, then the aggregate
	Index Index        // values and the files they came from, for all files
}

// All returns the aggregate entry.
func (c *Corpus) All() *FileStats { return c.Files[len(c.Files)-1] }

// Aggregate builds the ".ALL" entry from a set of files and appends it.
// Each count in ".ALL" is the largest count in any file. Each value set
// is the union over files. Afterwards, every entry, including ".ALL",
// has its field breadths written into its Counts.
// The FileStats passed in are modified, but the slice is not.
func Aggregate(files []*FileStats) *Corpus {
	all := NewFileStats(AllName, AllName)
	for _, fs := range files {
		all.Merge(fs)
	}
	c := &Corpus{
		Files: append(append(make([]*FileStats, 0, len(files)+1), files...), all),
		Index: all.Index,
	}
	for _, fs := range c.Files {
		fs.SetBreadth()
	}
	return c
}
