package pdbfreq

// Export for testing

var (
	MymainTo = mymain
	LogWhere = logWhere
	OpenerOf = opener
)
