/*

pdbfreq reads old style (fixed column) PDB files and says which record
types and which field values turn up, and how often.

Usage:
 pdbfreq [options] (file.pdb | directory)

Given a directory, every entry ending in .pdb (any case) is read. Other
entries are ignored.

Flags:
  -c filename
    	yaml file with settings. Flags given on the command line win.
  -r N
    	number of files to read at once. The default is the number of CPUs.
  -o dir
    	write the reports to dir instead of the current directory
  --tags name, --fields name
    	names of the two reports
  --ext .xyz
    	in a directory, read files ending in .xyz instead of .pdb
  -z	also read gzipped files (.pdb.gz). Compressed files are
    	recognised by their contents, whatever they are called.
  --db filename
    	also save everything in an sqlite database
  --log dest
    	where to send progress messages: "" for nowhere, stdout,
    	stderr (default) or a file name
  -v	more messages

Output:

pdbfreq_tags.csv has a column for every record type and every derived
counter, and a row for every file. There is an extra row, .ALL, which
has the largest value seen in any single file. This is not a sum. Most
records occur at most once in a sensible file, so the maximum is what
shows up the odd ones.
Columns like "ATOM resName" hold the number of different values seen in
that field. In the .ALL row, this is the number of different values
over all files.
Columns like "ATOM element_S" and "HETATM charge_2+" count atoms with an
element other than C, N or O, or with any charge.
"REMARK 350 BIOMTn" and "REMARK 290 SMTRYn" count matrices, not lines.
Each matrix takes three lines.

pdbfreq_fields.txt lists, for every field of ATOM, HETATM and HELIX
records, each value that occurred and the files it came from.

A file that cannot be read is reported and left out. The rest of the run
carries on.

*/
package main
