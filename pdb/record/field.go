package record

// Cut returns columns start to end (from 1, end included) of a line.
// Columns past the end of the line are just missing, so a short line
// gives a short or empty string. No case or blank changes are made.
func Cut(line string, start, end int) string {
	if start < 1 {
		start = 1
	}
	if end > len(line) {
		end = len(line)
	}
	if start > end {
		return ""
	}
	return line[start-1 : end]
}

// Extract cuts a field out of a line.
func Extract(line string, f Field) string { return Cut(line, f.Start, f.End) }

// From returns everything from column start onwards.
func From(line string, start int) string { return Cut(line, start, len(line)) }
