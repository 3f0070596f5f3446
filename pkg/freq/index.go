package freq

import "sort"

type fileSet map[string]struct{}

// Index says which files showed a value: tag -> field -> value -> file IDs.
// It only grows.
type Index map[string]map[string]map[string]fileSet

// Add notes that file id had value in field of a tag.
func (ix Index) Add(tag, field, value, id string) {
	byField, ok := ix[tag]
	if !ok {
		byField = make(map[string]map[string]fileSet)
		ix[tag] = byField
	}
	byValue, ok := byField[field]
	if !ok {
		byValue = make(map[string]fileSet)
		byField[field] = byValue
	}
	ids, ok := byValue[value]
	if !ok {
		ids = make(fileSet)
		byValue[value] = ids
	}
	ids[id] = struct{}{}
}

// Merge adds everything in o to ix.
func (ix Index) Merge(o Index) {
	for tag, byField := range o {
		for field, byValue := range byField {
			for value, ids := range byValue {
				for id := range ids {
					ix.Add(tag, field, value, id)
				}
			}
		}
	}
}

// Tags returns the tags in the index, sorted.
func (ix Index) Tags() []string { return sortedKeys(ix) }

// Values returns the values seen for a field, sorted.
func (ix Index) Values(tag, field string) []string { return sortedKeys(ix[tag][field]) }

// Files returns the IDs of files which had a value, sorted.
func (ix Index) Files(tag, field, value string) []string {
	return sortedKeys(ix[tag][field][value])
}

func sortedKeys[V any](m map[string]V) []string {
	s := make([]string, 0, len(m))
	for k := range m {
		s = append(s, k)
	}
	sort.Strings(s)
	return s
}
