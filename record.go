package tabconv

import "sort"

// Record is a row of data keyed by field name
type Record map[string]interface{}

// Records is a sequence of rows
type Records []Record

// Keys returns the sorted union of field names across records
func (r Records) Keys() []string {
	seen := map[string]bool{}
	var keys []string
	for _, record := range r {
		for key := range record {
			if seen[key] {
				continue
			}
			seen[key] = true
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Project returns a copy of the record holding only the named fields,
// missing ones set to nil
func (r Record) Project(names []string) Record {
	ret := make(Record, len(names))
	for _, name := range names {
		ret[name] = r[name]
	}
	return ret
}
