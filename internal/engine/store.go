package engine

import "sort"

// Table holds the death counts in struct-of-arrays format.
// It is built once by Load and never mutated afterwards, so it can be shared
// between goroutines without locking.
type Table struct {
	// Dictionary encoded countries (ID -> name), IDs in file order
	countryIDs  []int32
	countryDict []string
	countryIdx  map[string]int32

	abbreviations []string
	years         []int32

	// One column per disease, counts[d][row]
	diseases   []string
	diseaseIdx map[string]int
	counts     [][]int64
}

// Row is a materialized table row. Deaths follows the order of Diseases().
type Row struct {
	Country      string
	Abbreviation string
	Year         int
	Deaths       []int64
}

// NewTable builds a table from already-parsed rows. Every row must carry one
// count per disease.
func NewTable(diseases []string, rows []Row) *Table {
	t := &Table{
		countryIDs:    make([]int32, len(rows)),
		countryIdx:    make(map[string]int32),
		abbreviations: make([]string, len(rows)),
		years:         make([]int32, len(rows)),
		diseases:      append([]string(nil), diseases...),
		diseaseIdx:    make(map[string]int, len(diseases)),
		counts:        make([][]int64, len(diseases)),
	}
	for d, name := range t.diseases {
		t.diseaseIdx[name] = d
		t.counts[d] = make([]int64, len(rows))
	}

	for i, r := range rows {
		id, ok := t.countryIdx[r.Country]
		if !ok {
			id = int32(len(t.countryDict))
			t.countryDict = append(t.countryDict, r.Country)
			t.countryIdx[r.Country] = id
		}
		t.countryIDs[i] = id
		t.abbreviations[i] = r.Abbreviation
		t.years[i] = int32(r.Year)
		for d := range t.diseases {
			t.counts[d][i] = r.Deaths[d]
		}
	}
	return t
}

func (t *Table) Len() int { return len(t.years) }

// Diseases returns the disease columns in header order.
func (t *Table) Diseases() []string {
	return append([]string(nil), t.diseases...)
}

func (t *Table) HasDisease(name string) bool {
	_, ok := t.diseaseIdx[name]
	return ok
}

func (t *Table) HasCountry(name string) bool {
	_, ok := t.countryIdx[name]
	return ok
}

// Countries returns the distinct country names sorted alphabetically.
func (t *Table) Countries() []string {
	out := append([]string(nil), t.countryDict...)
	sort.Strings(out)
	return out
}

// Years returns the distinct years present, ascending.
func (t *Table) Years() []int {
	seen := make(map[int32]bool)
	var out []int
	for _, y := range t.years {
		if !seen[y] {
			seen[y] = true
			out = append(out, int(y))
		}
	}
	sort.Ints(out)
	return out
}

// Row materializes row i.
func (t *Table) Row(i int) Row {
	r := Row{
		Country:      t.countryDict[t.countryIDs[i]],
		Abbreviation: t.abbreviations[i],
		Year:         int(t.years[i]),
		Deaths:       make([]int64, len(t.diseases)),
	}
	for d := range t.diseases {
		r.Deaths[d] = t.counts[d][i]
	}
	return r
}
