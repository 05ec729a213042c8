package engine

import (
	"encoding/binary"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
)

// Source column names. The short code column is exposed as Abbreviation.
const (
	ColCountry      = "Country/Territory"
	ColCode         = "Code"
	ColAbbreviation = "Abbreviation"
	ColYear         = "Year"
)

type header struct {
	country, abbrev, year int
	diseaseCols          []int
	diseases             []string
}

// normalizeHeader renames Code to Abbreviation and locates the fixed columns.
// Every other column is a disease column, kept in file order.
func normalizeHeader(cols []string) (*header, error) {
	h := &header{country: -1, abbrev: -1, year: -1}
	for i, c := range cols {
		c = strings.TrimSpace(strings.TrimPrefix(c, "\ufeff"))
		if c == ColCode {
			c = ColAbbreviation
		}
		cols[i] = c
		switch c {
		case ColCountry:
			h.country = i
		case ColAbbreviation:
			h.abbrev = i
		case ColYear:
			h.year = i
		default:
			h.diseaseCols = append(h.diseaseCols, i)
			h.diseases = append(h.diseases, c)
		}
	}
	switch {
	case h.country < 0:
		return nil, fmt.Errorf("missing column %q", ColCountry)
	case h.abbrev < 0:
		return nil, fmt.Errorf("missing column %q", ColCode)
	case h.year < 0:
		return nil, fmt.Errorf("missing column %q", ColYear)
	case len(h.diseases) == 0:
		return nil, errors.New("no disease columns")
	}
	for i, d := range h.diseases {
		if slices.Contains(h.diseases[:i], d) {
			return nil, fmt.Errorf("duplicate column %q", d)
		}
	}
	return h, nil
}

// Load reads the CSV at path, renames the code column, drops exact duplicate
// rows and returns the resulting table. Any failure is a *LoadError.
func Load(path string) (*Table, error) {
	start := time.Now()
	log.Printf("Loading data from %s...", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	t, err := read(f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}

	log.Printf("Load Complete. Rows: %d. Countries: %d. Diseases: %d. Time: %v",
		t.Len(), len(t.countryDict), len(t.diseases), time.Since(start))
	return t, nil
}

func read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)

	cols, err := cr.Read()
	if err == io.EOF {
		return nil, &LoadError{Line: 1, Err: errors.New("empty file")}
	}
	if err != nil {
		return nil, csvError(err)
	}
	h, err := normalizeHeader(cols)
	if err != nil {
		return nil, &LoadError{Line: 1, Err: err}
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, csvError(err)
	}

	rows, err := parseRows(h, records)
	if err != nil {
		return nil, err
	}
	rows = dropDuplicates(rows)
	warnConflicts(rows)

	return NewTable(h.diseases, rows), nil
}

func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &LoadError{Line: pe.Line, Err: pe.Err}
	}
	return &LoadError{Err: err}
}

// parseRows converts records in parallel chunks. Each worker writes into its
// own slice range, the first error stops the rest.
func parseRows(h *header, records [][]string) ([]Row, error) {
	rows := make([]Row, len(records))
	if len(records) == 0 {
		return rows, nil
	}

	numWorkers := min(runtime.NumCPU(), len(records))
	chunkSize := (len(records) + numWorkers - 1) / numWorkers

	var g errgroup.Group
	for s := 0; s < len(records); s += chunkSize {
		e := min(s+chunkSize, len(records))
		g.Go(func() error {
			for i := s; i < e; i++ {
				row, err := parseRow(h, records[i])
				if err != nil {
					// header is line 1
					return &LoadError{Line: i + 2, Err: err}
				}
				rows[i] = row
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func parseRow(h *header, rec []string) (Row, error) {
	year, err := strconv.Atoi(strings.TrimSpace(rec[h.year]))
	if err != nil {
		return Row{}, fmt.Errorf("year: %w", err)
	}
	row := Row{
		Country:      strings.TrimSpace(rec[h.country]),
		Abbreviation: strings.TrimSpace(rec[h.abbrev]),
		Year:         year,
		Deaths:       make([]int64, len(h.diseaseCols)),
	}
	for d, col := range h.diseaseCols {
		n, err := strconv.ParseInt(strings.TrimSpace(rec[col]), 10, 64)
		if err != nil {
			return Row{}, fmt.Errorf("%s: %w", h.diseases[d], err)
		}
		if n < 0 {
			return Row{}, fmt.Errorf("%s: negative count %d", h.diseases[d], n)
		}
		row.Deaths[d] = n
	}
	return row, nil
}

func rowHash(buf []byte, r Row) ([]byte, uint64) {
	buf = buf[:0]
	buf = append(buf, r.Country...)
	buf = append(buf, 0x1f)
	buf = append(buf, r.Abbreviation...)
	buf = append(buf, 0x1f)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(r.Year))
	for _, n := range r.Deaths {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(n))
	}
	return buf, xxh3.Hash(buf)
}

func sameRow(a, b Row) bool {
	return a.Country == b.Country &&
		a.Abbreviation == b.Abbreviation &&
		a.Year == b.Year &&
		slices.Equal(a.Deaths, b.Deaths)
}

// dropDuplicates keeps the first occurrence of every exactly repeated row.
func dropDuplicates(rows []Row) []Row {
	seen := make(map[uint64][]int, len(rows))
	out := rows[:0:0]
	var buf []byte
	var h uint64

	for _, r := range rows {
		buf, h = rowHash(buf, r)
		dup := false
		for _, k := range seen[h] {
			if sameRow(out[k], r) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen[h] = append(seen[h], len(out))
		out = append(out, r)
	}
	if dropped := len(rows) - len(out); dropped > 0 {
		log.Printf("Dropped %d duplicate rows", dropped)
	}
	return out
}

type countryYear struct {
	country string
	year    int
}

// warnConflicts logs (country, year) pairs that still appear more than once.
// Lookups use the first such row.
func warnConflicts(rows []Row) {
	seen := make(map[countryYear]bool, len(rows))
	conflicts := 0
	for _, r := range rows {
		k := countryYear{r.Country, r.Year}
		if seen[k] {
			conflicts++
			continue
		}
		seen[k] = true
	}
	if conflicts > 0 {
		log.Printf("WARNING: %d rows repeat a country/year with different values", conflicts)
	}
}
