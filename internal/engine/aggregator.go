package engine

import (
	"fmt"
	"sort"

	"deathreport/internal/models"
)

// Snapshot returns every disease count for one year, sorted by deaths
// descending with ties kept in column order.
//
// For models.GlobalCountry the counts are summed over all rows of that year
// (all zeros when the year is absent). For a specific country the first
// matching row is returned as is, and a missing row yields ErrNotFound.
func (t *Table) Snapshot(year int, country string) ([]models.DiseaseCount, error) {
	totals := make([]int64, len(t.diseases))
	y := int32(year)

	if country == models.GlobalCountry {
		for d, col := range t.counts {
			var sum int64
			for i, v := range col {
				if t.years[i] == y {
					sum += v
				}
			}
			totals[d] = sum
		}
	} else {
		row := t.find(country, y)
		if row < 0 {
			return nil, fmt.Errorf("%w: %s in %d", ErrNotFound, country, year)
		}
		for d, col := range t.counts {
			totals[d] = col[row]
		}
	}

	out := make([]models.DiseaseCount, len(t.diseases))
	for d, name := range t.diseases {
		out[d] = models.DiseaseCount{Disease: name, Deaths: totals[d]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Deaths > out[j].Deaths })
	return out, nil
}

func (t *Table) find(country string, year int32) int {
	cid, ok := t.countryIdx[country]
	if !ok {
		return -1
	}
	for i, id := range t.countryIDs {
		if id == cid && t.years[i] == year {
			return i
		}
	}
	return -1
}

// TopN returns the first n entries of an already sorted snapshot.
func TopN(counts []models.DiseaseCount, n int) []models.DiseaseCount {
	if n < 0 {
		n = 0
	}
	if len(counts) > n {
		counts = counts[:n]
	}
	return append([]models.DiseaseCount(nil), counts...)
}

// Trend returns one disease's yearly deaths in ascending year order.
//
// For models.GlobalCountry rows are grouped by year and summed. For a
// specific country each of its rows contributes one entry; missing years are
// not filled in and an unknown country yields an empty series.
func (t *Table) Trend(disease, country string) ([]models.YearCount, error) {
	d, ok := t.diseaseIdx[disease]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDisease, disease)
	}
	col := t.counts[d]
	out := make([]models.YearCount, 0)

	if country == models.GlobalCountry {
		byYear := make(map[int32]int64)
		for i, v := range col {
			byYear[t.years[i]] += v
		}
		for y, sum := range byYear {
			out = append(out, models.YearCount{Year: int(y), Deaths: sum})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
		return out, nil
	}

	cid, ok := t.countryIdx[country]
	if !ok {
		return out, nil
	}
	seen := make(map[int32]bool)
	for i, id := range t.countryIDs {
		if id != cid || seen[t.years[i]] {
			continue
		}
		seen[t.years[i]] = true
		out = append(out, models.YearCount{Year: int(t.years[i]), Deaths: col[i]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}
