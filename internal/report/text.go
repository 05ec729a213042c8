package report

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatDeaths renders a count with thousands separators, e.g. 1,234,567.
func FormatDeaths(n int64) string {
	return printer.Sprintf("%d", n)
}

func pageTitle(s Settings) string {
	return fmt.Sprintf("Global Causes of Death (%d–%d)", s.Years.Min, s.Years.Max)
}

func overview(s Settings) string {
	return fmt.Sprintf(`### Overview
This report explores the leading causes of death worldwide between %d and %d.
The data comes from [Kaggle: World deaths and causes 1990-2019](https://www.kaggle.com/datasets/madhurpant/world-deaths-and-causes-1990-2019)
and records annual death counts by cause and country.

Use it to:
- find the **most common causes of mortality**, globally or for one country,
- follow how **patterns shift over time** as some causes rise and others fall,
- **compare countries and years** side by side.`, s.Years.Min, s.Years.Max)
}

func snapshotInsights(country string, year int, top []topLine) string {
	text := fmt.Sprintf(`### Key Insights for %s in %d
- The chart shows the **distribution of deaths by cause**, largest first.
- The leftmost bars are the **leading drivers of mortality** for this year and region.`, country, year)
	if len(top) > 0 {
		text += fmt.Sprintf("\n- The top cause, **%s**, accounts for %s deaths (%.1f%% of all recorded deaths).",
			top[0].disease, FormatDeaths(top[0].deaths), top[0].share)
	}
	return text
}

func trendInsights(disease, country string, first, last int64, firstYear, lastYear int) string {
	text := fmt.Sprintf(`### Trend Analysis: %s in %s
- The line chart follows **%s deaths** year by year.
- Long-term rises or falls can reflect medical advances, prevention programmes or demographic change.
- Switching the country shows **regional differences in health outcomes**.`, disease, country, disease)
	if firstYear != lastYear {
		text += fmt.Sprintf("\n- From %d to %d deaths went from %s to %s (%s).",
			firstYear, lastYear, FormatDeaths(first), FormatDeaths(last), direction(first, last))
	}
	return text
}

func direction(first, last int64) string {
	switch {
	case first == 0 && last == 0:
		return "unchanged"
	case first == 0:
		return "up from zero"
	}
	pct := float64(last-first) / float64(first) * 100
	switch {
	case pct > 0.5:
		return fmt.Sprintf("up %.1f%%", pct)
	case pct < -0.5:
		return fmt.Sprintf("down %.1f%%", -pct)
	}
	return "roughly unchanged"
}

func conclusion(s Settings) string {
	return fmt.Sprintf(`---
### Conclusion
Between %d and %d the global health picture shifted: some burdens such as cardiovascular
disease persist, while several infectious diseases have declined.

Change the **view mode** to switch between a single-year snapshot and a multi-year trend,
and pick **different countries and diseases** to compare them.`, s.Years.Min, s.Years.Max)
}
