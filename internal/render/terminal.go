package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/fatih/color"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	noticeColor  = color.New(color.FgYellow, color.Bold)
)

// Terminal presents a report on a text stream. Charts are written as PNG
// files under ChartDir; with an empty ChartDir they are skipped.
type Terminal struct {
	Out      io.Writer
	ChartDir string
	Size     Size

	// Charts lists the PNG files written so far.
	Charts []string
}

func NewTerminal(out io.Writer, chartDir string, size Size) *Terminal {
	return &Terminal{Out: out, ChartDir: chartDir, Size: size}
}

func (t *Terminal) Markdown(text string) error {
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := sc.Text()
		var err error
		switch {
		case strings.HasPrefix(line, "#"):
			_, err = headingColor.Fprintln(t.Out, strings.TrimSpace(strings.TrimLeft(line, "#")))
		case strings.HasPrefix(line, ">"):
			_, err = noticeColor.Fprintln(t.Out, strings.TrimSpace(strings.TrimPrefix(line, ">")))
		default:
			_, err = fmt.Fprintln(t.Out, line)
		}
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(t.Out)
	return err
}

func (t *Terminal) Table(title string, columns []string, rows [][]string) error {
	if _, err := headingColor.Fprintln(t.Out, title); err != nil {
		return err
	}
	WriteTable(t.Out, columns, rows)
	_, err := fmt.Fprintln(t.Out)
	return err
}

func (t *Terminal) BarChart(labels []string, values []float64, title string) error {
	return t.saveChart(title, func(w io.Writer) error {
		return BarChartPNG(w, labels, values, title, t.Size)
	})
}

func (t *Terminal) LineChart(xs, ys []float64, title string, markers bool) error {
	return t.saveChart(title, func(w io.Writer) error {
		return LineChartPNG(w, xs, ys, title, markers, t.Size)
	})
}

func (t *Terminal) saveChart(title string, draw func(io.Writer) error) error {
	if t.ChartDir == "" {
		return nil
	}
	if err := os.MkdirAll(t.ChartDir, 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}
	path := filepath.Join(t.ChartDir, Slug(title)+".png")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := draw(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write chart file: %w", err)
	}
	t.Charts = append(t.Charts, path)
	_, err = fmt.Fprintf(t.Out, "Chart saved to %s\n\n", path)
	return err
}

// Slug turns a title into a file name: "Causes of Death in Chad (2000)"
// becomes "causes-of-death-in-chad-2000".
func Slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
