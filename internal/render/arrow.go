package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"

	"deathreport/internal/models"
)

// ErrNoData is returned when exporting a view model that holds no data.
var ErrNoData = errors.New("nothing to export")

// ArrowSchema returns the schema of the exported record for a view mode.
// The selection is attached as schema metadata.
func ArrowSchema(sel models.Selection) *arrow.Schema {
	keys := []string{"view", "country"}
	vals := []string{string(sel.View), sel.Country}

	var fields []arrow.Field
	switch sel.View {
	case models.ViewTrend:
		keys = append(keys, "disease")
		vals = append(vals, sel.Disease)
		fields = []arrow.Field{
			{Name: "year", Type: arrow.PrimitiveTypes.Int32},
			{Name: "deaths", Type: arrow.PrimitiveTypes.Int64},
		}
	default:
		keys = append(keys, "year")
		vals = append(vals, strconv.Itoa(sel.Year))
		fields = []arrow.Field{
			{Name: "disease", Type: arrow.BinaryTypes.String},
			{Name: "deaths", Type: arrow.PrimitiveTypes.Int64},
		}
	}
	md := arrow.NewMetadata(keys, vals)
	return arrow.NewSchema(fields, &md)
}

// WriteArrow writes the view model's data as a single-record Arrow IPC stream:
// every disease for a snapshot, every year for a trend.
func WriteArrow(w io.Writer, vm *models.ViewModel) error {
	if vm == nil || vm.NoData {
		return ErrNoData
	}

	mem := memory.NewGoAllocator()
	schema := ArrowSchema(vm.Selection)
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	switch vm.Selection.View {
	case models.ViewSnapshot:
		names := b.Field(0).(*array.StringBuilder)
		deaths := b.Field(1).(*array.Int64Builder)
		for _, c := range vm.Snapshot {
			names.Append(c.Disease)
			deaths.Append(c.Deaths)
		}
	case models.ViewTrend:
		years := b.Field(0).(*array.Int32Builder)
		deaths := b.Field(1).(*array.Int64Builder)
		for _, p := range vm.Trend {
			years.Append(int32(p.Year))
			deaths.Append(p.Deaths)
		}
	default:
		return fmt.Errorf("unknown view mode %q", vm.Selection.View)
	}

	rec := b.NewRecord()
	defer rec.Release()

	iw := ipc.NewWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err := iw.Write(rec); err != nil {
		iw.Close()
		return fmt.Errorf("write arrow record: %w", err)
	}
	if err := iw.Close(); err != nil {
		return fmt.Errorf("close arrow stream: %w", err)
	}
	return nil
}
