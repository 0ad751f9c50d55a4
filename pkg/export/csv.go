package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/dsgeops/pilotdeck/pkg/errors"
	"github.com/dsgeops/pilotdeck/pkg/pilot"
	"github.com/dsgeops/pilotdeck/pkg/proposal"
)

// CSVDialect specifies the CSV format variant.
type CSVDialect string

const (
	// DialectStandard is RFC 4180 comma-separated output.
	DialectStandard CSVDialect = "standard"

	// DialectTSV uses tab separators for spreadsheet paste targets.
	DialectTSV CSVDialect = "tsv"
)

// CSVConfig specifies options for CSV export.
type CSVConfig struct {
	// Dialect selects the separator.
	// Default: DialectStandard.
	Dialect CSVDialect

	// IncludeHeader writes column headers as the first row.
	// Default: true.
	IncludeHeader bool

	// DateFormat renders the timeline start/finish dates.
	// Default: "2006-01-02".
	DateFormat string

	// Precision is the number of decimal places for numeric metric
	// columns. Default: 2.
	Precision int
}

// DefaultCSVConfig returns a CSVConfig with sensible defaults.
func DefaultCSVConfig() *CSVConfig {
	return &CSVConfig{
		Dialect:       DialectStandard,
		IncludeHeader: true,
		DateFormat:    "2006-01-02",
		Precision:     2,
	}
}

var timelineHeaders = []string{"task", "phase", "start", "finish", "gate"}

// TimelineCSVWriter writes DMAIC timeline tasks as CSV rows.
type TimelineCSVWriter struct {
	config      *CSVConfig
	writer      *csv.Writer
	headerDone  bool
	rowsWritten int
}

// NewTimelineCSVWriter creates a writer targeting w. A nil config
// uses DefaultCSVConfig.
func NewTimelineCSVWriter(w io.Writer, config *CSVConfig) *TimelineCSVWriter {
	if config == nil {
		config = DefaultCSVConfig()
	}

	cw := csv.NewWriter(w)
	if config.Dialect == DialectTSV {
		cw.Comma = '\t'
	}

	return &TimelineCSVWriter{
		config: config,
		writer: cw,
	}
}

// WriteHeader writes the header row. It is called automatically on
// the first Write when IncludeHeader is set.
func (tw *TimelineCSVWriter) WriteHeader() error {
	if tw.headerDone {
		return nil
	}
	if err := tw.writer.Write(timelineHeaders); err != nil {
		return errors.ExportWrap(err, errors.ErrExportCSVFailed, "write CSV header")
	}
	tw.headerDone = true
	return nil
}

// Write writes a single task row.
func (tw *TimelineCSVWriter) Write(task proposal.TimelineTask) error {
	if tw.config.IncludeHeader && !tw.headerDone {
		if err := tw.WriteHeader(); err != nil {
			return err
		}
	}

	row := []string{
		task.Task,
		task.Phase,
		task.Start.Format(tw.config.DateFormat),
		task.Finish.Format(tw.config.DateFormat),
		task.Gate,
	}
	if err := tw.writer.Write(row); err != nil {
		return errors.ExportWrap(err, errors.ErrExportCSVFailed, "write CSV row")
	}

	tw.rowsWritten++
	return nil
}

// WriteAll writes every task in order.
func (tw *TimelineCSVWriter) WriteAll(tasks []proposal.TimelineTask) error {
	for _, task := range tasks {
		if err := tw.Write(task); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes buffered rows to the underlying writer.
func (tw *TimelineCSVWriter) Flush() error {
	tw.writer.Flush()
	if err := tw.writer.Error(); err != nil {
		return errors.ExportWrap(err, errors.ErrExportCSVFailed, "flush CSV writer")
	}
	return nil
}

// RowsWritten returns the number of data rows written, excluding the
// header.
func (tw *TimelineCSVWriter) RowsWritten() int {
	return tw.rowsWritten
}

// ExportTimelineToCSV writes tasks to w and flushes.
func ExportTimelineToCSV(w io.Writer, tasks []proposal.TimelineTask, config *CSVConfig) error {
	if len(tasks) == 0 {
		return errors.Export(errors.ErrExportNoData, "no timeline tasks to export")
	}

	writer := NewTimelineCSVWriter(w, config)
	if err := writer.WriteAll(tasks); err != nil {
		return err
	}
	return writer.Flush()
}

var metricsHeaders = []string{
	"program_name",
	"site_name",
	"pilot_days",
	"floors",
	"gaylords_per_floor_per_day",
	"workdays_per_month",
	"lbs_per_gaylord",
	"density_lb_ft3",
	"trailer_payload_lb",
	"sale_price_per_ton",
	"processing_cost_per_ton",
	"avoided_fee_per_ton",
	"contamination_target_pct",
	"payload_util_target_pct",
	"weigh_time_target_sec",
	"tons_per_month",
	"net_value_per_month",
	"payload_util_pct",
	"loads_per_month",
}

// ExportMetricsToCSV writes one wide row of assumptions and their
// derived metrics, for spreadsheet or pandas consumption.
func ExportMetricsToCSV(w io.Writer, a pilot.Assumptions, m pilot.Metrics, config *CSVConfig) error {
	if config == nil {
		config = DefaultCSVConfig()
	}

	cw := csv.NewWriter(w)
	if config.Dialect == DialectTSV {
		cw.Comma = '\t'
	}

	p := config.Precision
	row := []string{
		a.ProgramName,
		a.SiteName,
		strconv.Itoa(a.PilotDays),
		strconv.Itoa(a.Floors),
		strconv.Itoa(a.GaylordsPerFloorPerDay),
		strconv.Itoa(a.WorkdaysPerMonth),
		strconv.Itoa(a.LbsPerGaylord),
		formatFloat(a.DensityLbFt3, p),
		formatFloat(a.TrailerPayloadLb, p),
		formatFloat(a.SalePricePerTon, p),
		formatFloat(a.ProcessingCostPerTon, p),
		formatFloat(a.AvoidedFeePerTon, p),
		formatFloat(a.ContaminationTargetPct, p),
		formatFloat(a.PayloadUtilTargetPct, p),
		formatFloat(a.WeighTimeTargetSec, p),
		formatFloat(m.TonsPerMonth, p),
		formatFloat(m.NetValuePerMonth, p),
		formatFloat(m.PayloadUtilPct, p),
		formatFloat(m.LoadsPerMonth, p),
	}

	if config.IncludeHeader {
		if err := cw.Write(metricsHeaders); err != nil {
			return errors.ExportWrap(err, errors.ErrExportCSVFailed, "write CSV header")
		}
	}
	if err := cw.Write(row); err != nil {
		return errors.ExportWrap(err, errors.ErrExportCSVFailed, "write CSV row")
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.ExportWrap(err, errors.ErrExportCSVFailed, "flush CSV writer")
	}
	return nil
}

func formatFloat(f float64, precision int) string {
	return strconv.FormatFloat(f, 'f', precision, 64)
}
