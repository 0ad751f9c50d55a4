package pilot

import (
	"strconv"
	"strings"
	"time"

	"github.com/dsgeops/pilotdeck/pkg/errors"
)

// FieldKind tells callers how a field parses and displays.
type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	KindFloat
	KindDate
)

// Field describes one editable assumption: the key used in YAML, JSON,
// and the shell, a human-readable label, its kind, and the bounds
// Validate enforces on numeric fields.
type Field struct {
	Name  string
	Label string
	Kind  FieldKind
	Min   float64
	Max   float64
}

// Bounded reports whether the field carries a numeric range.
func (f Field) Bounded() bool {
	return f.Kind == KindInt || f.Kind == KindFloat
}

// StartDateFormat is the layout project_start parses and prints with.
const StartDateFormat = "2006-01-02"

var fieldTable = []Field{
	{Name: "program_name", Label: "Program name", Kind: KindString},
	{Name: "site_name", Label: "Site name", Kind: KindString},
	{Name: "pilot_days", Label: "Pilot length (days)", Kind: KindInt, Min: 30, Max: 180},
	{Name: "floors", Label: "Floors", Kind: KindInt, Min: 1, Max: 20},
	{Name: "gaylords_per_floor_per_day", Label: "Gaylords per floor per day", Kind: KindInt, Min: 1, Max: 200},
	{Name: "workdays_per_month", Label: "Workdays per month", Kind: KindInt, Min: 1, Max: 31},
	{Name: "lbs_per_gaylord", Label: "Lbs per gaylord", Kind: KindInt, Min: 1, Max: 2000},
	{Name: "density_lb_ft3", Label: "Density (lb/ft3)", Kind: KindFloat, Min: 1, Max: 60},
	{Name: "trailer_payload_lb", Label: "Trailer payload (lb)", Kind: KindFloat, Min: 1000, Max: 80000},
	{Name: "sale_price_per_ton", Label: "Sale price ($/ton)", Kind: KindFloat, Min: 0, Max: 3000},
	{Name: "processing_cost_per_ton", Label: "Processing cost ($/ton)", Kind: KindFloat, Min: 0, Max: 3000},
	{Name: "avoided_fee_per_ton", Label: "Avoided fee ($/ton)", Kind: KindFloat, Min: 0, Max: 3000},
	{Name: "contamination_target_pct", Label: "Contamination target (%)", Kind: KindFloat, Min: 1, Max: 50},
	{Name: "payload_util_target_pct", Label: "Payload utilization target (%)", Kind: KindFloat, Min: 1, Max: 100},
	{Name: "weigh_time_target_sec", Label: "Weigh time target (sec)", Kind: KindFloat, Min: 1, Max: 120},
	{Name: "project_start", Label: "Project start", Kind: KindDate},
}

// Fields returns the editable assumption fields in declaration order.
func Fields() []Field {
	out := make([]Field, len(fieldTable))
	copy(out, fieldTable)
	return out
}

// FieldNames returns the field keys in declaration order.
func FieldNames() []string {
	names := make([]string, len(fieldTable))
	for i, f := range fieldTable {
		names[i] = f.Name
	}
	return names
}

// FieldByName looks up a field descriptor by key.
func FieldByName(name string) (Field, bool) {
	for _, f := range fieldTable {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Set parses raw and assigns it to the named field. Unknown names and
// unparseable values are rejected here; range checks belong to
// Validate so that callers can batch edits before validating.
func (a *Assumptions) Set(name, raw string) error {
	raw = strings.TrimSpace(raw)
	switch name {
	case "program_name":
		a.ProgramName = raw
	case "site_name":
		a.SiteName = raw
	case "pilot_days":
		return setInt(&a.PilotDays, name, raw)
	case "floors":
		return setInt(&a.Floors, name, raw)
	case "gaylords_per_floor_per_day":
		return setInt(&a.GaylordsPerFloorPerDay, name, raw)
	case "workdays_per_month":
		return setInt(&a.WorkdaysPerMonth, name, raw)
	case "lbs_per_gaylord":
		return setInt(&a.LbsPerGaylord, name, raw)
	case "density_lb_ft3":
		return setFloat(&a.DensityLbFt3, name, raw)
	case "trailer_payload_lb":
		return setFloat(&a.TrailerPayloadLb, name, raw)
	case "sale_price_per_ton":
		return setFloat(&a.SalePricePerTon, name, raw)
	case "processing_cost_per_ton":
		return setFloat(&a.ProcessingCostPerTon, name, raw)
	case "avoided_fee_per_ton":
		return setFloat(&a.AvoidedFeePerTon, name, raw)
	case "contamination_target_pct":
		return setFloat(&a.ContaminationTargetPct, name, raw)
	case "payload_util_target_pct":
		return setFloat(&a.PayloadUtilTargetPct, name, raw)
	case "weigh_time_target_sec":
		return setFloat(&a.WeighTimeTargetSec, name, raw)
	case "project_start":
		t, err := time.Parse(StartDateFormat, raw)
		if err != nil {
			return errors.Validationf(errors.ErrValidationInvalidValue,
				"%s expects a %s date, got %q", name, StartDateFormat, raw).
				WithContext("field", name).
				WithCause(err)
		}
		a.ProjectStart = t
	default:
		return errors.UnknownField(name)
	}
	return nil
}

// Value returns the named field formatted for display. The second
// return is false for unknown names.
func (a Assumptions) Value(name string) (string, bool) {
	switch name {
	case "program_name":
		return a.ProgramName, true
	case "site_name":
		return a.SiteName, true
	case "pilot_days":
		return strconv.Itoa(a.PilotDays), true
	case "floors":
		return strconv.Itoa(a.Floors), true
	case "gaylords_per_floor_per_day":
		return strconv.Itoa(a.GaylordsPerFloorPerDay), true
	case "workdays_per_month":
		return strconv.Itoa(a.WorkdaysPerMonth), true
	case "lbs_per_gaylord":
		return strconv.Itoa(a.LbsPerGaylord), true
	case "density_lb_ft3":
		return formatFloat(a.DensityLbFt3), true
	case "trailer_payload_lb":
		return formatFloat(a.TrailerPayloadLb), true
	case "sale_price_per_ton":
		return formatFloat(a.SalePricePerTon), true
	case "processing_cost_per_ton":
		return formatFloat(a.ProcessingCostPerTon), true
	case "avoided_fee_per_ton":
		return formatFloat(a.AvoidedFeePerTon), true
	case "contamination_target_pct":
		return formatFloat(a.ContaminationTargetPct), true
	case "payload_util_target_pct":
		return formatFloat(a.PayloadUtilTargetPct), true
	case "weigh_time_target_sec":
		return formatFloat(a.WeighTimeTargetSec), true
	case "project_start":
		return a.ProjectStart.Format(StartDateFormat), true
	default:
		return "", false
	}
}

// numeric returns the value of a bounded field.
func (a Assumptions) numeric(name string) (float64, bool) {
	switch name {
	case "pilot_days":
		return float64(a.PilotDays), true
	case "floors":
		return float64(a.Floors), true
	case "gaylords_per_floor_per_day":
		return float64(a.GaylordsPerFloorPerDay), true
	case "workdays_per_month":
		return float64(a.WorkdaysPerMonth), true
	case "lbs_per_gaylord":
		return float64(a.LbsPerGaylord), true
	case "density_lb_ft3":
		return a.DensityLbFt3, true
	case "trailer_payload_lb":
		return a.TrailerPayloadLb, true
	case "sale_price_per_ton":
		return a.SalePricePerTon, true
	case "processing_cost_per_ton":
		return a.ProcessingCostPerTon, true
	case "avoided_fee_per_ton":
		return a.AvoidedFeePerTon, true
	case "contamination_target_pct":
		return a.ContaminationTargetPct, true
	case "payload_util_target_pct":
		return a.PayloadUtilTargetPct, true
	case "weigh_time_target_sec":
		return a.WeighTimeTargetSec, true
	}
	return 0, false
}

func setInt(dst *int, name, raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return errors.Validationf(errors.ErrValidationInvalidValue,
			"%s expects a whole number, got %q", name, raw).
			WithContext("field", name).
			WithCause(err)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, name, raw string) error {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return errors.Validationf(errors.ErrValidationInvalidValue,
			"%s expects a number, got %q", name, raw).
			WithContext("field", name).
			WithCause(err)
	}
	*dst = v
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
