// Package pilot models the editable assumptions behind a strap
// diversion pilot and the monthly metrics derived from them.
package pilot

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dsgeops/pilotdeck/pkg/errors"
)

// Assumptions are the inputs a proposal is computed from. Zero values
// fail validation; start from Default.
type Assumptions struct {
	ProgramName string `yaml:"program_name" json:"program_name"`
	SiteName    string `yaml:"site_name" json:"site_name"`

	PilotDays              int `yaml:"pilot_days" json:"pilot_days"`
	Floors                 int `yaml:"floors" json:"floors"`
	GaylordsPerFloorPerDay int `yaml:"gaylords_per_floor_per_day" json:"gaylords_per_floor_per_day"`
	WorkdaysPerMonth       int `yaml:"workdays_per_month" json:"workdays_per_month"`
	LbsPerGaylord          int `yaml:"lbs_per_gaylord" json:"lbs_per_gaylord"`

	DensityLbFt3     float64 `yaml:"density_lb_ft3" json:"density_lb_ft3"`
	TrailerPayloadLb float64 `yaml:"trailer_payload_lb" json:"trailer_payload_lb"`

	SalePricePerTon      float64 `yaml:"sale_price_per_ton" json:"sale_price_per_ton"`
	ProcessingCostPerTon float64 `yaml:"processing_cost_per_ton" json:"processing_cost_per_ton"`
	AvoidedFeePerTon     float64 `yaml:"avoided_fee_per_ton" json:"avoided_fee_per_ton"`

	ContaminationTargetPct float64 `yaml:"contamination_target_pct" json:"contamination_target_pct"`
	PayloadUtilTargetPct   float64 `yaml:"payload_util_target_pct" json:"payload_util_target_pct"`
	WeighTimeTargetSec     float64 `yaml:"weigh_time_target_sec" json:"weigh_time_target_sec"`

	ProjectStart time.Time `yaml:"project_start" json:"project_start"`
}

// Default returns the baseline assumptions for a single-site pilot.
func Default() Assumptions {
	return Assumptions{
		ProgramName:            "Circular Strap Diversion Pilot",
		SiteName:               "4-floor facility (pilot)",
		PilotDays:              90,
		Floors:                 4,
		GaylordsPerFloorPerDay: 20,
		WorkdaysPerMonth:       20,
		LbsPerGaylord:          100,
		DensityLbFt3:           25.0,
		TrailerPayloadLb:       44000.0,
		SalePricePerTon:        300.0,
		ProcessingCostPerTon:   60.0,
		AvoidedFeePerTon:       50.0,
		ContaminationTargetPct: 12.0,
		PayloadUtilTargetPct:   85.0,
		WeighTimeTargetSec:     10.0,
		ProjectStart:           time.Now().UTC().Truncate(24 * time.Hour),
	}
}

// Validate checks every field against the bounds in the field table.
func (a Assumptions) Validate() error {
	if strings.TrimSpace(a.ProgramName) == "" {
		return errors.Validation(errors.ErrValidationRequired, "program name must not be empty")
	}
	if strings.TrimSpace(a.SiteName) == "" {
		return errors.Validation(errors.ErrValidationRequired, "site name must not be empty")
	}

	for _, f := range fieldTable {
		if !f.Bounded() {
			continue
		}
		v, _ := a.numeric(f.Name)
		if v < f.Min || v > f.Max {
			return errors.OutOfRange(f.Name, v, f.Min, f.Max)
		}
	}
	return nil
}

// Load reads assumptions from a YAML file. Fields absent from the
// file keep their defaults; the result is validated before return.
func Load(path string) (Assumptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Assumptions{}, errors.IOWrapf(err, errors.ErrIOReadFailed, "read assumptions file %s", path)
	}

	a := Default()
	if err := yaml.Unmarshal(data, &a); err != nil {
		return Assumptions{}, errors.ConfigWrapf(err, errors.ErrConfigParseFailed, "parse assumptions file %s", path)
	}
	if err := a.Validate(); err != nil {
		return Assumptions{}, err
	}
	return a, nil
}

// LoadOrDefault loads assumptions from path, or returns defaults when
// path is empty or the file does not exist.
func LoadOrDefault(path string) (Assumptions, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Save writes assumptions as YAML, creating parent directories.
func (a Assumptions) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.IOWrapf(err, errors.ErrIOWriteFailed, "create directory %s", dir)
	}

	data, err := yaml.Marshal(a)
	if err != nil {
		return errors.ConfigWrap(err, errors.ErrConfigWriteFailed, "marshal assumptions")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.IOWrapf(err, errors.ErrIOWriteFailed, "write assumptions file %s", path)
	}
	return nil
}
