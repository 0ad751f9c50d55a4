package pilot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsgeops/pilotdeck/pkg/errors"
)

func TestDefaultAssumptionsValid(t *testing.T) {
	a := Default()
	require.NoError(t, a.Validate())

	assert.Equal(t, "Circular Strap Diversion Pilot", a.ProgramName)
	assert.Equal(t, "4-floor facility (pilot)", a.SiteName)
	assert.Equal(t, 90, a.PilotDays)
	assert.Equal(t, 4, a.Floors)
	assert.Equal(t, 44000.0, a.TrailerPayloadLb)
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Assumptions)
	}{
		{"pilot days low", func(a *Assumptions) { a.PilotDays = 29 }},
		{"pilot days high", func(a *Assumptions) { a.PilotDays = 181 }},
		{"floors low", func(a *Assumptions) { a.Floors = 0 }},
		{"floors high", func(a *Assumptions) { a.Floors = 21 }},
		{"gaylords high", func(a *Assumptions) { a.GaylordsPerFloorPerDay = 201 }},
		{"workdays high", func(a *Assumptions) { a.WorkdaysPerMonth = 32 }},
		{"lbs per gaylord high", func(a *Assumptions) { a.LbsPerGaylord = 2001 }},
		{"density low", func(a *Assumptions) { a.DensityLbFt3 = 0.5 }},
		{"density high", func(a *Assumptions) { a.DensityLbFt3 = 61 }},
		{"payload low", func(a *Assumptions) { a.TrailerPayloadLb = 999 }},
		{"payload high", func(a *Assumptions) { a.TrailerPayloadLb = 80001 }},
		{"sale price negative", func(a *Assumptions) { a.SalePricePerTon = -1 }},
		{"processing cost high", func(a *Assumptions) { a.ProcessingCostPerTon = 3001 }},
		{"avoided fee negative", func(a *Assumptions) { a.AvoidedFeePerTon = -0.5 }},
		{"contamination target low", func(a *Assumptions) { a.ContaminationTargetPct = 0.5 }},
		{"contamination target high", func(a *Assumptions) { a.ContaminationTargetPct = 51 }},
		{"payload target high", func(a *Assumptions) { a.PayloadUtilTargetPct = 101 }},
		{"weigh time high", func(a *Assumptions) { a.WeighTimeTargetSec = 121 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Default()
			tt.mutate(&a)
			err := a.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrValidationOutOfRange), "got %v", err)
		})
	}
}

func TestValidateRequiredNames(t *testing.T) {
	a := Default()
	a.ProgramName = "  "
	err := a.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrValidationRequired))

	a = Default()
	a.SiteName = ""
	err = a.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrValidationRequired))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "assumptions.yaml")

	saved := Default()
	saved.Floors = 7
	saved.SalePricePerTon = 410
	require.NoError(t, saved.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.True(t, loaded.ProjectStart.Equal(saved.ProjectStart))
	loaded.ProjectStart = time.Time{}
	saved.ProjectStart = time.Time{}
	assert.Equal(t, saved, loaded)
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("floors: 10\nsale_price_per_ton: 500\n"), 0644))

	a, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, a.Floors)
	assert.Equal(t, 500.0, a.SalePricePerTon)
	assert.Equal(t, 90, a.PilotDays)
	assert.Equal(t, 44000.0, a.TrailerPayloadLb)
}

func TestLoadRejectsOutOfRangeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("floors: 99\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrValidationOutOfRange))
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not valid: yaml: ["), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfigParseFailed))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrIOReadFailed))
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		a, err := LoadOrDefault("")
		require.NoError(t, err)
		assert.Equal(t, Default().ProgramName, a.ProgramName)
	})

	t.Run("missing file", func(t *testing.T) {
		a, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 4, a.Floors)
	})

	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "assumptions.yaml")
		a := Default()
		a.Floors = 12
		require.NoError(t, a.Save(path))

		got, err := LoadOrDefault(path)
		require.NoError(t, err)
		assert.Equal(t, 12, got.Floors)
	})
}
