package proposal

import (
	"fmt"

	"github.com/dsgeops/pilotdeck/pkg/pilot"
)

// CTQ is one critical-to-quality row: the target, who owns it, and
// the reaction plan when the metric breaks.
type CTQ struct {
	Name     string `json:"name" yaml:"name"`
	Target   string `json:"target" yaml:"target"`
	Owner    string `json:"owner" yaml:"owner"`
	Reaction string `json:"reaction" yaml:"reaction"`
}

// CTQTable returns the five CTQ rows with targets interpolated from a.
func CTQTable(a pilot.Assumptions) []CTQ {
	return []CTQ{
		{"Contamination %", fmt.Sprintf("≤ %.1f%%", a.ContaminationTargetPct), "Ops Lead", "Retrain + audit + Pareto"},
		{"Payload utilization %", fmt.Sprintf("≥ %.0f%%", a.PayloadUtilTargetPct), "Logistics", "Tune compaction; verify density"},
		{"Weigh time (sec)", fmt.Sprintf("≤ %.0f", a.WeighTimeTargetSec), "Supervisor", "Automate weigh; remove queues"},
		{"Safety incidents", "0", "Safety", "Stop & fix; SOP reinforcement"},
		{"Net value trend", "≥ break-even", "Finance", "Renegotiate; reduce handling; hold expansion"},
	}
}

// SuccessCriteria are the pass conditions evaluated at the end of the
// pilot.
func SuccessCriteria() []string {
	return []string{
		"CTQs meet target thresholds OR show clear trend to target by end of pilot",
		"No disruption to fulfillment operations (Ops confirms)",
		"Safety incidents remain at zero (Safety confirms)",
		"Measurement system validated (MSA – Measurement System Analysis acceptable)",
		"End-of-pilot gate recommendation supported with data",
	}
}

// ExitCriteria are the stop rules that end the pilot early.
func ExitCriteria() []string {
	return []string{
		"Any recordable safety incident tied to pilot activities",
		"Supplier rejection due to preventable contamination",
		"Sustained negative economics beyond predefined guardrail (Finance trigger)",
		"Verified operational disruption (Ops trigger)",
	}
}
