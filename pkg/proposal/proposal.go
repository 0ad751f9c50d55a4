// Package proposal holds the pilot proposal content catalog: the PDF
// section text, the work breakdown structure, the DMAIC timeline, and
// the CTQ table, all derived from a set of pilot assumptions.
package proposal

import (
	"fmt"

	"github.com/dsgeops/pilotdeck/pkg/pilot"
	"github.com/dsgeops/pilotdeck/pkg/report"
)

// WatermarkText is the default stamp on every rendered page.
const WatermarkText = "property of DSGE, Region V fouo"

// BuildSpec assembles the renderable proposal for the given
// assumptions and their derived metrics. Callers that need a
// different watermark overwrite WatermarkText on the result.
func BuildSpec(a pilot.Assumptions, m pilot.Metrics) report.ReportSpec {
	return report.ReportSpec{
		Title:         fmt.Sprintf("%s • Pilot Proposal (%s)", a.ProgramName, a.SiteName),
		WatermarkText: WatermarkText,
		Sections:      Sections(a, m),
	}
}

// Sections returns the six proposal sections in render order.
func Sections(a pilot.Assumptions, m pilot.Metrics) []report.Section {
	return []report.Section{
		{
			Heading: "Executive Summary",
			Bullets: []string{
				fmt.Sprintf("Request approval for a %d-day controlled pilot under DMAIC (Define, Measure, Analyze, Improve, Control).", a.PilotDays),
				"No disruption to fulfillment operations; pilot boundaries are defined.",
				"Safety-positive controls: cutters-only, PPE (Personal Protective Equipment), housekeeping, and trailer securement (block & brace).",
				"Measurement credibility: MSA (Measurement System Analysis) before external claims.",
				"Clear exit criteria and end-of-pilot decision gate: expand / revise / stop.",
			},
		},
		{
			Heading: "Scope",
			Bullets: []string{
				"In scope: straps only; single site pilot; collection → consolidation → compaction → weighing → staging → shipping.",
				"Out of scope: other plastics, capital build-out, long-term contracts, full manufacturing expansion.",
			},
		},
		{
			Heading: "WBS Summary",
			Bullets: []string{
				"Program Management, DEFINE, MEASURE, ANALYZE, IMPROVE, CONTROL work packages with owners and reaction plans.",
			},
		},
		{
			Heading: "CTQs (Critical to Quality)",
			Bullets: []string{
				fmt.Sprintf("Contamination ≤ %.1f%%", a.ContaminationTargetPct),
				fmt.Sprintf("Payload utilization ≥ %.0f%%", a.PayloadUtilTargetPct),
				fmt.Sprintf("Weigh time ≤ %.0f sec", a.WeighTimeTargetSec),
				"Safety incidents = 0",
				"Net value trend ≥ break-even",
			},
		},
		{
			Heading: "Pilot Snapshot (Assumption-Based)",
			Bullets: []string{
				"Estimated tons/month: " + pilot.FormatTons(m.TonsPerMonth),
				"Estimated net value/month: " + pilot.FormatCurrency(m.NetValuePerMonth),
				"Estimated payload utilization: " + pilot.FormatPercent(m.PayloadUtilPct),
				"Estimated loads/month: " + pilot.FormatCount(m.LoadsPerMonth),
			},
		},
		{
			Heading: "Abbreviations",
			Bullets: []string{
				"DMAIC – Define, Measure, Analyze, Improve, Control",
				"CTQ – Critical to Quality",
				"MSA – Measurement System Analysis",
				"SPC – Statistical Process Control",
				"DOE – Design of Experiments",
				"FMEA – Failure Modes and Effects Analysis",
				"ESG – Environmental, Social, and Governance",
				"Cp/Cpk – Process Capability (Potential/Actual)",
			},
		},
	}
}
