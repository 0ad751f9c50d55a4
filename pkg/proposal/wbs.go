package proposal

// WorkPackage is one numbered WBS group and its child items.
type WorkPackage struct {
	Name  string   `json:"name" yaml:"name"`
	Items []string `json:"items" yaml:"items"`
}

// WBS returns the six pilot work packages.
func WBS() []WorkPackage {
	return []WorkPackage{
		{
			Name: "1.0 Program Management",
			Items: []string{
				"1.1 Sponsor approval + charter sign-off",
				"1.2 Stakeholder alignment (Ops/Safety/Legal/Finance/ESG)",
				"1.3 Governance cadence + decision gates",
				"1.4 Risk register + pilot boundaries",
			},
		},
		{
			Name: "2.0 DEFINE",
			Items: []string{
				"2.1 SIPOC (Supplier-Input-Process-Output-Customer)",
				"2.2 CTQs (Critical to Quality) defined + targets",
				"2.3 Operational definitions (unit/defect/opportunity)",
				"2.4 Data plan + reporting cadence",
			},
		},
		{
			Name: "3.0 MEASURE",
			Items: []string{
				"3.1 Baseline tons/month + load count",
				"3.2 Baseline contamination sampling",
				"3.3 Baseline cycle time (weigh seconds per bale)",
				"3.4 MSA (Measurement System Analysis) – Gage R&R for weight system",
			},
		},
		{
			Name: "4.0 ANALYZE",
			Items: []string{
				"4.1 Capability (Cp/Cpk) for bale weight consistency (if bale data exists)",
				"4.2 Root cause (Pareto + cause-and-effect) for contamination & delays",
				"4.3 Cost/ton sensitivity: density, miles, handling time",
				"4.4 Hypothesis test: before vs after improvement (p-value)",
			},
		},
		{
			Name: "5.0 IMPROVE",
			Items: []string{
				"5.1 Standardize strap-only collection points",
				"5.2 Compaction tuning to raise density + reduce air hauling",
				"5.3 Weigh automation (forklift scale or load cells)",
				"5.4 Trailer staging: block & brace SOP to prevent tipping",
				"5.5 DOE (Design of Experiments) for compaction settings and bale targets",
				"5.6 Workforce training (levels 1–4)",
			},
		},
		{
			Name: "6.0 CONTROL",
			Items: []string{
				"6.1 Control plan + reaction plan",
				"6.2 SPC (Statistical Process Control) charts if time-series data exists",
				"6.3 Audit-ready reporting + monthly review",
				"6.4 Change management: approvals + versioning",
				"6.5 End-of-pilot executive gate: expand / revise / stop",
			},
		},
	}
}
