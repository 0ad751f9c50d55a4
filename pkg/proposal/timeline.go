package proposal

import "time"

// TimelineTask is one DMAIC phase activity with its decision gate.
type TimelineTask struct {
	Task   string    `json:"task" yaml:"task"`
	Phase  string    `json:"phase" yaml:"phase"`
	Start  time.Time `json:"start" yaml:"start"`
	Finish time.Time `json:"finish" yaml:"finish"`
	Gate   string    `json:"gate" yaml:"gate"`
}

// Timeline lays the DMAIC tasks onto week offsets from start. Phases
// overlap deliberately: each gate closes before the next phase's main
// work begins.
func Timeline(start time.Time) []TimelineTask {
	w := func(weeks int) time.Time { return start.AddDate(0, 0, 7*weeks) }
	return []TimelineTask{
		{"DEFINE • Charter + CTQs + SIPOC", "DEFINE", w(0), w(2), "Gate: Sponsor approval"},
		{"DEFINE • Safety + Legal boundaries", "DEFINE", w(1), w(3), "Gate: Sign-offs"},
		{"MEASURE • Baseline + Data Plan", "MEASURE", w(2), w(5), "Gate: Baseline report"},
		{"MEASURE • MSA (Measurement System Analysis)", "MEASURE", w(3), w(6), "Gate: Gage R&R acceptable"},
		{"ANALYZE • Capability + Root Cause", "ANALYZE", w(5), w(8), "Gate: Verified drivers"},
		{"IMPROVE • Pilot Solutions + DOE", "IMPROVE", w(8), w(12), "Gate: Verified improvement"},
		{"CONTROL • Control Plan + SPC", "CONTROL", w(12), w(13), "Gate: Sustainment ready"},
	}
}
