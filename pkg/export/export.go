// Package export writes the artifacts derived from a rendered
// proposal: the watermarked PDF download identity, timeline and
// metrics CSV files, and a JSON provenance manifest.
package export

// Download identity of the rendered proposal. Fixed so repeated
// exports overwrite rather than accumulate.
const (
	Filename = "DSGE_Pilot_Proposal_Watermarked.pdf"
	MimeType = "application/pdf"
)

// Download identity of the timeline CSV.
const (
	TimelineFilename = "pilot_timeline.csv"
	TimelineMimeType = "text/csv"
)
