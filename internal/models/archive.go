package models

// ReportArchive is the persistence envelope for historical progress
// snapshots. The explicit version field leaves room for format changes.
type ReportArchive struct {
	Version int               `json:"version"`
	Reports []*ProgressReport `json:"reports"`
}
