package types

import "time"

// ItemStatus describes what happened to, or the state of, one path.
type ItemStatus string

const (
	StatusAdded     ItemStatus = "added"
	StatusUpdated   ItemStatus = "updated"
	StatusUnchanged ItemStatus = "unchanged"
	StatusRemoved   ItemStatus = "removed"
	StatusIgnored   ItemStatus = "ignored"
	StatusProtected ItemStatus = "protected"
	StatusMissing   ItemStatus = "missing"
	StatusTracked   ItemStatus = "tracked"
	StatusModified  ItemStatus = "modified"
	StatusDeleted   ItemStatus = "deleted"
)

// ReportItem is one line of a command report.
type ReportItem struct {
	Path   string     `json:"path"`
	Status ItemStatus `json:"status"`
	Note   string     `json:"note,omitempty"`
}

// CommitSummary identifies the commit a command created.
type CommitSummary struct {
	Hash    string    `json:"hash"`
	Message string    `json:"message"`
	When    time.Time `json:"when"`
	Parents int       `json:"parents"`
}

// Report is what every command returns for rendering.
type Report struct {
	Command string         `json:"command"`
	Message string         `json:"message,omitempty"`
	Commit  *CommitSummary `json:"commit,omitempty"`
	Pushed  bool           `json:"pushed,omitempty"`
	Items   []ReportItem   `json:"items,omitempty"`
	Notices []string       `json:"notices,omitempty"`
}

// NewReport returns an empty report for command.
func NewReport(command string) *Report {
	return &Report{Command: command}
}

// AddItem appends an item to the report.
func (r *Report) AddItem(path string, status ItemStatus, note string) {
	r.Items = append(r.Items, ReportItem{Path: path, Status: status, Note: note})
}

// AddNotice appends a free-form notice.
func (r *Report) AddNotice(notice string) {
	r.Notices = append(r.Notices, notice)
}

// Count returns how many items carry status.
func (r *Report) Count(status ItemStatus) int {
	n := 0
	for _, it := range r.Items {
		if it.Status == status {
			n++
		}
	}
	return n
}
