// Package lineitem maps remote table-store records to the typed line-item
// model and performs the one mutation this system makes: marking items
// invoiced.
package lineitem

import "time"

// Status is the delivery status of a line item.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusSubmitted  Status = "submitted"
	StatusRevising   Status = "revising"
	StatusDelivered  Status = "delivered"
)

// statusLabels maps the remote select labels to statuses.
var statusLabels = map[string]Status{
	"未着手": StatusNotStarted,
	"進行中": StatusInProgress,
	"提出済": StatusSubmitted,
	"修正中": StatusRevising,
	"納品済": StatusDelivered,
}

// statusToLabel is the inverse of statusLabels.
var statusToLabel = map[Status]string{
	StatusNotStarted: "未着手",
	StatusInProgress: "進行中",
	StatusSubmitted:  "提出済",
	StatusRevising:   "修正中",
	StatusDelivered:  "納品済",
}

// ParseStatus converts a remote select label to a Status. Unknown labels map
// to StatusNotStarted.
func ParseStatus(label string) Status {
	if st, ok := statusLabels[label]; ok {
		return st
	}
	return StatusNotStarted
}

// Label returns the remote select label for the status.
func (s Status) Label() string {
	return statusToLabel[s]
}

// LineItem is one billable unit of agency work.
type LineItem struct {
	ID           string
	ProjectName  string
	ContentType  string
	Quantity     int64
	UnitPrice    int64 // yen
	Amount       int64 // always Quantity * UnitPrice, recomputed on decode
	ScheduledAt  *time.Time
	SubmittedAt  *time.Time
	Status       Status
	Client       string
	Invoiced     bool
	InvoicedAt   *time.Time // present iff Invoiced
	Notes        string
	InvoiceMonth string // optional label; derived from SubmittedAt when absent
}

// MonthLabel formats a time as the billing-month label used throughout the
// system. The zero-padded, year-first format is a contract: group sorting
// compares these labels as strings.
func MonthLabel(t time.Time) string {
	return t.Format("2006年01月")
}

// ResolveMonth returns the item's billing month: its InvoiceMonth label if
// present, else the label of its submission date, else the label of now.
func (li LineItem) ResolveMonth(now time.Time) string {
	if li.InvoiceMonth != "" {
		return li.InvoiceMonth
	}
	if li.SubmittedAt != nil {
		return MonthLabel(*li.SubmittedAt)
	}
	return MonthLabel(now)
}
