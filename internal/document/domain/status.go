package domain

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSent      Status = "SENT"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusInvoiced  Status = "INVOICED"
	StatusIssued    Status = "ISSUED"
	StatusPaid      Status = "PAID"
	StatusVoid      Status = "VOID"
	StatusReceived  Status = "RECEIVED"
	StatusCancelled Status = "CANCELLED"
)

// transitions is the per-kind lifecycle graph. A transition absent from
// the map is rejected.
var transitions = map[Kind]map[Status][]Status{
	KindQuote: {
		StatusDraft:    {StatusSent},
		StatusSent:     {StatusAccepted, StatusRejected},
		StatusAccepted: {StatusInvoiced},
	},
	KindInvoice: {
		StatusDraft:  {StatusIssued},
		StatusIssued: {StatusPaid, StatusVoid},
	},
	KindPurchaseOrder: {
		StatusDraft: {StatusSent},
		StatusSent:  {StatusReceived, StatusCancelled},
	},
}

// CanTransition reports whether a document of the given kind may move
// from one status to another.
func CanTransition(kind Kind, from, to Status) bool {
	for _, next := range transitions[kind][from] {
		if next == to {
			return true
		}
	}
	return false
}

// Editable reports whether lines may still be changed. Only drafts are
// editable; issued numbers and totals are immutable history.
func (s Status) Editable() bool {
	return s == StatusDraft
}

// Terminal reports whether any further transition exists for the status
// under the given kind.
func Terminal(kind Kind, s Status) bool {
	return len(transitions[kind][s]) == 0
}
