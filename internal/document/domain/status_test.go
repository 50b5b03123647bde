package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteLifecycle(t *testing.T) {
	assert.True(t, CanTransition(KindQuote, StatusDraft, StatusSent))
	assert.True(t, CanTransition(KindQuote, StatusSent, StatusAccepted))
	assert.True(t, CanTransition(KindQuote, StatusSent, StatusRejected))
	assert.True(t, CanTransition(KindQuote, StatusAccepted, StatusInvoiced))

	assert.False(t, CanTransition(KindQuote, StatusDraft, StatusAccepted))
	assert.False(t, CanTransition(KindQuote, StatusRejected, StatusSent))
	assert.False(t, CanTransition(KindQuote, StatusDraft, StatusIssued))
}

func TestInvoiceLifecycle(t *testing.T) {
	assert.True(t, CanTransition(KindInvoice, StatusDraft, StatusIssued))
	assert.True(t, CanTransition(KindInvoice, StatusIssued, StatusPaid))
	assert.True(t, CanTransition(KindInvoice, StatusIssued, StatusVoid))

	assert.False(t, CanTransition(KindInvoice, StatusDraft, StatusPaid))
	assert.False(t, CanTransition(KindInvoice, StatusPaid, StatusIssued))
	assert.False(t, CanTransition(KindInvoice, StatusVoid, StatusIssued))
}

func TestPurchaseOrderLifecycle(t *testing.T) {
	assert.True(t, CanTransition(KindPurchaseOrder, StatusDraft, StatusSent))
	assert.True(t, CanTransition(KindPurchaseOrder, StatusSent, StatusReceived))
	assert.True(t, CanTransition(KindPurchaseOrder, StatusSent, StatusCancelled))

	assert.False(t, CanTransition(KindPurchaseOrder, StatusSent, StatusPaid))
	assert.False(t, CanTransition(KindPurchaseOrder, StatusReceived, StatusDraft))
}

func TestTerminalAndEditable(t *testing.T) {
	assert.True(t, StatusDraft.Editable())
	assert.False(t, StatusSent.Editable())
	assert.False(t, StatusIssued.Editable())

	assert.True(t, Terminal(KindQuote, StatusRejected))
	assert.True(t, Terminal(KindQuote, StatusInvoiced))
	assert.True(t, Terminal(KindInvoice, StatusPaid))
	assert.False(t, Terminal(KindInvoice, StatusIssued))
	assert.True(t, Terminal(KindPurchaseOrder, StatusCancelled))
}
