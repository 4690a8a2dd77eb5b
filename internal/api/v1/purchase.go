package v1

import (
	"encoding/json"
)

// RawPurchaseRow is one sold line item as reported by a device.
//
// Devices are loose about types: transaction ids arrive as strings or numbers and
// timestamps as epoch-millisecond numbers or numeric strings, sometimes with a fractional
// part. Those fields are kept raw here and normalized by the ingestion grouper, which
// drops rows it cannot interpret instead of failing the whole batch.
type RawPurchaseRow struct {
	// TransactionID is stable across redeliveries of the same sale.
	TransactionID json.RawMessage `json:"transactionId,omitempty"`

	// LegacyID carries the transaction id for devices that still send "id".
	LegacyID json.RawMessage `json:"id,omitempty"`

	Email     string          `json:"email,omitempty"`
	Timestamp json.RawMessage `json:"timestamp,omitempty"`
	Item      string          `json:"item"`
	Quantity  json.RawMessage `json:"quantity,omitempty"`
	Price     json.RawMessage `json:"price,omitempty"` // minor currency units
}

// TransactionRef returns the raw transaction id, falling back to the legacy field.
func (r RawPurchaseRow) TransactionRef() json.RawMessage {
	if len(r.TransactionID) > 0 && string(r.TransactionID) != "null" {
		return r.TransactionID
	}
	return r.LegacyID
}

// PurchaseReply is the device's answer to a "get_purchases" request.
type PurchaseReply struct {
	Data []RawPurchaseRow `json:"data"`
}
