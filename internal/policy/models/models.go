// Package models defines the policy and claim wire records. JSON field names
// follow the original chaincode schema (Titular, Tipo, Valor, ...) so records
// written here stay readable by systems that interoperate with it.
//
// Timestamps are RFC3339 strings and numeric fields are decimal strings:
// records must round-trip byte-for-byte through the ledger, and neither
// time.Time zero values nor float64 survive that.
package models

import "encoding/json"

// Status is the lifecycle state of a policy.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCancelled Status = "CANCELLED"
)

// ClaimStatus is the lifecycle state of a claim. PENDING is set at
// registration; processing may assign any outcome string (APPROVED,
// REJECTED, ...), so only the initial state is enumerated here.
type ClaimStatus string

const ClaimStatusPending ClaimStatus = "PENDING"

// Policy is one insurance contract, stored as a single ledger entry under its
// ID. Claims are embedded; they are never independent ledger keys.
type Policy struct {
	ID                 string  `json:"ID"`
	Holder             string  `json:"Titular"`
	Kind               string  `json:"Tipo"`
	InsuredValue       string  `json:"Valor"`
	TermMonths         string  `json:"Duracion"`
	Status             Status  `json:"Estado"`
	CreatedAt          string  `json:"FechaCreacion"`
	RenewedAt          string  `json:"FechaRenovacion,omitempty"`
	CancellationReason string  `json:"MotivoCancelacion,omitempty"`
	CancelledAt        string  `json:"FechaCancelacion,omitempty"`
	Claims             []Claim `json:"Reclamaciones"`
}

// Claim is one filed claim against its parent policy. Order within
// Policy.Claims is filing order and is significant: duplicate claim IDs are
// resolved first-match-wins during processing.
type Claim struct {
	ID          string      `json:"ID"`
	Description string      `json:"Descripcion"`
	Amount      string      `json:"Monto"`
	Status      ClaimStatus `json:"Estado"`
	FiledAt     string      `json:"FechaRegistro"`
	Comment     string      `json:"Comentario,omitempty"`
	ProcessedAt string      `json:"FechaProcesamiento,omitempty"`
}

// HistoryEntry is one committed version of a policy key, oldest-first in the
// projection returned by the history reader.
type HistoryEntry struct {
	TxID      string       `json:"TxId"`
	Timestamp string       `json:"Timestamp"`
	IsDelete  bool         `json:"IsDelete"`
	Value     HistoryValue `json:"Value"`
}

// HistoryValue is a tagged variant: Record when the stored bytes decode as a
// policy, Raw otherwise. Exactly one side is set.
type HistoryValue struct {
	Record *Policy
	Raw    string
}

// Structured reports whether the entry decoded as a policy record.
func (v HistoryValue) Structured() bool {
	return v.Record != nil
}

func (v HistoryValue) MarshalJSON() ([]byte, error) {
	if v.Record != nil {
		return json.Marshal(v.Record)
	}
	return json.Marshal(v.Raw)
}
