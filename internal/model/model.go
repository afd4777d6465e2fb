// Package model defines the shared data types for the anonymization core:
// the DataType/AnonymizationMode enumerations, the Profile configuration
// bundle, the vault's on-disk entry shape, and the row/cell types the
// processor operates over.
package model

import "time"

// DataType is the closed enumeration of semantic column types the
// classifier can assign.
type DataType int

const (
	Unknown DataType = iota
	Email
	Phone
	Name
	UUID
	IBAN
	CreditCard
	ABN
	Address
	Date
	NumericID
	Domain
	FreeText
)

// String returns the canonical uppercase name of the data type, as used
// in vault rows and error messages.
func (d DataType) String() string {
	switch d {
	case Email:
		return "EMAIL"
	case Phone:
		return "PHONE"
	case Name:
		return "NAME"
	case UUID:
		return "UUID"
	case IBAN:
		return "IBAN"
	case CreditCard:
		return "CREDIT_CARD"
	case ABN:
		return "ABN"
	case Address:
		return "ADDRESS"
	case Date:
		return "DATE"
	case NumericID:
		return "NUMERIC_ID"
	case Domain:
		return "DOMAIN"
	case FreeText:
		return "FREE_TEXT"
	default:
		return "UNKNOWN"
	}
}

// AnonymizationMode is the closed enumeration of transformation
// strategies a Profile selects between.
type AnonymizationMode int

const (
	Fake AnonymizationMode = iota
	FPE
	HMAC
	Hybrid
)

// String returns the canonical name of the mode.
func (m AnonymizationMode) String() string {
	switch m {
	case Fake:
		return "FAKE"
	case FPE:
		return "FPE"
	case HMAC:
		return "HMAC"
	case Hybrid:
		return "HYBRID"
	default:
		return "UNKNOWN"
	}
}

// Profile is the configuration bundle that drives a single anonymization
// session. It is immutable once a session starts.
type Profile struct {
	Name                 string
	Mode                 AnonymizationMode
	Seed                 string
	PreserveDomain       bool
	FullySynthetic       bool
	ReferentialIntegrity bool
}

// VaultEntry is the tuple stored per mapping. Ciphertexts are opaque
// AEAD blobs; only HashKey is derived deterministically.
type VaultEntry struct {
	HashKey              string
	CiphertextOriginal   []byte
	CiphertextAnonymized []byte
	DataType             string
	ColumnName           string
	RuleVersion          string
	CreatedAt            time.Time
}

// Cell is a single typed value in a row. A nil Value represents SQL NULL,
// distinct from an empty string.
type Cell struct {
	Column string
	Value  *string
}

// Row is an ordered collection of cells.
type Row []Cell

// Table is a collection of rows sharing the same column set, used by
// the processor and by tests/examples. Columns lists the column names
// in order.
type Table struct {
	Columns []string
	Rows    []Row
}
