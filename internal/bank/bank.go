package bank

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Type selects which adapter normalizes a raw CSV row.
type Type string

const (
	TypeCommerzbank Type = "commerzbank"
	TypeRevolut     Type = "revolut"
	TypeWise        Type = "wise"
	TypeOthers      Type = "others"
)

// Sentinel values used when an export row is missing required fields.
// Adapters default instead of erroring; a half-filled statement row is
// still a transaction the user wants to see.
const (
	NoDate        = "No Date"
	NoDescription = "No Description"
)

// ErrUnsupportedBankType is returned when no adapter exists for the
// requested bank type.
var ErrUnsupportedBankType = fmt.Errorf("unsupported bank type")

// Row is one parsed CSV row keyed by header name.
type Row map[string]string

// Payload is the canonical transaction shape every adapter produces.
// Dates stay in the bank-native string format as received.
type Payload struct {
	Date              string
	Description       string
	Amount            decimal.Decimal
	AccountHolderName string
	BankName          string
}

// ColumnMapping tells the generic adapter which raw CSV headers hold the
// canonical fields. TransactionType is optional; when the mapped column
// carries the debit marker the amount is negated.
type ColumnMapping struct {
	Date            string
	Description     string
	Amount          string
	TransactionType string
	BankName        string
}

// debitMarker flags an outgoing amount in generic exports.
const debitMarker = "debit"

// Adapter converts one raw row into the canonical payload. Adapters are
// pure; category assignment belongs to the pipeline, not here.
type Adapter func(row Row, accountHolderName string) Payload

// AdapterFor resolves the adapter for a bank type. The generic "others"
// type requires a column mapping.
func AdapterFor(t Type, mapping *ColumnMapping) (Adapter, error) {
	switch t {
	case TypeCommerzbank:
		return normalizeCommerzbank, nil
	case TypeRevolut:
		return normalizeRevolut, nil
	case TypeWise:
		return normalizeWise, nil
	case TypeOthers:
		if mapping == nil {
			return nil, fmt.Errorf("%w: %q requires a column mapping", ErrUnsupportedBankType, t)
		}
		m := *mapping
		return func(row Row, holder string) Payload {
			return normalizeMapped(row, holder, m)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBankType, t)
	}
}

func normalizeCommerzbank(row Row, holder string) Payload {
	return Payload{
		Date:              fieldOr(row, "Booking date", NoDate),
		Description:       fieldOr(row, "Booking text", NoDescription),
		Amount:            parseAmount(row["Amount"]),
		AccountHolderName: holder,
		BankName:          string(TypeCommerzbank),
	}
}

func normalizeRevolut(row Row, holder string) Payload {
	return Payload{
		Date:              fieldOr(row, "Completed Date", NoDate),
		Description:       fieldOr(row, "Description", NoDescription),
		Amount:            parseAmount(row["Amount"]),
		AccountHolderName: holder,
		BankName:          string(TypeRevolut),
	}
}

func normalizeWise(row Row, holder string) Payload {
	// Wise rows describe a transfer; the counterparty name is the most
	// useful description, with the reference as fallback.
	desc := strings.TrimSpace(row["Target name"])
	if desc == "" {
		desc = strings.TrimSpace(row["Reference"])
	}
	if desc == "" {
		desc = NoDescription
	}
	return Payload{
		Date:              fieldOr(row, "Finished on", NoDate),
		Description:       desc,
		Amount:            parseAmount(row["Source amount (after fees)"]),
		AccountHolderName: holder,
		BankName:          string(TypeWise),
	}
}

func normalizeMapped(row Row, holder string, m ColumnMapping) Payload {
	// Generic exports often carry thousands separators ("1,234.56");
	// the named-bank formats never do, and stripping commas there would
	// silently turn a decimal-comma cell into a wrong integer.
	amount := parseAmount(strings.ReplaceAll(row[m.Amount], ",", ""))
	if m.TransactionType != "" {
		kind := strings.ToLower(strings.TrimSpace(row[m.TransactionType]))
		if kind == debitMarker && amount.IsPositive() {
			amount = amount.Neg()
		}
	}
	bankName := strings.TrimSpace(row[m.BankName])
	if bankName == "" {
		bankName = string(TypeOthers)
	}
	return Payload{
		Date:              fieldOr(row, m.Date, NoDate),
		Description:       fieldOr(row, m.Description, NoDescription),
		Amount:            amount,
		AccountHolderName: holder,
		BankName:          bankName,
	}
}

func fieldOr(row Row, key, fallback string) string {
	if v := strings.TrimSpace(row[key]); v != "" {
		return v
	}
	return fallback
}

// parseAmount handles raw amount cells: blanks and garbage default to
// zero rather than failing the row.
func parseAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}
