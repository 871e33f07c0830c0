package bank

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAdapterForUnknownType(t *testing.T) {
	t.Parallel()

	_, err := AdapterFor(Type("sparkasse"), nil)
	require.ErrorIs(t, err, ErrUnsupportedBankType)

	_, err = AdapterFor(TypeOthers, nil)
	require.ErrorIs(t, err, ErrUnsupportedBankType, "others without mapping is unusable")
}

func TestCommerzbankNormalize(t *testing.T) {
	t.Parallel()

	adapt, err := AdapterFor(TypeCommerzbank, nil)
	require.NoError(t, err)

	p := adapt(Row{
		"Booking date": "05.01.2024",
		"Booking text": "REWE SAGT DANKE",
		"Amount":       "-23.45",
	}, "Jane")
	require.Equal(t, "05.01.2024", p.Date)
	require.Equal(t, "REWE SAGT DANKE", p.Description)
	require.True(t, p.Amount.Equal(decimal.RequireFromString("-23.45")))
	require.Equal(t, "Jane", p.AccountHolderName)
	require.Equal(t, "commerzbank", p.BankName)
}

func TestAdaptersDefaultMissingFields(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		bank    Type
		mapping *ColumnMapping
	}{
		{name: "commerzbank", bank: TypeCommerzbank},
		{name: "revolut", bank: TypeRevolut},
		{name: "wise", bank: TypeWise},
		{name: "others", bank: TypeOthers, mapping: &ColumnMapping{
			Date: "When", Description: "What", Amount: "How Much", BankName: "Bank",
		}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			adapt, err := AdapterFor(tc.bank, tc.mapping)
			require.NoError(t, err)

			p := adapt(Row{}, "Jane")
			require.Equal(t, NoDate, p.Date, "missing date defaults to sentinel, never empty")
			require.Equal(t, NoDescription, p.Description)
			require.True(t, p.Amount.IsZero())
		})
	}
}

func TestNamedBankAdaptersDoNotStripCommas(t *testing.T) {
	t.Parallel()

	adapt, err := AdapterFor(TypeCommerzbank, nil)
	require.NoError(t, err)

	// a decimal-comma cell must not be misread as -2345
	p := adapt(Row{"Amount": "-23,45"}, "Jane")
	require.True(t, p.Amount.IsZero(), "unparseable amount defaults to zero")

	p = adapt(Row{"Amount": "-23.45"}, "Jane")
	require.True(t, p.Amount.Equal(decimal.RequireFromString("-23.45")))
}

func TestWiseDescriptionFallsBackToReference(t *testing.T) {
	t.Parallel()

	adapt, err := AdapterFor(TypeWise, nil)
	require.NoError(t, err)

	p := adapt(Row{
		"Finished on":                "2024-02-01",
		"Target name":                "ACME GmbH",
		"Reference":                  "INV-42",
		"Source amount (after fees)": "120.00",
	}, "Jane")
	require.Equal(t, "ACME GmbH", p.Description)

	p = adapt(Row{
		"Finished on": "2024-02-01",
		"Reference":   "INV-42",
	}, "Jane")
	require.Equal(t, "INV-42", p.Description)
}

func TestGenericAdapterDebitNegation(t *testing.T) {
	t.Parallel()

	mapping := &ColumnMapping{
		Date:            "Txn Date",
		Description:     "Narration",
		Amount:          "Amount",
		TransactionType: "Dr/Cr",
		BankName:        "Bank",
	}
	adapt, err := AdapterFor(TypeOthers, mapping)
	require.NoError(t, err)

	p := adapt(Row{
		"Txn Date":  "01/02/2024",
		"Narration": "UPI PAYMENT GROCERY",
		"Amount":    "1,234.56",
		"Dr/Cr":     "DEBIT",
		"Bank":      "HDFC",
	}, "Jane")
	require.True(t, p.Amount.Equal(decimal.RequireFromString("-1234.56")),
		"debit marker negates positive amount after stripping thousands separators")
	require.Equal(t, "HDFC", p.BankName)

	p = adapt(Row{
		"Amount": "2,500.00",
		"Dr/Cr":  "credit",
	}, "Jane")
	require.True(t, p.Amount.Equal(decimal.RequireFromString("2500.00")))

	p = adapt(Row{
		"Amount": "-99.10",
		"Dr/Cr":  "debit",
	}, "Jane")
	require.True(t, p.Amount.Equal(decimal.RequireFromString("-99.10")),
		"already-negative amounts are not double negated")
}
