package pricecharting

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 { return &v }

func TestOfferKey(t *testing.T) {
	require.Equal(t, "X123|9.99", Offer{
		SourceItemId: "X123",
		SourceUrl:    "https://example.com/offer/X123",
		PriceValue:   price(9.99),
	}.Key())

	// url stands in when the item id is missing
	require.Equal(t, "https://example.com/offer/q|", Offer{
		SourceUrl: "https://example.com/offer/q",
	}.Key())

	require.Equal(t, "", Offer{Name: "orphan"}.Key())
}

func TestDedup(t *testing.T) {
	offers := []Offer{
		{SourceItemId: "X123", Name: "Charizard #4", PriceValue: price(9.99)},
		{SourceItemId: "X123", Name: "Charizard  #4 ", PriceValue: price(9.99)},
		{SourceItemId: "X123", Name: "Charizard #4", PriceValue: price(12.50)},
		{SourceItemId: "", SourceUrl: "", Name: "keyless"},
		{SourceItemId: "Y456", Name: "Snorlax"},
	}

	out := Dedup(offers)
	require.Len(t, out, 3)
	// first occurrence wins, incidental whitespace differences collapse
	require.Equal(t, "Charizard #4", out[0].Name)
	require.Equal(t, "X123|9.99", out[0].Key())
	require.Equal(t, "X123|12.5", out[1].Key())
	require.Equal(t, "Y456|", out[2].Key())

	// idempotent
	require.Equal(t, out, Dedup(out))
}

func TestDedupKeepsOrder(t *testing.T) {
	offers := []Offer{
		{SourceItemId: "c"},
		{SourceItemId: "a"},
		{SourceItemId: "c"},
		{SourceItemId: "b"},
	}
	out := Dedup(offers)
	require.Equal(t, []string{"c|", "a|", "b|"}, []string{out[0].Key(), out[1].Key(), out[2].Key()})
}
