package pricecharting

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const listingFixture = `
<html><body>
<table class="selling_table">
<tr><th>Photo</th><th>Card</th><th>Price</th></tr>
<tr data-offer-id="X123">
  <td class="photo"><img src="https://images.example.com/cards/abc/60.jpg" data-src="https://images.example.com/cards/abc/180.jpg"></td>
  <td class="meta">
    <p class="title">Base Set <a href="/offer/X123">Charizard #4</a> <a href="/game/base-set">set page</a></p>
  </td>
  <td class="price"> $9.99 </td>
</tr>
<tr>
  <td class="photo"><img src="https://images.example.com/cards/def.jpg?w=60"></td>
  <td class="meta">
    <p class="title">Jungle <a href="/offer/Y456">Snorlax</a></p>
  </td>
  <td class="price">no offers</td>
</tr>
<tr>
  <td class="meta"><p class="title">not an offer row</p></td>
</tr>
<tr>
  <td class="photo"></td>
  <td class="meta"><p class="title"><a href="/offer/Z789">   </a></p></td>
  <td class="price">$1.00</td>
</tr>
</table>
</body></html>`

func TestParse(t *testing.T) {
	offers, err := Parse(listingFixture)
	require.NoError(t, err)
	require.Len(t, offers, 2)

	charizard := offers[0]
	require.Equal(t, "X123", charizard.SourceItemId)
	require.Equal(t, BaseUrl+"/offer/X123", charizard.SourceUrl)
	require.Equal(t, "Charizard #4", charizard.Name)
	require.Equal(t, "Base Set", charizard.SetName)
	require.Equal(t, "4", charizard.CollectorNumber)
	require.NotNil(t, charizard.PriceValue)
	require.Equal(t, 9.99, *charizard.PriceValue)
	require.Equal(t, "USD", charizard.PriceCurrency)
	// lazy data-src wins over src and the low-res segment is upgraded
	require.Equal(t, "https://images.example.com/cards/abc/300.jpg", charizard.ImageUrl)
	require.Equal(t, 1, charizard.OrderIndex)

	snorlax := offers[1]
	// item id falls back to the trailing offer path segment
	require.Equal(t, "Y456", snorlax.SourceItemId)
	require.Nil(t, snorlax.PriceValue)
	require.Equal(t, "", snorlax.CollectorNumber)
	require.Equal(t, "https://images.example.com/cards/def.jpg?w=480", snorlax.ImageUrl)
	require.Equal(t, 2, snorlax.OrderIndex)
}

func TestParseEmptyPage(t *testing.T) {
	offers, err := Parse("<html><body><p>nothing for sale</p></body></html>")
	require.NoError(t, err)
	require.Len(t, offers, 0)
}

func TestParseThousandsSeparatedPrice(t *testing.T) {
	offers, err := Parse(`
<table class="selling_table"><tr data-offer-id="A1">
  <td class="meta"><p class="title">Base Set <a href="/offer/A1">Lotus</a></p></td>
  <td class="price">$1,234.56</td>
</tr></table>`)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	require.Equal(t, 1234.56, *offers[0].PriceValue)
}

func TestUpgradeImageUrl(t *testing.T) {
	require.Equal(t,
		"https://images.example.com/x/300.png?v=2",
		upgradeImageUrl("https://images.example.com/x/60.png?v=2"),
	)
	require.Equal(t,
		BaseUrl+"/img/300.jpg",
		upgradeImageUrl("/img/180.jpg"),
	)
	require.Equal(t, "", upgradeImageUrl(""))
}
