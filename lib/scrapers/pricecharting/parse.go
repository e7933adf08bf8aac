package pricecharting

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"cardbinder-backend/lib/htmlutil"
	"cardbinder-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

const BaseUrl = "https://www.pricecharting.com"

const (
	rowSelector       = "table.selling_table tr"
	offerLinkSelector = `td.meta a[href^="/offer/"]`
)

var (
	priceRegex       = regexp.MustCompile(`\$([\d,]+(?:\.\d+)?)`)
	collectorRegex   = regexp.MustCompile(`#(\d+)`)
	offerPathRegex   = regexp.MustCompile(`/offer/([^/?#]+)`)
	lowResPathRegex  = regexp.MustCompile(`(?i)/(60|180)\.(jpg|png)(\?.*)?$`)
	widthParamRegex  = regexp.MustCompile(`(?i)([?&])w=\d+`)
)

var siteBase, _ = url.Parse(BaseUrl)

// Abs resolves a possibly-relative href against the site base. The empty
// string comes back for hrefs that do not parse.
func Abs(href string) string {
	if href == "" {
		return ""
	}
	u, err := siteBase.Parse(href)
	if err != nil {
		return ""
	}
	return u.String()
}

// upgradeImageUrl rewrites known low-resolution path segments and width
// parameters to the larger variants the site also serves. The image
// resolver does its own ranked probing later, this is only the baseline
// the offer carries around.
func upgradeImageUrl(raw string) string {
	if raw == "" {
		return ""
	}
	raw = lowResPathRegex.ReplaceAllString(raw, "/300.$2$3")
	raw = widthParamRegex.ReplaceAllString(raw, "${1}w=480")
	return Abs(raw)
}

// Parse turns rendered listing markup into the ordered offers it contains.
// Rows without an offer link or a name are skipped, missing prices,
// collector numbers and images degrade to empty fields.
func Parse(html string) ([]Offer, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var offers []Offer
	doc.Find(rowSelector).Each(func(_ int, tr *goquery.Selection) {
		link := tr.Find(offerLinkSelector).First()
		if link.Length() == 0 {
			return
		}

		sourceUrl := Abs(link.AttrOr("href", ""))
		name := strings.TrimSpace(link.Text())
		if sourceUrl == "" || name == "" {
			return
		}

		setName := ""
		if fragments := htmlutil.TextFragments(tr.Find("td.meta p.title").First()); len(fragments) > 0 {
			setName = fragments[0]
		}

		img := tr.Find("td.photo img").First()
		rawImage := img.AttrOr("data-src", "")
		if rawImage == "" {
			rawImage = img.AttrOr("src", "")
		}

		priceText := textutil.NormalizeWhitespace(tr.Find("td.price").Text())
		var priceValue *float64
		if m := priceRegex.FindStringSubmatch(priceText); m != nil {
			v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
			if err == nil {
				priceValue = &v
			}
		}

		collectorNumber := ""
		if m := collectorRegex.FindStringSubmatch(name); m != nil {
			collectorNumber = m[1]
		}

		sourceItemId := tr.AttrOr("data-offer-id", "")
		if sourceItemId == "" {
			if m := offerPathRegex.FindStringSubmatch(sourceUrl); m != nil {
				sourceItemId = m[1]
			}
		}

		offers = append(offers, Offer{
			SourceUrl:       sourceUrl,
			SourceItemId:    sourceItemId,
			Name:            name,
			SetName:         setName,
			CollectorNumber: collectorNumber,
			Condition:       "",
			PriceValue:      priceValue,
			PriceCurrency:   "USD",
			ImageUrl:        upgradeImageUrl(rawImage),
			OrderIndex:      len(offers) + 1,
		})
	})

	return offers, nil
}
