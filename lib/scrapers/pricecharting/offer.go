package pricecharting

import "strconv"

// Offer is one scraped listing row representing a card for sale.
// The json tags match the flat-file representation older deployments wrote
// to disk, so legacy inbox files unmarshal directly into this type.
type Offer struct {
	SourceUrl       string   `json:"pc_url"`
	SourceItemId    string   `json:"pc_item_id"`
	Name            string   `json:"name"`
	SetName         string   `json:"set_name"`
	CollectorNumber string   `json:"collector_number"`
	Condition       string   `json:"condition"`
	PriceValue      *float64 `json:"price_value"`
	PriceCurrency   string   `json:"price_currency"`
	ImageUrl        string   `json:"image_url"`
	OrderIndex      int      `json:"order_index"`
	MasterId        int64    `json:"master_id,omitempty"`
}

// Key identifies one observation of a card within an import batch:
// the source item id (or the offer url when the id is missing) joined
// with the observed price. An offer with neither id nor url has no key.
func (o Offer) Key() string {
	k := o.SourceItemId
	if k == "" {
		k = o.SourceUrl
	}
	if k == "" {
		return ""
	}
	if o.PriceValue == nil {
		return k + "|"
	}
	return k + "|" + strconv.FormatFloat(*o.PriceValue, 'f', -1, 64)
}

// Dedup collapses repeated observations, keeping the first occurrence of
// every key and the original order. Offers without a key are dropped.
func Dedup(offers []Offer) []Offer {
	seen := map[string]bool{}
	out := make([]Offer, 0, len(offers))
	for _, o := range offers {
		k := o.Key()
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, o)
	}
	return out
}
