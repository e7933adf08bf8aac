package commands

import (
	"cardbinder-backend/lib/scrapers/pricecharting"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inboxCmd)
}

func formatPrice(offer pricecharting.Offer) string {
	if offer.PriceValue == nil {
		return ""
	}
	return offer.PriceCurrency + " " + trimFloat(*offer.PriceValue)
}

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "Prints the profile's inbox, the staging set from the latest import.",
	Run: func(cmd *cobra.Command, args []string) {
		res, err := client().R().
			SetContext(cmd.Context()).
			SetQueryParam("profile", profile).
			Get("/api/inbox")
		out, err := decode[struct {
			Items []pricecharting.Offer `json:"items"`
		}](res, err)
		if err != nil {
			fatal(err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Key", "Name", "Set", "Number", "Price", "Master"})
		for _, offer := range out.Items {
			t.AppendRow(table.Row{
				offer.Key(),
				offer.Name,
				offer.SetName,
				offer.CollectorNumber,
				formatPrice(offer),
				offer.MasterId,
			})
		}
		t.Render()
	},
}
