package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCookie string

func init() {
	importCmd.Flags().StringVar(&importCookie, "cookie", "", "auth cookie forwarded to the listing page")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <listing url>",
	Short: "Imports a selling collection listing into the profile's inbox.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		res, err := client().R().
			SetContext(cmd.Context()).
			SetBody(map[string]string{
				"url":     args[0],
				"cookie":  importCookie,
				"profile": profile,
			}).
			Post("/api/import")
		out, err := decode[struct {
			Imported int `json:"imported"`
		}](res, err)
		if err != nil {
			fatal(err)
		}
		fmt.Println("imported", out.Imported, "offers")
	},
}
