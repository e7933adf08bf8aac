package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	profilesCmd.AddCommand(profilesCreateCmd)
	rootCmd.AddCommand(profilesCmd)
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Prints the known profiles.",
	Run: func(cmd *cobra.Command, args []string) {
		res, err := client().R().
			SetContext(cmd.Context()).
			Get("/api/profiles")
		out, err := decode[struct {
			Items []struct {
				Id   string `json:"id"`
				Name string `json:"name"`
			} `json:"items"`
		}](res, err)
		if err != nil {
			fatal(err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Id", "Name"})
		for _, p := range out.Items {
			t.AppendRow(table.Row{p.Id, p.Name})
		}
		t.Render()
	},
}

var profilesCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Creates a profile, deriving its id from the name.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		res, err := client().R().
			SetContext(cmd.Context()).
			SetBody(map[string]string{"name": args[0]}).
			Post("/api/profiles")
		out, err := decode[struct {
			Id   string `json:"id"`
			Name string `json:"name"`
		}](res, err)
		if err != nil {
			fatal(err)
		}
		fmt.Println("created profile", out.Id)
	},
}
