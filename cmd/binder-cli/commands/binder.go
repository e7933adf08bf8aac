package commands

import (
	"fmt"
	"strconv"
	"cardbinder-backend/lib/scrapers/pricecharting"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var binder string

func init() {
	binderCmd.PersistentFlags().StringVar(&binder, "binder", "main", "binder to operate on")
	binderCmd.AddCommand(binderAddCmd)
	binderCmd.AddCommand(binderRemoveCmd)
	binderCmd.AddCommand(binderCountCmd)
	binderCmd.AddCommand(binderReorderCmd)
	binderCmd.AddCommand(binderAutoSortCmd)
	rootCmd.AddCommand(binderCmd)
	rootCmd.AddCommand(bindersCmd)
}

type binderCard struct {
	pricecharting.Offer
	Count int64 `json:"count"`
}

var binderCmd = &cobra.Command{
	Use:   "binder",
	Short: "Prints the binder's cards in order.",
	Run: func(cmd *cobra.Command, args []string) {
		res, err := client().R().
			SetContext(cmd.Context()).
			SetQueryParam("profile", profile).
			SetQueryParam("binder", binder).
			Get("/api/binder")
		out, err := decode[struct {
			Items []binderCard `json:"items"`
		}](res, err)
		if err != nil {
			fatal(err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Key", "Name", "Set", "Number", "Count"})
		for _, card := range out.Items {
			t.AppendRow(table.Row{
				card.Key(),
				card.Name,
				card.SetName,
				card.CollectorNumber,
				card.Count,
			})
		}
		t.Render()
	},
}

var bindersCmd = &cobra.Command{
	Use:   "binders",
	Short: "Prints the binders the profile has cards in.",
	Run: func(cmd *cobra.Command, args []string) {
		res, err := client().R().
			SetContext(cmd.Context()).
			SetQueryParam("profile", profile).
			Get("/api/binders")
		out, err := decode[struct {
			Items []string `json:"items"`
		}](res, err)
		if err != nil {
			fatal(err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Binder"})
		for _, id := range out.Items {
			t.AppendRow(table.Row{id})
		}
		t.Render()
	},
}

func binderMutation(cmd *cobra.Command, path string, keys []string) {
	res, err := client().R().
		SetContext(cmd.Context()).
		SetBody(map[string]any{
			"profile": profile,
			"binder":  binder,
			"keys":    keys,
		}).
		Post(path)
	_, err = decode[struct{}](res, err)
	if err != nil {
		fatal(err)
	}
	fmt.Println("ok")
}

var binderAddCmd = &cobra.Command{
	Use:   "add <key>...",
	Short: "Adds inbox cards to the binder by their keys.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		res, err := client().R().
			SetContext(cmd.Context()).
			SetBody(map[string]any{
				"profile": profile,
				"binder":  binder,
				"keys":    args,
			}).
			Post("/api/binder/add")
		out, err := decode[struct {
			Created  int `json:"created"`
			Existing int `json:"existing"`
		}](res, err)
		if err != nil {
			fatal(err)
		}
		fmt.Println("created", out.Created, "incremented", out.Existing)
	},
}

var binderRemoveCmd = &cobra.Command{
	Use:   "remove <key>...",
	Short: "Removes cards from the binder by their keys.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		binderMutation(cmd, "/api/binder/remove", args)
	},
}

var binderCountCmd = &cobra.Command{
	Use:   "count <key> <n>",
	Short: "Sets a card's quantity, 0 removes it.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		count, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			fatal(fmt.Errorf("invalid count %q: %w", args[1], err))
		}
		res, err := client().R().
			SetContext(cmd.Context()).
			SetBody(map[string]any{
				"profile": profile,
				"binder":  binder,
				"key":     args[0],
				"count":   count,
			}).
			Post("/api/binder/count")
		_, err = decode[struct{}](res, err)
		if err != nil {
			fatal(err)
		}
		fmt.Println("ok")
	},
}

var binderReorderCmd = &cobra.Command{
	Use:   "reorder <key>...",
	Short: "Moves the given keys to the front in the given order.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		binderMutation(cmd, "/api/binder/reorder", args)
	},
}

var binderAutoSortCmd = &cobra.Command{
	Use:   "autosort",
	Short: "Sorts the binder by set, collector number and name.",
	Run: func(cmd *cobra.Command, args []string) {
		binderMutation(cmd, "/api/binder/autosort", nil)
	},
}
