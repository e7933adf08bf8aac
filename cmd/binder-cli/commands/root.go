package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var BaseUrl = "http://localhost:8787"

var profile string

var rootCmd = &cobra.Command{
	Use:   "binder-cli",
	Short: "binder-cli talks to a running binderd instance.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "default", "profile to operate on")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}

func client() *resty.Client {
	return resty.New().SetBaseURL(BaseUrl)
}

func decode[T any](res *resty.Response, err error) (T, error) {
	var out T
	if err != nil {
		return out, err
	}
	if res.IsError() {
		return out, fmt.Errorf("%s: %s", res.Status(), string(res.Body()))
	}
	err = json.Unmarshal(res.Body(), &out)
	return out, err
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}
