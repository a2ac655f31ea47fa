// ABOUTME: Carers command for the caretrack CLI
// ABOUTME: Lists and inspects care workers

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/caretrack/caretrack-go/api"
)

var (
	carersActiveOnly bool
	carersSearch     string
)

var carersCmd = &cobra.Command{
	Use:   "carers",
	Short: "List care workers",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		exitCode := runCarers(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	carersCmd.Flags().BoolVar(&carersActiveOnly, "active", false, "Only show active carers")
	carersCmd.Flags().StringVar(&carersSearch, "search", "", "Filter by name or email")
	rootCmd.AddCommand(carersCmd)
}

// runCarers lists carers and returns the exit code
func runCarers(ctx context.Context, w io.Writer) int {
	s, err := newSDK()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer s.close()

	opts := api.ListCarersOptions{Search: carersSearch}
	if carersActiveOnly {
		active := true
		opts.Active = &active
	}

	carers, err := s.api.Carers.List(ctx, opts)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(carers, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tACTIVE")
	for _, c := range carers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", c.ID, c.Name, c.Email, c.Active)
	}
	tw.Flush()
	return 0
}
