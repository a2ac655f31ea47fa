// ABOUTME: Shifts commands for the caretrack CLI
// ABOUTME: Lists shifts and assigns carers to them

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/caretrack/caretrack-go/api"
)

var shiftsUnassignedOnly bool

var shiftsCmd = &cobra.Command{
	Use:   "shifts",
	Short: "List scheduled shifts",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		exitCode := runShifts(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var shiftsAssignCmd = &cobra.Command{
	Use:   "assign <shift-id> <carer-id>",
	Short: "Assign a carer to a shift",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		exitCode := runAssignShift(ctx, os.Stdout, args[0], args[1])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	shiftsCmd.Flags().BoolVar(&shiftsUnassignedOnly, "unassigned", false, "Only show shifts without a carer")
	shiftsCmd.AddCommand(shiftsAssignCmd)
	rootCmd.AddCommand(shiftsCmd)
}

// runShifts lists shifts and returns the exit code
func runShifts(ctx context.Context, w io.Writer) int {
	s, err := newSDK()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer s.close()

	opts := api.ListShiftsOptions{}
	if shiftsUnassignedOnly {
		assigned := false
		opts.Assigned = &assigned
	}

	shifts, err := s.api.Shifts.List(ctx, opts)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(shifts, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPACKAGE\tSTARTS\tENDS\tCARER")
	for _, sh := range shifts {
		carer := sh.CarerID
		if carer == "" {
			carer = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			sh.ID, sh.CarePackageID,
			sh.StartsAt.Format(time.RFC3339), sh.EndsAt.Format(time.RFC3339),
			carer)
	}
	tw.Flush()
	return 0
}

// runAssignShift assigns the carer and returns the exit code
func runAssignShift(ctx context.Context, w io.Writer, shiftID, carerID string) int {
	s, err := newSDK()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer s.close()

	shift, err := s.api.Shifts.Assign(ctx, shiftID, carerID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(w, "Shift %s assigned to %s\n", shift.ID, shift.CarerID)
	return 0
}
