// ABOUTME: Whoami command for the caretrack CLI
// ABOUTME: Verifies the stored token and prints the authenticated user

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/caretrack/caretrack-go/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently authenticated user",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami verifies the stored session and returns the exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	s, err := newSDK()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer s.close()

	s.session.Start(ctx)
	if s.session.State() != session.StateAuthenticated {
		fmt.Fprintln(w, "Not logged in")
		return 1
	}

	user := s.session.User()
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "%s <%s> (%s)\n", user.Name, user.Email, user.Role)
	return 0
}
