// ABOUTME: Logout command for the caretrack CLI
// ABOUTME: Clears the persisted session token

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session token",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		exitCode := runLogout(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears local state and notifies the server best-effort
func runLogout(ctx context.Context, w io.Writer) int {
	s, err := newSDK()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer s.close()

	s.session.Logout(ctx)
	fmt.Fprintln(w, "Logged out")
	return 0
}
