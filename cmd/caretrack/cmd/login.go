// ABOUTME: Login command for the caretrack CLI
// ABOUTME: Authenticates against the backend and persists the session token

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Authenticate and store the session token",
	Long:  `Log in to the CareTrack API. The token is persisted so later commands run authenticated.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout, os.Stdin, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (read from stdin when omitted)")
	rootCmd.AddCommand(loginCmd)
}

// runLogin authenticates and returns the exit code
func runLogin(ctx context.Context, w io.Writer, stdin io.Reader, email string) int {
	password := loginPassword
	if password == "" {
		fmt.Fprint(w, "Password: ")
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintf(w, "Error: failed to read password: %v\n", err)
			return 2
		}
		password = strings.TrimSpace(line)
		fmt.Fprintln(w)
	}

	s, err := newSDK()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer s.close()

	user, err := s.session.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(w, "Logged in as %s (%s)\n", user.Name, user.Role)
	return 0
}
