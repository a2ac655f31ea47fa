// ABOUTME: Invite command for the caretrack CLI
// ABOUTME: Issues dashboard invitations for new users

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/caretrack/caretrack-go/api"
	"github.com/caretrack/caretrack-go/models"
)

var inviteRole string

var inviteCmd = &cobra.Command{
	Use:   "invite <email>",
	Short: "Invite a new dashboard user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()

		exitCode := runInvite(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	inviteCmd.Flags().StringVar(&inviteRole, "role", "carer", "Role for the new user (admin or carer)")
	rootCmd.AddCommand(inviteCmd)
}

// runInvite issues the invitation and returns the exit code
func runInvite(ctx context.Context, w io.Writer, email string) int {
	role := models.Role(inviteRole)
	if role != models.RoleAdmin && role != models.RoleCarer {
		fmt.Fprintf(w, "Error: unknown role %q\n", inviteRole)
		return 2
	}

	s, err := newSDK()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer s.close()

	inv, err := s.api.Invitations.Create(ctx, api.InvitationInput{Email: email, Role: role})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(w, "Invited %s as %s (expires %s)\n", inv.Email, inv.Role, inv.ExpiresAt.Format("2006-01-02"))
	return 0
}
