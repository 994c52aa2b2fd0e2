// logout.go implements the "tably logout" command.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the manager session",
	Long: `Invalidate the session token server-side when possible and always
clear the locally stored credential.`,
	RunE: runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if ok, err := env.Session.Restore(context.Background()); err != nil {
		return err
	} else if !ok {
		fmt.Println("Not logged in.")
		return nil
	}

	if err := env.Session.Logout(context.Background()); err != nil {
		return err
	}

	fmt.Println("Logged out.")
	return nil
}
