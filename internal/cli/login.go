// login.go implements the "tably login" command.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Authenticate as a manager",
	Long: `Exchange manager credentials for a session token and store it for
subsequent commands and the dashboard.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	username := ""
	if len(args) > 0 {
		username = args[0]
	} else {
		fmt.Print("Username: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading username: %w", err)
		}
		username = strings.TrimSpace(line)
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	if err := env.Session.Login(context.Background(), username, string(password)); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Printf("Logged in as %s\n", username)
	return nil
}
