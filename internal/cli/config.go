// config.go implements the "tably config" command.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tably-dev/tably/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [server-url]",
	Short: "Show or set the client configuration",
	Long: `Without arguments, print the active configuration. With a server URL,
write it to ~/.tably/config.yaml, creating the file with defaults if
needed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}

	cfg, err := config.ReadConfig(home)
	if err != nil {
		cfg = config.DefaultConfig()
	}

	if len(args) == 1 {
		cfg.Server.BaseURL = args[0]
		if err := config.WriteConfig(home, cfg); err != nil {
			return err
		}
		fmt.Printf("Server set to %s\n", cfg.Server.BaseURL)
		return nil
	}

	fmt.Printf("Server:          %s\n", cfg.Server.BaseURL)
	fmt.Printf("Request timeout: %ds\n", cfg.Server.RequestTimeout)
	fmt.Printf("Poll interval:   %ds\n", cfg.Orders.PollInterval)
	fmt.Printf("Max image size:  %d bytes\n", cfg.Uploads.MaxImageBytes)
	fmt.Printf("Max logo size:   %d bytes\n", cfg.Uploads.MaxLogoBytes)
	return nil
}
