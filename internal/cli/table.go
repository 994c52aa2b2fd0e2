// table.go implements the "tably table" command for customer ordering.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/tably-dev/tably/internal/tui"
	"github.com/tably-dev/tably/internal/tui/views"
)

var tableCmd = &cobra.Command{
	Use:   "table [table-uuid]",
	Short: "Browse the menu and place an order for a table",
	Long: `Open the customer ordering view. The table identifier comes from the
QR code on the table; without one the unscoped menu is shown and the
order is placed for an unknown table.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTable,
}

func runTable(cmd *cobra.Command, args []string) error {
	if !tui.IsTTY() {
		return tui.FallbackGuidance()
	}

	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	tableUUID := ""
	if len(args) > 0 {
		tableUUID = args[0]
	}

	return tui.Run(views.NewCustomerModel(env.Client, env.Events, tableUUID))
}
