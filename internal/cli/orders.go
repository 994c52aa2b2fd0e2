// orders.go implements the "tably orders" command for non-interactive use.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tably-dev/tably/internal/order"
)

var showArchived bool

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List orders without the dashboard",
	Long: `Print the current orders and today's summary. Useful in scripts and
non-interactive terminals; the dashboard offers the live view.`,
	RunE: runOrders,
}

func runOrders(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	ctx := context.Background()
	ok, err := env.Session.Restore(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("not logged in; run: tably login")
	}

	orders, err := env.Client.Orders(ctx)
	if err != nil {
		return fmt.Errorf("fetching orders: %w", err)
	}

	stats := order.Stats(orders, time.Now())
	fmt.Printf("Active orders: %d · Today's revenue: $%.2f\n\n", stats.ActiveCount, stats.TodayRevenue)

	shown := 0
	for _, o := range orders {
		status := order.Status(o.Status)
		if status == order.StatusArchived && !showArchived {
			continue
		}
		shown++

		items := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, fmt.Sprintf("%dx %s", it.Quantity, it.MenuItemName))
		}

		fmt.Printf("  #%-5d %-14s %-12s %8s  %s\n",
			o.ID, o.TableNumber, order.Label(status), o.TotalPrice.String(), strings.Join(items, ", "))
	}

	if shown == 0 {
		fmt.Println("No orders.")
	}
	return nil
}

func init() {
	ordersCmd.Flags().BoolVar(&showArchived, "archived", false, "Include archived orders")
}
