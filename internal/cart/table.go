package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tably-dev/tably/internal/api"
)

// TableContext is the table identity bound to a customer sitting. It is
// resolved once at startup and immutable afterwards.
type TableContext struct {
	TableUUID   string
	TableNumber string
}

// Number returns the table number for display and order submission, falling
// back to the unknown-table marker when no table was resolved.
func (tc TableContext) Number() string {
	if tc.TableNumber == "" {
		return unknownTable
	}
	return tc.TableNumber
}

// ResolveTable fetches the menu and binds the table context carried by the
// QR identifier. An empty identifier yields the unscoped menu and no table
// binding; a malformed identifier is rejected before any request is made.
func ResolveTable(ctx context.Context, client *api.Client, tableUUID string) (*api.Menu, TableContext, error) {
	if tableUUID == "" {
		menu, err := client.Menu(ctx)
		if err != nil {
			return nil, TableContext{}, err
		}
		return menu, TableContext{}, nil
	}

	if _, err := uuid.Parse(tableUUID); err != nil {
		return nil, TableContext{}, fmt.Errorf("invalid table identifier %q: %w", tableUUID, err)
	}

	menu, err := client.MenuForTable(ctx, tableUUID)
	if err != nil {
		return nil, TableContext{}, err
	}

	return menu, TableContext{
		TableUUID:   tableUUID,
		TableNumber: menu.TableNumber,
	}, nil
}
