package app

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/AktanAlmazovich/Fleet-manager/cmd/fleet-console/app/options"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/core/model"
	"github.com/AktanAlmazovich/Fleet-manager/internal/console/remote"
)

// newVehiclesCommand lists the current fleet directly from the remote
// service, as a quick operator check without the running console.
func newVehiclesCommand(opts *options.ConsoleOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "vehicles",
		Short: "List the fleet as reported by the remote fleet service",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := remote.NewClient(opts.RemoteOptions)

			vehicles, err := client.Vehicles(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch vehicles: %w", err)
			}

			table := uitable.New()
			table.MaxColWidth = 40
			table.AddRow("ID", "NAME", "PLATE", "STATUS", "DRIVER", "MILEAGE", "HEALTH")
			for _, v := range vehicles {
				table.AddRow(v.ID, v.Name, v.Plate, v.Status, v.Driver, v.Mileage,
					fmt.Sprintf("%.0f%%", model.VehicleHealth(v.Mileage)))
			}

			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}
