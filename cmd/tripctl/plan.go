package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"trip-log-service/internal/app"
	"trip-log-service/internal/config"
	"trip-log-service/internal/logging"
	"trip-log-service/internal/services"
)

func newPlanCmd() *cobra.Command {
	var req services.TripRequest

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan one trip against the configured routing provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := logging.NewStructuredLogger(os.Stderr, cfg.LogLevel)
			ctx := logging.WithLogger(cmd.Context(), logger)

			a, err := app.Build(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			plan, err := services.PlanTrip(ctx, req, a.Provider, a.Provider)
			if err != nil {
				logging.LogError(logger, "plan trip failed", err, slog.String("cli", "plan"))
				return errors.New(services.UserMessage(err))
			}

			out := cmd.OutOrStdout()
			for _, s := range plan.Trip.Stops {
				fmt.Fprintf(out, "%-8s %-40s %.5f,%.5f\n", s.Role, s.Query, s.Coordinates.Lon, s.Coordinates.Lat)
			}
			fmt.Fprintf(out, "Distance: %.1f mi  Duration: %dmin  Panels: %d\n",
				plan.Trip.TotalMiles(), plan.Trip.Route.DurationSeconds/60, len(plan.Panels))
			fmt.Fprintf(out, "Polyline: %s\n", plan.Polyline)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Pickup, "pickup", "", "Pickup address")
	cmd.Flags().StringVar(&req.Dropoff, "dropoff", "", "Drop-off address")
	cmd.Flags().StringVar(&req.Current, "current", "", "Current location")
	cmd.Flags().Float64Var(&req.CycleHours, "cycle", 70, "Cycle hours used")
	return cmd
}
