package main

import (
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"trip-log-service/internal/eld"
)

func newELDCmd() *cobra.Command {
	var (
		miles   float64
		cycle   float64
		pickup  string
		dropoff string
	)

	cmd := &cobra.Command{
		Use:   "eld",
		Short: "Print the synthesized daily log for a distance and duty cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkCycle(cycle); err != nil {
				return err
			}
			panels := eld.BuildPanels(miles, cycle, pickup, dropoff)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%d panel(s)\n", len(panels))
			if len(panels) == 0 {
				return nil
			}

			// Every panel carries the same day, so one table covers the trip.
			p := panels[0]
			fmt.Fprintf(out, "From: %s  To: %s  Total miles: %s  Cycle: %s\n",
				p.From, p.To, p.MilesLabel(), p.CycleLabel())

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "HOUR\tSTATUS")
			for h := 0; h < eld.Slots-1; h++ {
				fmt.Fprintf(tw, "%s\t%s\n", eld.HourLabel(h), p.Timeline[h])
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			totals := make([]string, 0, len(eld.Statuses))
			for _, s := range eld.Statuses {
				totals = append(totals, fmt.Sprintf("%s=%d", s, p.Timeline.Hours(s)))
			}
			fmt.Fprintln(out, "Totals:", strings.Join(totals, ", "))
			return nil
		},
	}

	cmd.Flags().Float64Var(&miles, "miles", 0, "Total trip miles")
	cmd.Flags().Float64Var(&cycle, "cycle", 70, "Cycle hours used")
	cmd.Flags().StringVar(&pickup, "pickup", "", "Pickup location label")
	cmd.Flags().StringVar(&dropoff, "dropoff", "", "Drop-off location label")
	return cmd
}

func newChartCmd() *cobra.Command {
	var (
		miles float64
		cycle float64
		day   int
		out   string
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render one daily log panel as a PNG file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkCycle(cycle); err != nil {
				return err
			}
			panels := eld.BuildPanels(miles, cycle, "", "")
			if day < 1 || day > len(panels) {
				return fmt.Errorf("chart: day %d out of range 1..%d", day, len(panels))
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("chart: %w", err)
			}
			if err := eld.RenderPNG(f, panels[day-1]); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("chart: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().Float64Var(&miles, "miles", 0, "Total trip miles")
	cmd.Flags().Float64Var(&cycle, "cycle", 70, "Cycle hours used")
	cmd.Flags().IntVar(&day, "day", 1, "Panel day to render")
	cmd.Flags().StringVarP(&out, "out", "o", "eld.png", "Output PNG path")
	return cmd
}

func checkCycle(cycle float64) error {
	if math.IsNaN(cycle) || cycle < 0 || cycle > eld.MaxCycleHours {
		return fmt.Errorf("--cycle must be between 0 and %d", eld.MaxCycleHours)
	}
	return nil
}
