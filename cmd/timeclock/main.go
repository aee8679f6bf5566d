/*
main.go - timeclock, an offline CLI over the timekeeping engine

PURPOSE:
  Exposes the engine's pure computations on the command line for testing
  and scripting, without a running backend. Output is one line per
  computed field, stable enough to grep.

COMMANDS:
  timeclock duration --start 09:00 --end 18:00
  timeclock rollup   --hours 8 --hours 7.5 --days 31 --target 8
  timeclock salary   --hours 160 --rate 50000 --advance 100000
  timeclock validate --start "9:00" --end "24:00"

EXIT CODES:
  0  success
  1  unexpected error (bad flag value)
  2  validation failure (invalid operator input)

SEE ALSO:
  - engine/: The computations this CLI wraps
*/
package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/warp/timekeeping-engine/engine"
)

const exitValidation = 2

var rootCmd = &cobra.Command{
	Use:   "timeclock",
	Short: "Staff timekeeping calculations without a backend",
	Long: `timeclock runs the timekeeping engine's calculations directly:
interval durations, monthly rollups, salary figures, and work-log
validation. One line per computed field.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if engine.IsValidationError(err) {
			os.Exit(exitValidation)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(durationCmd())
	rootCmd.AddCommand(rollupCmd())
	rootCmd.AddCommand(salaryCmd())
	rootCmd.AddCommand(validateCmd())
}

// =============================================================================
// duration
// =============================================================================

func durationCmd() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "duration",
		Short: "Compute the length of a start/end interval in hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := engine.ParseTimeOfDay(start)
			if err != nil {
				return err
			}
			e, err := engine.ParseTimeOfDay(end)
			if err != nil {
				return err
			}

			hours := engine.ComputeDuration(s, e)
			fmt.Printf("start: %s\n", s)
			fmt.Printf("end: %s\n", e)
			fmt.Printf("duration_hours: %s\n", hours.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start time (HH:mm)")
	cmd.Flags().StringVar(&end, "end", "", "end time (HH:mm, or 24:00 for end of day)")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	return cmd
}

// =============================================================================
// rollup
// =============================================================================

func rollupCmd() *cobra.Command {
	var hours []string
	var days int
	var target string

	cmd := &cobra.Command{
		Use:   "rollup",
		Short: "Aggregate per-day hours against a monthly target",
		RunE: func(cmd *cobra.Command, args []string) error {
			daily := make(engine.DailyHoursMap, len(hours))
			for i, h := range hours {
				value, err := decimal.NewFromString(h)
				if err != nil {
					return fmt.Errorf("invalid --hours value %q: %w", h, err)
				}
				// Synthetic day keys; only the sum and count matter here.
				daily[fmt.Sprintf("day-%02d", i+1)] = value
			}
			dailyTarget, err := decimal.NewFromString(target)
			if err != nil {
				return fmt.Errorf("invalid --target value %q: %w", target, err)
			}

			rollup := engine.Rollup(daily, days, dailyTarget)
			fmt.Printf("total_hours: %s\n", rollup.TotalHours.StringFixed(2))
			fmt.Printf("target_hours: %s\n", rollup.TargetHours.StringFixed(2))
			fmt.Printf("completion_percent: %d\n", rollup.CompletionPercent)
			fmt.Printf("remaining_hours: %s\n", rollup.RemainingHours.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&hours, "hours", nil, "hours worked on one day (repeatable)")
	cmd.Flags().IntVar(&days, "days", 30, "days in the month")
	cmd.Flags().StringVar(&target, "target", "8", "daily target hours")
	return cmd
}

// =============================================================================
// salary
// =============================================================================

func salaryCmd() *cobra.Command {
	var hours, rate, advance string

	cmd := &cobra.Command{
		Use:   "salary",
		Short: "Derive gross and net salary from hours, rate, and advance",
		RunE: func(cmd *cobra.Command, args []string) error {
			totalHours, err := decimal.NewFromString(hours)
			if err != nil {
				return fmt.Errorf("invalid --hours value %q: %w", hours, err)
			}
			hourlyRate, err := decimal.NewFromString(rate)
			if err != nil {
				return fmt.Errorf("invalid --rate value %q: %w", rate, err)
			}
			advanceAmount, err := decimal.NewFromString(advance)
			if err != nil {
				return fmt.Errorf("invalid --advance value %q: %w", advance, err)
			}

			figures := engine.CalculateSalary(totalHours, hourlyRate, advanceAmount)
			fmt.Printf("gross_salary: %s\n", figures.GrossSalary.StringFixed(2))
			fmt.Printf("net_salary: %s\n", figures.NetSalary.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&hours, "hours", "", "total hours worked")
	cmd.Flags().StringVar(&rate, "rate", "", "hourly rate")
	cmd.Flags().StringVar(&advance, "advance", "0", "advance amount to deduct")
	cmd.MarkFlagRequired("hours")
	cmd.MarkFlagRequired("rate")
	return cmd
}

// =============================================================================
// validate
// =============================================================================

func validateCmd() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a start/end pair the way the dashboard does before saving",
		RunE: func(cmd *cobra.Command, args []string) error {
			interval, err := engine.ValidateWorkLog(start, end)
			if err != nil {
				return err
			}
			fmt.Printf("start: %s\n", interval.Start)
			fmt.Printf("end: %s\n", interval.End)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start time")
	cmd.Flags().StringVar(&end, "end", "", "end time")
	return cmd
}
