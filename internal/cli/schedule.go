package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/leaseledger/leaseledger/internal/output"
	"github.com/leaseledger/leaseledger/pkg/constants"
	"github.com/leaseledger/leaseledger/pkg/schedule"
)

var scheduleFormat string

var scheduleCmd = &cobra.Command{
	Use:   "schedule <lease-id>",
	Short: "Print the monthly payment schedule for a lease",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := openStore().GetByID(args[0])
		if err != nil {
			return err
		}
		rows, err := schedule.GeneratePayments(logger, l.ScheduleTerms(), schedule.ExcludeEndMonth)
		if err != nil {
			return err
		}
		if format(scheduleFormat) == constants.OutputFormatCSV {
			output.PaymentScheduleCSV(os.Stdout, rows)
		} else {
			output.PaymentSchedulePretty(os.Stdout, l, rows)
		}
		return nil
	},
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleFormat, "format", "", "output format (pretty, csv)")
	rootCmd.AddCommand(scheduleCmd)
}

// format resolves a per-command format flag against the configured default.
func format(flag string) string {
	if flag != "" {
		return flag
	}
	return conf.Output.Format
}
