package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leaseledger/leaseledger/internal/output"
	"github.com/leaseledger/leaseledger/internal/valuation"
	"github.com/leaseledger/leaseledger/pkg/datetime"
	"github.com/leaseledger/leaseledger/pkg/presentvalue"
)

var (
	pvTiming     string
	pvAllocation float64
	pvOpening    string
	pvClosing    string
)

var pvCmd = &cobra.Command{
	Use:   "pv <lease-id>",
	Short: "Run the present-value calculation for a lease",
	Long: `Computes the full present-value calculation for one lease: the cash
flows of future lease payments, the right-of-use asset depreciation
schedule, the lease liability roll-forward, the short/long-term liability
summary with interest accretion, and the maturity ladder of payments due.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := openStore().GetByID(args[0])
		if err != nil {
			return err
		}

		params := valuation.DefaultParameters()
		if pvTiming != "" {
			params.PaymentTiming, err = presentvalue.ParseTiming(pvTiming)
			if err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("allocation") {
			params.AllocationToLeaseComponent = pvAllocation
		}

		v, err := valuation.Compute(logger, l, params)
		if err != nil {
			return err
		}
		output.ValuationPretty(os.Stdout, v)

		if len(v.Payments) > 0 {
			// The summary window defaults to the full schedule span.
			opening := v.Payments[0].PaymentDate
			closing := v.Payments[len(v.Payments)-1].PaymentDate
			if pvOpening != "" {
				if opening, err = datetime.ParseDate(pvOpening); err != nil {
					return fmt.Errorf("invalid opening date %q: %w", pvOpening, err)
				}
			}
			if pvClosing != "" {
				if closing, err = datetime.ParseDate(pvClosing); err != nil {
					return fmt.Errorf("invalid closing date %q: %w", pvClosing, err)
				}
			}
			output.LiabilitySummaryPretty(os.Stdout, v, opening, closing)
		}

		output.PaymentsDuePretty(os.Stdout, v)
		return nil
	},
}

func init() {
	pvCmd.Flags().StringVar(&pvTiming, "timing", "", "payment timing (Beginning, End)")
	pvCmd.Flags().Float64Var(&pvAllocation, "allocation", 1.0, "allocation to lease component [0, 1]")
	pvCmd.Flags().StringVar(&pvOpening, "opening", "", "liability summary window start (YYYY-MM-DD)")
	pvCmd.Flags().StringVar(&pvClosing, "closing", "", "liability summary window end (YYYY-MM-DD)")
	rootCmd.AddCommand(pvCmd)
}
