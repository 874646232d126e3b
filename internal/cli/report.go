package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leaseledger/leaseledger/internal/output"
	"github.com/leaseledger/leaseledger/internal/report"
	"github.com/leaseledger/leaseledger/internal/valuation"
	"github.com/leaseledger/leaseledger/pkg/constants"
	"github.com/leaseledger/leaseledger/pkg/datetime"
	"github.com/leaseledger/leaseledger/pkg/presentvalue"
)

var (
	reportOpening string
	reportClosing string
	reportInclude string
	reportFormat  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate multi-lease balance reports for a reporting window",
}

var reportSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Aggregate opening/movement/closing balances per account code",
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := reportParams()
		if err != nil {
			return err
		}
		leases, err := openStore().Load()
		if err != nil {
			return err
		}
		rep, err := report.BuildSummaryReport(logger, leases, params)
		if err != nil {
			return err
		}
		if format(reportFormat) == constants.OutputFormatCSV {
			output.SummaryReportCSV(os.Stdout, rep)
		} else {
			output.SummaryReportPretty(os.Stdout, rep)
		}
		return nil
	},
}

var reportDetailCmd = &cobra.Command{
	Use:   "detail",
	Short: "Per-lease opening/movement/closing balance tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := reportParams()
		if err != nil {
			return err
		}
		leases, err := openStore().Load()
		if err != nil {
			return err
		}
		rep, err := report.BuildDetailReport(logger, leases, params)
		if err != nil {
			return err
		}
		if format(reportFormat) == constants.OutputFormatCSV {
			output.DetailReportCSV(os.Stdout, rep)
		} else {
			output.DetailReportPretty(os.Stdout, rep)
		}
		return nil
	},
}

func reportParams() (report.Params, error) {
	var params report.Params

	opening, err := datetime.ParseDate(reportOpening)
	if err != nil {
		return params, fmt.Errorf("invalid opening date %q: %w", reportOpening, err)
	}
	closing, err := datetime.ParseDate(reportClosing)
	if err != nil {
		return params, fmt.Errorf("invalid closing date %q: %w", reportClosing, err)
	}

	timing, err := presentvalue.ParseTiming(conf.Report.PaymentTiming)
	if err != nil {
		return params, err
	}

	vparams := valuation.DefaultParameters()
	vparams.PaymentTiming = timing
	vparams.AllocationToLeaseComponent = conf.Report.AllocationToLeaseComponent

	include := reportInclude
	if include == "" {
		include = conf.Report.IncludedLeases
	}

	params = report.Params{
		OpeningDate: opening,
		ClosingDate: closing,
		Include:     include,
		Valuation:   vparams,
	}
	return params, params.Validate()
}

func init() {
	reportCmd.PersistentFlags().StringVar(&reportOpening, "opening", "", "opening date (YYYY-MM-DD)")
	reportCmd.PersistentFlags().StringVar(&reportClosing, "closing", "", "closing date (YYYY-MM-DD)")
	reportCmd.PersistentFlags().StringVar(&reportInclude, "include", "", "leases to include (All, Property, Motor)")
	reportCmd.PersistentFlags().StringVar(&reportFormat, "format", "", "output format (pretty, csv)")
	_ = reportCmd.MarkPersistentFlagRequired("opening")
	_ = reportCmd.MarkPersistentFlagRequired("closing")
	reportCmd.AddCommand(reportSummaryCmd, reportDetailCmd)
	rootCmd.AddCommand(reportCmd)
}
