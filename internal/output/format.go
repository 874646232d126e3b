// Package output formats the engine's row tables for display: a
// human-readable layout and a CSV layout, selected by configuration.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/leaseledger/leaseledger/internal/lease"
	"github.com/leaseledger/leaseledger/internal/report"
	"github.com/leaseledger/leaseledger/internal/valuation"
	"github.com/leaseledger/leaseledger/pkg/datetime"
	"github.com/leaseledger/leaseledger/pkg/mathutil"
	"github.com/leaseledger/leaseledger/pkg/money"
	"github.com/leaseledger/leaseledger/pkg/schedule"
)

// LeaseList prints one line per lease with its headline fields.
func LeaseList(w io.Writer, leases []*lease.Lease) {
	p := message.NewPrinter(language.English)
	for _, l := range leases {
		_, _ = p.Fprintf(w, "%-12s | %-13s | %-40s | expires %s | $%.2f p.a. | %d committed years\n",
			l.ID, l.Kind, l.Title(), l.ExpiryDate.Format(datetime.DateLayout), l.AnnualRent, l.CommittedYears())
	}
}

// PaymentSchedulePretty prints the payment schedule with its total and the
// day-count NPV footer.
func PaymentSchedulePretty(w io.Writer, l *lease.Lease, rows []schedule.PaymentRow) {
	p := message.NewPrinter(language.English)
	fmt.Fprintf(w, "--- Payment schedule for %s ---\n", l.Title())
	fmt.Fprintf(w, "Payment | Lease Year | Payment Date | Amount       | Note\n")
	fmt.Fprintf(w, "_______ | __________ | ____________ | ____________ | ____\n")

	total := 0.0
	for _, row := range rows {
		_, _ = p.Fprintf(w, "%7d | %10d | %s   | $%.2f | %s\n",
			row.Payment, row.LeaseYear, row.PaymentDate.Format(datetime.DateLayout), row.Amount, row.Note)
		total += row.Amount
	}

	_, _ = p.Fprintf(w, "TOTAL: $%.2f\n", mathutil.Round(total))
	_, _ = p.Fprintf(w, "NPV:   $%.2f\n", mathutil.Round(schedule.XNPV(rows, l.BorrowingRate)))
}

// PaymentScheduleCSV prints the payment schedule in comma-separated form.
func PaymentScheduleCSV(w io.Writer, rows []schedule.PaymentRow) {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"payment", "lease year", "payment date", "amount", "note"})
	for _, row := range rows {
		_ = cw.Write([]string{
			strconv.Itoa(row.Payment), strconv.Itoa(row.LeaseYear),
			row.PaymentDate.Format(datetime.DateLayout),
			money.FormatAmount(row.Amount), row.Note,
		})
	}
	cw.Flush()
}

// ValuationPretty prints the present-value computation header and the three
// schedule tables side by side conceptually: cash flows, then asset, then
// liability.
func ValuationPretty(w io.Writer, v *valuation.Valuation) {
	p := message.NewPrinter(language.English)
	fmt.Fprintf(w, "--- PV calculation for %s ---\n", v.Lease.Title())
	if len(v.Payments) > 0 {
		_, _ = p.Fprintf(w, "Present Value at %s: $%.2f\n",
			datetime.FormatDMY(v.Payments[0].PaymentDate), v.PresentValue)
	} else {
		_, _ = p.Fprintf(w, "Present Value: $%.2f\n", v.PresentValue)
	}
	fmt.Fprintf(w, "Rate: %.2f%%\n", v.Lease.BorrowingRate)
	fmt.Fprintf(w, "Payments made at beginning or end of period: %s\n\n", v.PaymentTiming)

	fmt.Fprintf(w, "Cash Flows of Future Lease Payment\n")
	fmt.Fprintf(w, "Payment Date | Base Rent    | Total Cash Flows | Lease Component\n")
	for _, cf := range v.CashFlows {
		_, _ = p.Fprintf(w, "%s   | $%.2f | $%.2f     | $%.2f\n",
			cf.PaymentDate.Format(datetime.DateLayout), cf.BaseRent, cf.TotalCashFlows, cf.LeaseComponent)
	}

	fmt.Fprintf(w, "\nRight of Use Asset\n")
	fmt.Fprintf(w, "Date   | Period | Asset - Beginning | Depreciation | Asset - Ending\n")
	for _, row := range v.AssetRows {
		_, _ = p.Fprintf(w, "%s | %6d | $%.2f | $%.2f | $%.2f\n",
			datetime.FormatShort(row.Date), row.Period,
			mathutil.Round(row.AssetBeginning), mathutil.Round(row.Depreciation), mathutil.Round(row.AssetEnding))
	}

	fmt.Fprintf(w, "\nLease Liability\n")
	fmt.Fprintf(w, "Period | Liability - Beginning | Payment | Interest Expense | Liability - Ending\n")
	for _, row := range v.LiabilityRows {
		_, _ = p.Fprintf(w, "%s | $%.2f | $%.2f | $%.2f | $%.2f\n",
			datetime.FormatShort(row.Period),
			mathutil.Round(row.LiabilityBeginning), mathutil.Round(row.Payment),
			mathutil.Round(row.InterestExpense), mathutil.Round(row.LiabilityEnding))
	}
}

// LiabilitySummaryPretty prints the short/long-term liability split for the
// window plus the interest accreted from the opening date onward.
func LiabilitySummaryPretty(w io.Writer, v *valuation.Valuation, opening, closing time.Time) {
	p := message.NewPrinter(language.English)
	summary := v.Summary(opening, closing)
	fmt.Fprintf(w, "\nLease Liability Summary (%s - %s)\n",
		datetime.FormatDMY(opening), datetime.FormatDMY(closing))
	fmt.Fprintf(w, "Short Term | Long Term | Total\n")
	_, _ = p.Fprintf(w, "$%.2f | $%.2f | $%.2f\n",
		summary.ShortTerm, summary.LongTerm, summary.Total)
	_, _ = p.Fprintf(w, "Interest Accretion from %s: $%.2f\n",
		datetime.FormatDMY(opening), v.InterestAccretion(opening))
}

// PaymentsDuePretty prints the maturity ladder for a closing date.
func PaymentsDuePretty(w io.Writer, v *valuation.Valuation) {
	p := message.NewPrinter(language.English)
	fmt.Fprintf(w, "\nLease Payments Due\n")
	fmt.Fprintf(w, "Period    | Lease Payments | Interest | NPV\n")
	for _, row := range v.PaymentsDue(v.Lease.ExpiryDate) {
		_, _ = p.Fprintf(w, "%-9s | $%.2f | $%.2f | $%.2f\n",
			row.Period, row.LeasePayments, row.Interest, row.NPV)
	}
}

// DetailReportPretty prints one balance table per lease followed by its
// journal entries.
func DetailReportPretty(w io.Writer, rep *report.DetailReport) {
	p := message.NewPrinter(language.English)
	for i, lb := range rep.Leases {
		if i > 0 {
			fmt.Fprintf(w, "\n")
		}
		fmt.Fprintf(w, "%s\n", lb.Title)
		fmt.Fprintf(w, "%-7s %-35s | %s | %s | %s\n", "", "",
			lb.Summary.OpeningLabel, lb.Summary.MovementLabel, lb.Summary.ClosingLabel)
		for _, row := range lb.Summary.Rows {
			_, _ = p.Fprintf(w, "%-7s %-35s | $%.2f | $%.2f | $%.2f\n",
				row.Code, row.Label, row.Opening, row.Movement, row.Closing)
		}

		fmt.Fprintf(w, "\nJournal Entries\n")
		for _, row := range lb.Journal {
			switch {
			case row.HasAmount:
				_, _ = p.Fprintf(w, "%-7s %-35s | $%.2f\n", row.Code, row.Label, row.Amount)
			case row.Label != "":
				fmt.Fprintf(w, "%s\n", row.Label)
			default:
				fmt.Fprintf(w, "\n")
			}
		}
	}
}

// DetailReportCSV prints the detail report in comma-separated form: the
// balance table followed by a journal table.
func DetailReportCSV(w io.Writer, rep *report.DetailReport) {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"lease", "code", "account", "opening", "movement", "closing"})
	for _, lb := range rep.Leases {
		for _, row := range lb.Summary.Rows {
			_ = cw.Write([]string{
				lb.Title, row.Code, row.Label,
				money.FormatAmount(row.Opening), money.FormatAmount(row.Movement), money.FormatAmount(row.Closing),
			})
		}
	}
	cw.Flush()

	fmt.Fprintf(w, "\n")
	jw := csv.NewWriter(w)
	_ = jw.Write([]string{"lease", "code", "account", "amount"})
	for _, lb := range rep.Leases {
		for _, row := range lb.Journal {
			if !row.HasAmount {
				continue
			}
			_ = jw.Write([]string{lb.Title, row.Code, row.Label, money.FormatAmount(row.Amount)})
		}
	}
	jw.Flush()
}

// SummaryReportPretty prints the per-account sections with totals.
func SummaryReportPretty(w io.Writer, rep *report.SummaryReport) {
	p := message.NewPrinter(language.English)
	for i, section := range rep.Sections {
		if i > 0 {
			fmt.Fprintf(w, "\n")
		}
		fmt.Fprintf(w, "%s %s\n", section.Code, section.Label)
		fmt.Fprintf(w, "%-40s | %s | %s | %s\n", "",
			rep.OpeningLabel, rep.MovementLabel, rep.ClosingLabel)
		for _, line := range section.Lines {
			_, _ = p.Fprintf(w, "%-40s | $%.2f | $%.2f | $%.2f\n",
				line.Title, line.Opening, line.Movement, line.Closing)
		}
		_, _ = p.Fprintf(w, "%-40s | $%.2f | $%.2f | $%.2f\n",
			section.Total.Title, section.Total.Opening, section.Total.Movement, section.Total.Closing)
	}
}

// SummaryReportCSV prints the summary report in comma-separated form.
func SummaryReportCSV(w io.Writer, rep *report.SummaryReport) {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"code", "account", "lease", "opening", "movement", "closing"})
	for _, section := range rep.Sections {
		for _, line := range section.Lines {
			_ = cw.Write([]string{
				section.Code, section.Label, line.Title,
				money.FormatAmount(line.Opening), money.FormatAmount(line.Movement), money.FormatAmount(line.Closing),
			})
		}
		_ = cw.Write([]string{
			section.Code, section.Label, section.Total.Title,
			money.FormatAmount(section.Total.Opening), money.FormatAmount(section.Total.Movement), money.FormatAmount(section.Total.Closing),
		})
	}
	cw.Flush()
}
