package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fintrack/internal/core"
)

var interestFlags struct {
	principal string
	rate      string
	years     string
	kind      string
	frequency string
}

var interestCmd = &cobra.Command{
	Use:   "interest",
	Short: "Compute simple or compound interest without saving it",
	RunE: func(cmd *cobra.Command, _ []string) error {
		calc, err := buildInterest()
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), outputFormat, interestOutput{
			Principal:      calc.Principal,
			Rate:           calc.Rate,
			Years:          calc.Years,
			Type:           calc.Type,
			Frequency:      calc.Frequency,
			InterestAmount: calc.InterestAmount(),
			TotalAmount:    calc.TotalAmount(),
		})
	},
}

type interestOutput struct {
	Principal      core.Money                 `json:"principal"`
	Rate           decimal.Decimal            `json:"rate"`
	Years          decimal.Decimal            `json:"time_years"`
	Type           core.InterestType          `json:"interest_type"`
	Frequency      *core.CompoundingFrequency `json:"compounding_frequency,omitempty"`
	InterestAmount core.Money                 `json:"interest_amount"`
	TotalAmount    core.Money                 `json:"total_amount"`
}

func buildInterest() (core.InterestCalculation, error) {
	principal, err := core.ParseMoney(interestFlags.principal)
	if err != nil {
		return core.InterestCalculation{}, fmt.Errorf("principal: %w", err)
	}
	rate, err := decimal.NewFromString(interestFlags.rate)
	if err != nil {
		return core.InterestCalculation{}, fmt.Errorf("rate: %w", err)
	}
	years, err := decimal.NewFromString(interestFlags.years)
	if err != nil {
		return core.InterestCalculation{}, fmt.Errorf("years: %w", err)
	}
	calc := core.InterestCalculation{
		Name:      "cli",
		Principal: principal,
		Rate:      rate,
		Years:     years,
		Type:      core.InterestType(interestFlags.kind),
	}
	if interestFlags.frequency != "" {
		f := core.CompoundingFrequency(interestFlags.frequency)
		calc.Frequency = &f
	}
	return calc, calc.Validate()
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the balance, spending and reminder summary",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dm, done, err := openDataManager(cmd.Context())
		if err != nil {
			return err
		}
		defer done()
		return render(cmd.OutOrStdout(), outputFormat, dm.Summary())
	},
}

var budgetsCmd = &cobra.Command{
	Use:   "budgets",
	Short: "Analyze every budget against its matching expenses",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dm, done, err := openDataManager(cmd.Context())
		if err != nil {
			return err
		}
		defer done()
		return render(cmd.OutOrStdout(), outputFormat, dm.BudgetAnalyses())
	},
}

var reminderStatus string

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "List reminders by status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dm, done, err := openDataManager(cmd.Context())
		if err != nil {
			return err
		}
		defer done()

		var reminders []core.Reminder
		switch reminderStatus {
		case "all":
			reminders = dm.Reminders()
		case "pending":
			reminders = dm.PendingReminders()
		case "overdue":
			reminders = dm.OverdueReminders()
		case "completed":
			reminders = dm.CompletedReminders()
		default:
			return fmt.Errorf("unknown status %q (want all, pending, overdue or completed)", reminderStatus)
		}
		return render(cmd.OutOrStdout(), outputFormat, reminders)
	},
}

func init() {
	interestCmd.Flags().StringVar(&interestFlags.principal, "principal", "", "Principal amount, e.g. 1000.00")
	interestCmd.Flags().StringVar(&interestFlags.rate, "rate", "", "Annual rate in percent")
	interestCmd.Flags().StringVar(&interestFlags.years, "years", "1", "Duration in years, may be fractional")
	interestCmd.Flags().StringVar(&interestFlags.kind, "type", string(core.SimpleInterest), "simple or compound")
	interestCmd.Flags().StringVar(&interestFlags.frequency, "frequency", "", "Compounding frequency for compound interest")
	_ = interestCmd.MarkFlagRequired("principal")
	_ = interestCmd.MarkFlagRequired("rate")

	remindersCmd.Flags().StringVar(&reminderStatus, "status", "pending", "all, pending, overdue or completed")
}
