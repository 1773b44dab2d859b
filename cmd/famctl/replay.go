package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rocjay1/fam/internal/cli"
	"github.com/rocjay1/fam/internal/csvparse"
	"github.com/rocjay1/fam/internal/fam"
	"github.com/rocjay1/fam/internal/models"
	"github.com/rocjay1/fam/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagFile     string
	flagName     string
	flagAge      int
	flagUserType string
	flagBalance  string
	flagLimits   string
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Apply a statement CSV to a new account and show the notices",
	Example: `  famctl replay --file statement.csv --type rebel --balance 500 --limits 100,100,100,100
  cat statement.csv | famctl replay --type 2`,
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVarP(&flagFile, "file", "f", "-", "Statement CSV, or - for stdin")
	replayCmd.Flags().StringVar(&flagName, "name", "famctl", "Name of the account holder")
	replayCmd.Flags().IntVar(&flagAge, "age", 18, "Age of the account holder")
	replayCmd.Flags().StringVarP(&flagUserType, "type", "t", string(models.UserTypeLenient), "User type: name, display name or menu number")
	replayCmd.Flags().StringVarP(&flagBalance, "balance", "b", "1000", "Opening balance")
	replayCmd.Flags().StringVarP(&flagLimits, "limits", "l", "100,100,100,100", "Budget limits in menu order, comma separated")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, _ []string) error {
	limits, err := parseLimits(flagLimits)
	if err != nil {
		return err
	}
	balance, err := decimal.NewFromString(strings.TrimSpace(flagBalance))
	if err != nil {
		return fmt.Errorf("invalid balance %q: %w", flagBalance, err)
	}

	content, err := readStatement(cmd.InOrStdin(), flagFile)
	if err != nil {
		return err
	}

	m := fam.New()
	user, err := m.Register(fam.RegisterRequest{
		Name:     flagName,
		Age:      flagAge,
		UserType: flagUserType,
		BankName: "famctl",
		Balance:  balance,
		Limits:   limits,
	})
	if err != nil {
		return err
	}

	requests, parseErrors := csvparse.ParseStatement(content)
	report, err := m.ReplayStatement(user.ID, utils.GenerateSHA256Hash(content), requests)
	if err != nil {
		return fmt.Errorf("failed to replay statement: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("%s  %s", user.Name, user.Type)))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderReplay(report, parseErrors))

	// Registering logs the user in; a locked user has been logged out.
	budgets, err := m.Budgets()
	if errors.Is(err, fam.ErrUserLocked) {
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderBudgets(budgets))
	return nil
}

// parseLimits reads one limit per budget in menu order.
func parseLimits(s string) ([models.BudgetCount]decimal.Decimal, error) {
	var limits [models.BudgetCount]decimal.Decimal

	parts := strings.Split(s, ",")
	if len(parts) != models.BudgetCount {
		return limits, fmt.Errorf("expected %d limits, got %d", models.BudgetCount, len(parts))
	}
	for i, p := range parts {
		d, err := decimal.NewFromString(strings.TrimSpace(p))
		if err != nil {
			return limits, fmt.Errorf("invalid limit for %s: %q", models.DefaultCategories[i], p)
		}
		limits[i] = d
	}
	return limits, nil
}

func readStatement(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read statement: %w", err)
	}
	return string(data), nil
}
