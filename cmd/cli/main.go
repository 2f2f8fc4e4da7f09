package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/infrastructure/postgres"
)

var (
	baseURL      string
	token        string
	outputFormat string
	timeout      time.Duration
)

// Migration entry points, replaced in tests.
var (
	migrateUp      = postgres.RunMigrations
	migrateDown    = postgres.RunMigrationsDown
	migrateVersion = postgres.MigrationVersion
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gcashledger-cli",
		Short:         "GCash ledger CLI tool",
		Long:          `A command line interface for the GCash cash-in/cash-out ledger.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch outputFormat {
			case "json", "yaml":
				return nil
			default:
				return fmt.Errorf("unsupported output format %q (want json or yaml)", outputFormat)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", envOr("GCASHLEDGER_URL", "http://localhost:8080"), "Base URL of the ledger API")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("GCASHLEDGER_TOKEN"), "Bearer token for authenticated servers")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "json", "Output format: json or yaml")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		feeCmd(),
		tieredFeeCmd(),
		recordCmd(),
		balancesCmd(),
		reconcileCmd(),
		migrateCmd(),
	)

	return rootCmd
}

type feeResult struct {
	Amount     string `json:"amount" yaml:"amount"`
	Percentage string `json:"percentage" yaml:"percentage"`
	Fee        string `json:"fee" yaml:"fee"`
	Kind       string `json:"kind,omitempty" yaml:"kind,omitempty"`
}

func feeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fee <amount> <percentage>",
		Short: "Compute the flat-percentage fee for an amount",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseMoney(args[0])
			if err != nil {
				return err
			}
			pct, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("%w: %q", domain.ErrInvalidPercentage, args[1])
			}

			fee, err := domain.ComputeFee(amount, pct)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), feeResult{
				Amount:     amount.StringFixed(domain.MoneyPlaces),
				Percentage: pct.String(),
				Fee:        fee.StringFixed(domain.MoneyPlaces),
			})
		},
	}
}

func tieredFeeCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "tiered-fee <amount>",
		Short: "Compute the fee from the tiered rate table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseMoney(args[0])
			if err != nil {
				return err
			}
			k, err := domain.ParseTransactionKind(kind)
			if err != nil {
				return err
			}

			rate, err := domain.TieredRate(amount, k)
			if err != nil {
				return err
			}
			fee, err := domain.ComputeTieredFee(amount, k)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), feeResult{
				Amount:     amount.StringFixed(domain.MoneyPlaces),
				Percentage: rate.String(),
				Fee:        fee.StringFixed(domain.MoneyPlaces),
				Kind:       string(k),
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(domain.KindCashIn), "Transaction kind: cash-in or cash-out")
	return cmd
}

func recordCmd() *cobra.Command {
	var (
		ownerID, kind, amount, idempotencyKey string
		fee, category, note, date             string
		tiered                                bool
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a cash-in or cash-out transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{"kind": kind, "amount": amount}
			if fee != "" {
				body["fee_percentage"] = fee
			}
			if tiered {
				body["fee_mode"] = "tiered"
			}
			if category != "" {
				body["category_id"] = category
			}
			if note != "" {
				body["note"] = note
			}
			if date != "" {
				body["date"] = date
			}

			result, err := newAPIClient().post(cmd.Context(), ownerPath(ownerID, "transactions"), body, idempotencyKey)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&ownerID, "owner", "", "Owner ID")
	cmd.Flags().StringVar(&kind, "kind", "cash-in", "Transaction kind: cash-in or cash-out")
	cmd.Flags().StringVar(&amount, "amount", "", "Transaction amount")
	cmd.Flags().StringVar(&fee, "fee", "", "Fee percentage override")
	cmd.Flags().BoolVar(&tiered, "tiered", false, "Use the tiered rate table instead of a percentage")
	cmd.Flags().StringVar(&category, "category", "", "Category ID")
	cmd.Flags().StringVar(&note, "note", "", "Free-form note")
	cmd.Flags().StringVar(&date, "date", "", "Transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Idempotency key (generated when empty)")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func balancesCmd() *cobra.Command {
	var ownerID, at string

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Show an owner's balances, now or at a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ownerPath(ownerID, "balances")
			if at != "" {
				path += "/at?date=" + at
			}

			result, err := newAPIClient().get(cmd.Context(), path)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&ownerID, "owner", "", "Owner ID")
	cmd.Flags().StringVar(&at, "at", "", "Balance as of date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func reconcileCmd() *cobra.Command {
	var ownerID string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Check an owner's profit aggregate against its entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newAPIClient().get(cmd.Context(), ownerPath(ownerID, "reconciliation"))
			if err != nil {
				return err
			}
			if err := render(cmd.OutOrStdout(), result); err != nil {
				return err
			}

			if m, ok := result.(map[string]any); ok {
				if reconciled, _ := m["is_reconciled"].(bool); !reconciled {
					return fmt.Errorf("owner %s is not reconciled", ownerID)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ownerID, "owner", "", "Owner ID")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func migrateCmd() *cobra.Command {
	var databaseURL, migrationsPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	cmd.PersistentFlags().StringVar(&migrationsPath, "path", envOr("MIGRATIONS_PATH", "migrations"), "Migrations directory")

	requireURL := func(cmd *cobra.Command, args []string) error {
		if databaseURL == "" {
			return fmt.Errorf("--database-url or DATABASE_URL is required")
		}
		return nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "up",
			Short:   "Apply all pending migrations",
			PreRunE: requireURL,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := migrateUp(databaseURL, migrationsPath); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:     "down",
			Short:   "Roll back all migrations",
			PreRunE: requireURL,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := migrateDown(databaseURL, migrationsPath); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations rolled back")
				return nil
			},
		},
		&cobra.Command{
			Use:     "version",
			Short:   "Print the current schema version",
			PreRunE: requireURL,
			RunE: func(cmd *cobra.Command, args []string) error {
				version, dirty, err := migrateVersion(databaseURL, migrationsPath)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), map[string]any{"version": version, "dirty": dirty})
			},
		},
	)

	return cmd
}

func render(w io.Writer, v any) error {
	if outputFormat == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseMoney(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, s)
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

func ownerPath(ownerID, resource string) string {
	return "/api/v1/owners/" + ownerID + "/" + resource
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
