package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"cryptoapp/src/config"
	"cryptoapp/src/database"
	"cryptoapp/src/repositories"
	"cryptoapp/src/services"
	"cryptoapp/src/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	settingsPath string
	environment  string
	portfolioID  int64

	pool           *pgxpool.Pool
	holdingService *services.HoldingService

	rootCmd = &cobra.Command{
		Use:          "ledgerctl",
		Short:        "Maintenance commands for portfolio ledgers and holdings",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.LoadConfig(settingsPath, environment)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := utils.NewLoggerFromLevel(cfg.Log.Level, cfg.Log.File)
			cmd.SetContext(utils.WithLogger(cmd.Context(), logger))

			pool, err = database.SetupDB(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			holdingService = services.NewHoldingService(
				repositories.NewHoldingRepository(pool),
				repositories.NewTransactionRepository(pool),
				repositories.NewPortfolioRepository(pool),
				utils.SystemClock{},
			)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if pool != nil {
				pool.Close()
			}
		},
	}

	replayCmd = &cobra.Command{
		Use:   "replay",
		Short: "Rebuild holdings from the transaction ledger",
		Long: `Recomputes every holding from its ledger and fixes drifted rows.
Without --portfolio every portfolio is replayed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				result *services.ReplayResult
				err    error
			)
			if portfolioID > 0 {
				result, err = holdingService.ReplayPortfolio(cmd.Context(), portfolioID)
			} else {
				result, err = holdingService.ReplayAll(cmd.Context())
			}
			if err != nil {
				return err
			}
			utils.LoggerFromContext(cmd.Context()).WithFields(logrus.Fields{
				"portfolios": result.Portfolios,
				"upserted":   result.Upserted,
				"deleted":    result.Deleted,
				"unchanged":  result.Unchanged,
			}).Info("replay finished")
			return printJSON(result)
		},
	}

	holdingsCmd = &cobra.Command{
		Use:   "holdings",
		Short: "Print the stored holdings of a portfolio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if portfolioID <= 0 {
				return fmt.Errorf("--portfolio is required")
			}
			holdings, err := holdingService.GetAllByPortfolio(cmd.Context(), portfolioID)
			if err != nil {
				return err
			}
			return printJSON(holdings)
		},
	}
)

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "./settings", "directory holding appsettings files")
	rootCmd.PersistentFlags().StringVar(&environment, "env", os.Getenv("ENV"), "settings environment suffix")

	replayCmd.Flags().Int64Var(&portfolioID, "portfolio", 0, "replay a single portfolio")
	holdingsCmd.Flags().Int64Var(&portfolioID, "portfolio", 0, "portfolio id")

	rootCmd.AddCommand(replayCmd, holdingsCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
