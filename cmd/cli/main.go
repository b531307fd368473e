package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lone4alker/easyshift/internal/config"
	"github.com/lone4alker/easyshift/pkg/core/engine"
	"github.com/lone4alker/easyshift/pkg/core/model"
	"github.com/lone4alker/easyshift/pkg/core/predictor"
	"github.com/lone4alker/easyshift/pkg/core/services"
	"github.com/lone4alker/easyshift/pkg/db"
	"github.com/lone4alker/easyshift/pkg/demo"
	"github.com/lone4alker/easyshift/pkg/postgres"
	"github.com/lone4alker/easyshift/pkg/server"
	"github.com/lone4alker/easyshift/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	eng      *engine.Engine
	database *postgres.DB
	logger   *zap.Logger
	ctx      context.Context
}

var (
	configPath string
	verbose    bool
	app        *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "easyshift",
		Short: "EasyShift - Shift schedule optimizer for small retail businesses",
		Long:  `A schedule optimizer that predicts daily staffing demand, aligns shifts to business-type role mixes, and audits every correction it makes.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.database != nil {
					app.database.Close()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: easyshift.yaml in cwd or home)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on the console")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(optimizeCmd())
	rootCmd.AddCommand(updateCmd())
	rootCmd.AddCommand(demoCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(runsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, engine, and (when configured) the database
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger("easyshift", verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if configPath != "" {
		app.cfg, err = config.LoadFromPath(configPath)
	} else {
		app.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded",
		zap.String("listen_addr", app.cfg.ListenAddr),
		zap.Float64("max_hours_per_day", app.cfg.MaxHoursPerDay))

	app.eng = engine.New(engine.Config{
		Predictor: predictor.NewTuned(predictor.DemoModel{}, predictor.Tuning{
			FallbackBase:   app.cfg.FallbackBase,
			WeekendFactor:  app.cfg.WeekendFactor,
			FestivalFactor: app.cfg.FestivalFactor,
		}),
		MaxHoursPerDay: app.cfg.MaxHoursPerDay,
	})

	if app.cfg.DatabaseURL != "" {
		app.logger.Info("Connecting to database")
		app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.logger.Debug("Database connection established")
	}

	return nil
}

// store adapts the optional postgres connection to the db interface,
// avoiding a typed-nil interface value when no database is configured.
func store() db.Database {
	if app.database == nil {
		return nil
	}
	return app.database
}

// Command definitions

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = app.cfg.ListenAddr
			}

			handler := server.NewHandler(app.eng, store(), app.logger)
			app.logger.Info("Starting HTTP server", zap.String("addr", addr))
			return handler.ListenAndServe(addr)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides config)")

	return cmd
}

func optimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize [payload.json]",
		Short: "Optimize a schedule from a payload file or a stored business",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			businessID, _ := cmd.Flags().GetString("business-id")
			output, _ := cmd.Flags().GetString("output")

			var outcome *services.RunOutcome
			var err error
			switch {
			case businessID != "":
				if app.database == nil {
					return fmt.Errorf("no database configured: set databaseURL in the config file")
				}
				outcome, err = services.OptimizeFromStore(app.ctx, app.database, app.eng, app.logger, businessID)
			case len(args) == 1:
				raw, readErr := readPayload(args[0])
				if readErr != nil {
					return readErr
				}
				outcome, err = services.OptimizeSchedule(app.ctx, app.eng, app.logger, raw)
			default:
				return fmt.Errorf("provide a payload file or --business-id")
			}
			if err != nil {
				return err
			}

			return printResult(outcome, output)
		},
	}

	cmd.Flags().String("business-id", "", "Optimize the stored snapshot of this business")
	cmd.Flags().String("output", "summary", "Output format: summary or json")

	return cmd
}

func updateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <payload.json>",
		Short: "Apply a schedule update transaction and re-optimize",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")

			raw, err := readPayload(args[0])
			if err != nil {
				return err
			}

			outcome, err := services.UpdateSchedule(app.ctx, app.eng, app.logger, raw)
			if err != nil {
				return err
			}

			return printResult(outcome, output)
		},
	}

	cmd.Flags().String("output", "summary", "Output format: summary or json")

	return cmd
}

func demoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Generate a sample payload and optimize it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			businessType, _ := cmd.Flags().GetString("business-type")
			startDate, _ := cmd.Flags().GetString("start")
			days, _ := cmd.Flags().GetInt("days")
			staffCount, _ := cmd.Flags().GetInt("staff")
			seed, _ := cmd.Flags().GetInt64("seed")
			payloadOnly, _ := cmd.Flags().GetBool("payload-only")
			output, _ := cmd.Flags().GetString("output")

			if businessType == "" {
				businessType = app.cfg.DemoBusinessType
			}
			if startDate == "" {
				startDate = app.cfg.DemoStartDate
			}
			if days == 0 {
				days = app.cfg.DemoDays
			}
			if staffCount == 0 {
				staffCount = app.cfg.DemoStaffCount
			}
			if !cmd.Flags().Changed("seed") {
				seed = app.cfg.DemoSeed
			}

			raw, err := demo.Payload(businessType, startDate, days, staffCount, seed)
			if err != nil {
				return err
			}

			if payloadOnly {
				return printJSON(raw)
			}

			outcome, err := services.OptimizeSchedule(app.ctx, app.eng, app.logger, raw)
			if err != nil {
				return err
			}

			return printResult(outcome, output)
		},
	}

	cmd.Flags().String("business-type", "", "Business type for the sample payload")
	cmd.Flags().String("start", "", "First schedule date (YYYY-MM-DD)")
	cmd.Flags().Int("days", 0, "Number of days to generate")
	cmd.Flags().Int("staff", 0, "Number of staff members to generate")
	cmd.Flags().Int64("seed", 0, "Seed for deterministic generation")
	cmd.Flags().Bool("payload-only", false, "Print the generated payload without optimizing")
	cmd.Flags().String("output", "summary", "Output format: summary or json")

	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.database == nil {
				return fmt.Errorf("no database configured: set databaseURL in the config file")
			}

			if err := app.database.RunMigrations(app.ctx); err != nil {
				return err
			}

			fmt.Println("Migrations applied successfully.")
			return nil
		},
	}
}

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs <business_id>",
		Short: "List recent optimization runs for a business",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.database == nil {
				return fmt.Errorf("no database configured: set databaseURL in the config file")
			}

			limit, _ := cmd.Flags().GetInt("limit")
			runs, err := app.database.GetRuns(app.ctx, args[0], limit)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("No runs recorded for this business.")
				return nil
			}

			fmt.Printf("\n%d recent runs:\n\n", len(runs))
			for _, run := range runs {
				fmt.Printf("  %s  %-8s  shifts %d -> %d  cost %.2f -> %.2f  changes %d  %s\n",
					run.ID,
					run.Operation,
					run.ShiftsBefore,
					run.ShiftsAfter,
					run.CostBefore,
					run.CostAfter,
					run.ChangeCount,
					run.CreatedAt.Format("2006-01-02 15:04"),
				)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to list")

	return cmd
}

// Output helpers

func readPayload(path string) (*model.RawPayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload file: %w", err)
	}

	var raw model.RawPayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse payload file: %w", err)
	}

	return &raw, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	fmt.Println(string(data))
	return nil
}

func printResult(outcome *services.RunOutcome, output string) error {
	if output == "json" {
		return printJSON(outcome.Result)
	}

	res := outcome.Result
	fmt.Printf("\nRun %s (%s, %d staff)\n\n", outcome.RunID, res.Metadata.BusinessType, res.Metadata.TotalStaff)
	fmt.Printf("Shifts:          %d -> %d\n", res.Summary.TotalShiftsBefore, res.Summary.TotalShiftsAfter)
	fmt.Printf("Cost:            %.2f -> %.2f (savings %.2f)\n", res.Summary.TotalCostBefore, res.Summary.TotalCostAfter, res.Summary.CostSavings)
	fmt.Printf("Days optimized:  %d\n", res.Summary.DaysOptimized)
	fmt.Printf("Predicted staff: %s\n", res.Summary.PredictedStaffRange)

	if len(res.Changes) > 0 {
		fmt.Printf("\nChanges (%d):\n", len(res.Changes))
		for _, ch := range res.Changes {
			fmt.Printf("  %-7s %s  %-14s %s (%s)\n", ch.Type, ch.Date, ch.Role, ch.StaffName, ch.Reason)
		}
	}

	if len(res.Suggestions) > 0 {
		fmt.Println("\nSuggestions:")
		for _, s := range res.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}
	fmt.Println()

	return nil
}
