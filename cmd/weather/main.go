package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/awaistahir/skycast/internal/app"
	"github.com/awaistahir/skycast/internal/config"
	"github.com/awaistahir/skycast/internal/geo"
	"github.com/awaistahir/skycast/internal/present"
	"github.com/awaistahir/skycast/internal/store"
	"github.com/awaistahir/skycast/internal/weather"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	dbPath  string
	verbose bool
	jsonOut bool

	cfg    *config.Config
	logger = zap.NewNop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "weather",
		Short: "Current weather and a 5-day forecast from OpenWeatherMap",
		Long: `weather looks up current conditions and a 5-day forecast for a city
or a position, and remembers your last five searches.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.skycast/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default is $HOME/.skycast/skycast.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests and timings")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print results as JSON")

	rootCmd.AddCommand(cityCmd())
	rootCmd.AddCommand(coordsCmd())
	rootCmd.AddCommand(hereCmd())
	rootCmd.AddCommand(recentCmd())
	rootCmd.AddCommand(historyCmd())

	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		// lookup failures were already shown as a banner
		var lerr *app.LookupError
		if !errors.As(err, &lerr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnv(".env"); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	if verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
	}
	return nil
}

// openApp opens the store and builds the application around it. The
// returned App owns the store.
func openApp(ctx context.Context, needClient bool) (*app.App, error) {
	if needClient {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	loc, err := cfg.Zone()
	if err != nil {
		return nil, err
	}

	st, err := store.NewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	client := weather.NewClient(cfg.Weather(), logger)
	a := app.New(client, st,
		app.WithHistory(st),
		app.WithLogger(logger),
		app.WithLocation(loc),
	)
	if err := a.Load(ctx); err != nil {
		logger.Warn("starting with empty recent searches", zap.Error(err))
	}
	return a, nil
}

// runLookup prints the lookup to the terminal, or as JSON with --json
func runLookup(fn func(view present.View) error) error {
	if !jsonOut {
		return fn(present.NewTerminal(os.Stdout, os.Stderr))
	}

	state := &present.State{}
	if err := fn(state); err != nil {
		fmt.Fprintln(os.Stderr, state.Error)
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]interface{}{
		"current":  state.Current,
		"forecast": state.Cards,
	})
}

func cityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "city NAME",
		Short: "Look up the weather for a city",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			a, err := openApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close()

			return runLookup(func(view present.View) error {
				_, err := a.LookupCity(ctx, view, strings.Join(args, " "))
				return err
			})
		},
	}
}

func coordsCmd() *cobra.Command {
	var lat, lon float64

	cmd := &cobra.Command{
		Use:   "coords",
		Short: "Look up the weather for a latitude and longitude",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			a, err := openApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close()

			return runLookup(func(view present.View) error {
				_, err := a.LookupCoords(ctx, view, lat, lon)
				return err
			})
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude (required)")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude (required)")
	cmd.MarkFlagRequired("lat")
	cmd.MarkFlagRequired("lon")

	return cmd
}

func hereCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "here",
		Short: "Look up the weather for the configured location",
		Long: `here resolves your position from location.latitude and
location.longitude in the config file (or SKYCAST_LOCATION_LATITUDE and
SKYCAST_LOCATION_LONGITUDE) and looks it up.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			a, err := openApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close()

			return runLookup(func(view present.View) error {
				_, err := a.LookupHere(ctx, view, geo.NewFixed(cfg.Location))
				return err
			})
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Give up after this long")

	return cmd
}

func recentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recent searches",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(context.Background(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			items := a.Recent()
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(items)
			}
			if len(items) == 0 {
				fmt.Println("No recent searches")
				return nil
			}
			for i, city := range items {
				fmt.Printf("%d. %s\n", i+1, city)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget all recent searches",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewStore(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer st.Close()

			if err := st.ClearRecent(context.Background()); err != nil {
				return err
			}
			fmt.Println("✓ Cleared recent searches")
			return nil
		},
	})

	return cmd
}

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past lookups",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewStore(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer st.Close()

			lookups, err := st.Lookups(context.Background(), limit)
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(lookups)
			}

			if len(lookups) == 0 {
				fmt.Println("No lookups yet")
				return nil
			}

			fmt.Printf("%-17s %-7s %-24s %-20s %s\n", "WHEN", "KIND", "QUERY", "RESOLVED", "OK")
			fmt.Println("--------------------------------------------------------------------------------")
			for _, l := range lookups {
				ok := "Yes"
				if !l.Success {
					ok = "No"
				}
				fmt.Printf("%-17s %-7s %-24s %-20s %s\n",
					l.CreatedAt.Local().Format("2006-01-02 15:04"), l.Kind, l.Query, l.Resolved, ok)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of lookups to show")

	return cmd
}
