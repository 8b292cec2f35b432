// Command softkill runs the SOFT-KILL-9000 multi-agent cosmic mission
// simulator from the command line or as an HTTP service.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/BkAsDrP/Soft-Kill-9000/internal/api"
	"github.com/BkAsDrP/Soft-Kill-9000/internal/config"
	"github.com/BkAsDrP/Soft-Kill-9000/internal/cosmos"
	"github.com/BkAsDrP/Soft-Kill-9000/internal/mission"
	"github.com/BkAsDrP/Soft-Kill-9000/internal/persistence"
)

const version = "1.0.0"

var (
	flagVerbose bool
	flagLogFile string

	flagConfig    string
	flagTimesteps int
	flagEpisodes  int
	flagSeed      int64
	flagNoEthics  bool
	flagExport    string
	flagDB        string

	flagPort int
)

func main() {
	root := &cobra.Command{
		Use:     "softkill",
		Short:   "SOFT-KILL-9000: multi-agent cosmic mission simulator",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(flagVerbose, flagLogFile)
		},
	}
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "append logs to a file instead of stderr")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run one mission simulation",
		RunE:  runMission,
	}
	addRunFlags(runCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the mission API over HTTP",
		RunE:  serve,
	}
	serveCmd.Flags().IntVar(&flagPort, "port", 8080, "listen port")
	serveCmd.Flags().StringVar(&flagDB, "db", "", "persist results to a SQLite database")

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the mission catalogs",
		Run:   printCatalog,
	}

	root.AddCommand(runCmd, serveCmd, catalogCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging installs the process-wide slog handler. When logFile is
// set, logs append to that file rather than stderr.
func setupLogging(verbose bool, logFile string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	var w io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		w = f
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})))
	return nil
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "path to YAML configuration file")
	cmd.Flags().IntVar(&flagTimesteps, "timesteps", 0, "override mission timestep count (10-500)")
	cmd.Flags().IntVar(&flagEpisodes, "episodes", 0, "override training episode count (100-10000)")
	cmd.Flags().Int64Var(&flagSeed, "seed", 0, "override random seed")
	cmd.Flags().BoolVar(&flagNoEthics, "no-ethics", false, "disable ethics-aware reward shaping")
	cmd.Flags().StringVar(&flagExport, "export", "", "export results to a JSON file")
	cmd.Flags().StringVar(&flagDB, "db", "", "persist results to a SQLite database")
}

// applyFlagOverrides layers explicitly-set run flags onto cfg. Checking
// Changed rather than the value lets --seed 0 pin the zero seed.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("timesteps") {
		cfg.Mission.NumTimesteps = flagTimesteps
	}
	if cmd.Flags().Changed("episodes") {
		cfg.QLearning.Episodes = flagEpisodes
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flagNoEthics {
		cfg.Mission.EthicsEnabled = false
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if flagConfig != "" {
		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return config.Config{}, err
		}
	}
	applyFlagOverrides(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runMission(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	start := time.Now()
	sim := mission.NewSimulator(cfg)
	if err := sim.Setup(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	res, err := sim.Run()
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	fmt.Println(res.Scenario.String())
	fmt.Printf("\nSquad of %d ran %s timesteps (%s training episodes per role) in %s.\n",
		len(res.AgentStats),
		humanize.Comma(int64(res.Config.NumTimesteps)),
		humanize.Comma(int64(res.Config.Episodes)),
		time.Since(start).Round(time.Millisecond),
	)
	fmt.Printf("Total squad reward: %.2f\n", res.TotalReward)
	for _, a := range rankedAgents(res) {
		fmt.Printf("  %-20s %10.2f\n", a.name, a.reward)
	}

	if flagExport != "" {
		if err := res.WriteJSON(flagExport); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		slog.Info("results exported", "path", flagExport)
	}

	if flagDB != "" {
		store, err := persistence.Open(flagDB)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()
		id := uuid.NewString()
		if err := store.SaveResult(id, res); err != nil {
			return fmt.Errorf("persist: %w", err)
		}
		slog.Info("results persisted", "db", flagDB, "id", id)
	}

	return nil
}

type rankedAgent struct {
	name   string
	reward float64
}

// rankedAgents orders agents by final reward, best first, using the
// mission log to recover roster order for ties.
func rankedAgents(res *mission.Result) []rankedAgent {
	var names []string
	seen := make(map[string]bool)
	for _, e := range res.Log {
		if !seen[e.Name] {
			seen[e.Name] = true
			names = append(names, e.Name)
		}
	}
	out := make([]rankedAgent, 0, len(names))
	for _, n := range names {
		out = append(out, rankedAgent{name: n, reward: res.FinalRewards[n]})
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].reward > out[j-1].reward; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func serve(cmd *cobra.Command, args []string) error {
	var store *persistence.Store
	if flagDB != "" {
		var err error
		store, err = persistence.Open(flagDB)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()
	}

	srv := &api.Server{Port: flagPort, Store: store}
	return srv.Start()
}

func printCatalog(cmd *cobra.Command, args []string) {
	fmt.Println("Roles:")
	for role, desc := range cosmos.RoleDescriptions {
		fmt.Printf("  %-20s %s\n", role, desc)
	}
	fmt.Println("\nSpecies:")
	for sp := range cosmos.SpeciesModifiers {
		fmt.Printf("  %s\n", sp)
	}
	fmt.Println("\nTerrains:")
	for _, t := range cosmos.Terrains {
		fmt.Printf("  %s\n", t)
	}
	fmt.Println("\nWeather:")
	for _, w := range cosmos.WeatherConditions {
		fmt.Printf("  %s\n", w)
	}
	fmt.Println("\nScenarios:")
	for _, n := range cosmos.Narratives {
		fmt.Printf("  %s\n", n)
	}
}
