package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"habitquest/internal/config"
	"habitquest/internal/logging"
	"habitquest/internal/ui"
)

const Version = "0.1.0"

var (
	cfgPath string
	dbPath  string
	verbose bool

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "hq",
	Short:         "HabitQuest: local-first habit tracker with streaks and XP",
	Long:          "HabitQuest tracks daily habits, computes streaks and consistency, awards XP and levels, and can ask an AI coach for advice.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if dbPath != "" {
			loaded.DBPath = dbPath
		}
		cfg = loaded

		l, err := logging.New(cfg.LogLevel, verbose)
		if err != nil {
			return err
		}
		logger = l
		logger.Debug("config loaded",
			zap.String("path", cfgPath),
			zap.String("timezone", cfg.Timezone),
			zap.String("provider", cfg.Coach.Provider))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "Config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (overrides config and HABITQUEST_DB)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr")

	rootCmd.AddCommand(
		newAddCmd(),
		newSuggestCmd(),
		newLogCmd(),
		newListCmd(),
		newRenameCmd(),
		newDeleteCmd(),
		newStatusCmd(),
		newReportCmd(),
		newCalendarCmd(),
		newRemindersCmd(),
		newCoachCmd(),
		newLoginCmd(),
		newExportCmd(),
		newImportCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
