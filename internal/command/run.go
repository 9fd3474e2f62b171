package command

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"dbpd/internal/di"
	"dbpd/internal/structures"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the prompt engine and its HTTP API",
		Long: `Start the engine: restore persisted state, begin the save and
status-refresh schedules and serve the prompt API until SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			debug, _ := cmd.Flags().GetBool("debug")

			// A .env file is optional; exported variables win either way.
			_ = godotenv.Load()

			_, err := di.InitApp(&structures.CliFlags{
				ConfigPath: configPath,
				DebugMode:  debug,
			})
			return err
		},
	}

	cmd.Flags().StringP("config", "c", "config.yaml", "path to the YAML config file")
	cmd.Flags().BoolP("debug", "d", false, "debug logging and console output")

	return cmd
}
