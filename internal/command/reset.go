package command

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"dbpd/internal/providers"
	"dbpd/internal/structures"
)

// NewResetCmd creates the reset command.
func NewResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the activity counter on a running engine",
		Long: `Ask a running engine to discard its activity counter, in memory
and on disk. Prompt history is kept. The engine must be reachable at
the address in the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			conf, err := providers.NewConfigProvider(&structures.CliFlags{ConfigPath: configPath})
			if err != nil {
				return err
			}

			url := "http://" + conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port) + "/reset"
			client := &http.Client{Timeout: 5 * time.Second}
			resp, err := client.Post(url, "application/json", nil)
			if err != nil {
				return fmt.Errorf("engine not reachable at %s: %w", url, err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusNoContent {
				return fmt.Errorf("reset failed: %s", resp.Status)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "activity cleared")
			return nil
		},
	}

	cmd.Flags().StringP("config", "c", "config.yaml", "path to the YAML config file")

	return cmd
}
