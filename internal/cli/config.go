package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/easel/internal/config"
)

// ConfigCmd returns the config command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage easel.yaml",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default easel.yaml to the config directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.Dir()
			if err != nil {
				return err
			}
			force, _ := cmd.Flags().GetBool("force")
			dataDir, _ := cmd.Flags().GetString("data-dir")
			return initConfig(cmd, dir, dataDir, force)
		},
	}
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing easel.yaml")
	initCmd.Flags().String("data-dir", "", "Data directory to record in the config")

	cmd.AddCommand(initCmd)
	return cmd
}

func initConfig(cmd *cobra.Command, dir, dataDir string, force bool) error {
	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.Default()
	cfg.DataDir = dataDir
	if err := config.SaveConfig(dir, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
	return nil
}
