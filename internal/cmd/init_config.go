package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/creoclean/internal/config"
	"github.com/harrison/creoclean/internal/filelock"
	"github.com/spf13/cobra"
)

const configHeader = `# creoclean configuration
# log_level: debug, info, warning, error
# history.db_path: empty means $CREOCLEAN_HOME/history.db (default ~/.creoclean)
`

// NewInitConfigCommand creates the 'creoclean init-config' command
func NewInitConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-config [dir]",
		Short: "Write a default " + defaultConfigName,
		Long: `Write a ` + defaultConfigName + ` containing the default settings into
dir (the current directory if omitted). An existing file is only replaced
with --force.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInitConfig,
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing config file")

	return cmd
}

// runInitConfig executes the init-config command
func runInitConfig(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	path := filepath.Join(dir, defaultConfigName)

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	data, err := config.DefaultConfig().Marshal()
	if err != nil {
		return err
	}

	if err := filelock.AtomicWrite(path, append([]byte(configHeader), data...)); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
