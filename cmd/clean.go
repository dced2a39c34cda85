package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"wp-starter/internal/logger"
)

// keepOnClean survives a clean so dependencies need not be reinstalled.
const keepOnClean = "node_modules"

// cleanCmd empties the project directory, keeping node_modules.
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove everything in the project directory except node_modules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cleanDir(logger.Std(), dir)
	},
}

// cleanDir removes every entry of root except keepOnClean.
// A missing root is reported and treated as already clean.
func cleanDir(log *logger.Logger, root string) error {
	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		log.Skip("%s does not exist", root)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", root, err)
	}

	for _, e := range entries {
		if e.Name() == keepOnClean {
			logger.Debug("[DEBUG] Keeping %s\n", e.Name())
			continue
		}
		// Remove the file or directory; RemoveAll handles both
		if err := os.RemoveAll(filepath.Join(root, e.Name())); err != nil {
			return fmt.Errorf("remove %s: %w", e.Name(), err)
		}
		log.Remove("%s", e.Name())
	}
	return nil
}
