package cmd

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"wp-starter/internal/config"
	"wp-starter/internal/logger"
)

// configCmd shows the stored author and starter-theme defaults.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the stored author and starter theme defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(cmd.OutOrStdout(), config.NewStore(""))
	},
}

func showConfig(w io.Writer, store *config.Store) error {
	log := logger.New(w)
	stored, err := store.Load()
	if errors.Is(err, config.ErrNotFound) {
		log.Info("no stored defaults at %s; they are written on the first run", store.Path())
		return nil
	}
	if err != nil {
		return err
	}

	log.Info("%s", store.Path())
	log.Writeln("authorName: %s", stored.AuthorName)
	log.Writeln("authorURI:  %s", stored.AuthorURI)
	log.Writeln("theme:      %s", stored.Theme)
	return nil
}
