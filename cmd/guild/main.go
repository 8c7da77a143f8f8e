package main

import (
	"os"

	"github.com/go-arcade/guild/internal/bootstrap"
	"github.com/go-arcade/guild/pkg/version"
	"github.com/spf13/cobra"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/4 19:51
 * @file: main.go
 * @description: guild server
 */

var configFile string

var rootCmd = &cobra.Command{
	Use:   "guild",
	Short: "guild serves committee boards for student organizations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := bootstrap.Bootstrap(configFile, initApp)
		if err != nil {
			return err
		}
		if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
			if err := app.Migrate(); err != nil {
				cleanup()
				return err
			}
		}
		return bootstrap.Run(app, cleanup)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := bootstrap.Bootstrap(configFile, initApp)
		if err != nil {
			return err
		}
		defer cleanup()
		return app.Migrate()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "conf", "c", "conf.d/config.toml", "conf file path, e.g. --conf ./conf.d/config.toml")
	serveCmd.Flags().Bool("migrate", false, "migrate the schema before serving")

	rootCmd.AddCommand(serveCmd, migrateCmd, version.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
