package cmd

import (
	"github.com/careercompass/api/internal/logger"
	"github.com/careercompass/api/internal/migrations"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := openRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		applied, err := migrations.Migrate(cmd.Context(), rt.db, logger.Component(rt.log, "migrate"))
		if err != nil {
			return err
		}
		rt.log.WithField("applied", len(applied)).Info("migrations complete")

		if withSeed, _ := cmd.Flags().GetBool("seed"); withSeed {
			return migrations.Seed(cmd.Context(), rt.db, logger.Component(rt.log, "seed"))
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load reference data (careers, skills, certifications, world stats)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := openRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		if err := migrations.Seed(cmd.Context(), rt.db, logger.Component(rt.log, "seed")); err != nil {
			return err
		}
		rt.log.Info("seed complete")
		return nil
	},
}

func init() {
	migrateCmd.Flags().Bool("seed", false, "load reference data after migrating")
	rootCmd.AddCommand(migrateCmd, seedCmd)
}
