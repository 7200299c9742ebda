package cmd

import (
	"encoding/json"
	"os"

	"github.com/careercompass/api/internal/models"
	"github.com/careercompass/api/internal/services"
	"github.com/spf13/cobra"
)

var syncJobsCmd = &cobra.Command{
	Use:   "sync-jobs",
	Short: "Fetch postings from the configured provider once and store them",
	RunE: func(cmd *cobra.Command, _ []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		search, _ := cmd.Flags().GetString("search")

		rt, err := openRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		res, err := rt.services().jobs.Sync(cmd.Context(), services.SyncInput{
			Limit:   limit,
			Search:  search,
			Trigger: models.TriggerCLI,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func init() {
	syncJobsCmd.Flags().Int("limit", 0, "max postings to fetch (0 uses JOBS_SYNC_LIMIT)")
	syncJobsCmd.Flags().String("search", "", "provider search term")
	rootCmd.AddCommand(syncJobsCmd)
}
