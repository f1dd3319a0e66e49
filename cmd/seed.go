package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/grindboard/practice-service/internal/cache"
	"github.com/grindboard/practice-service/internal/config"
	"github.com/grindboard/practice-service/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert realistic demo questions and practice sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		questionCount, _ := cmd.Flags().GetInt("questions")
		attemptCount, _ := cmd.Flags().GetInt("attempts")
		seedValue, _ := cmd.Flags().GetUint64("seed")
		if questionCount <= 0 {
			return fmt.Errorf("--questions must be positive")
		}
		if attemptCount < 0 {
			return fmt.Errorf("--attempts must not be negative")
		}
		if seedValue == 0 {
			seedValue = uint64(time.Now().UnixNano())
		}

		app, err := newApplication(ctx, os.Stderr)
		if err != nil {
			return err
		}
		defer app.Close(ctx)

		if app.cfg.Database.Driver == config.DriverMemory {
			app.logger.Warn("Seeding the memory driver; data is dropped when the command exits")
		}

		result, err := seed.Run(ctx, app.repoManager.GetRepository(), seed.NewGenerator(seedValue), questionCount, attemptCount)
		if err != nil {
			return err
		}
		cache.InvalidateStatsCache(ctx, cache.NewCacheManager(app.redisClient))

		cmd.Printf("Inserted %d questions across %d topics and %d practice sessions\n", result.Questions, result.Topics, result.Attempts)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().Int("questions", 50, "number of questions to create")
	seedCmd.Flags().Int("attempts", 1100, "number of practice sessions to create")
	seedCmd.Flags().Uint64("seed", 0, "random seed, 0 picks one from the clock")
}
