package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/dmaksimov/interview-coach/internal/interview"
	"github.com/dmaksimov/interview-coach/internal/logger"
	"github.com/dmaksimov/interview-coach/internal/scenario"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario <file>",
	Short: "Replay a scripted interview from a JSON scenario file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runScenario(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(scenarioCmd)

	scenarioCmd.Flags().String("name", "Candidate", "candidate name for the report")
	scenarioCmd.Flags().String("position", "Python Developer", "position the scripted candidate applies for")
	scenarioCmd.Flags().String("grade", "Junior", "target grade for the scripted run")
	scenarioCmd.Flags().String("experience", "", "experience text used for plan adaptation")
}

// applyCandidateFlags layers flag values over the candidate config. A flag
// default only applies when the config left the field empty; an explicitly
// set flag always wins.
func applyCandidateFlags(cmd *cobra.Command, candidate *CandidateConfig) {
	set := func(name string, target *string) {
		if cmd.Flags().Changed(name) || *target == "" {
			*target = cmd.Flag(name).Value.String()
		}
	}
	set("name", &candidate.Name)
	set("position", &candidate.Position)
	set("grade", &candidate.Grade)
	set("experience", &candidate.Experience)
}

// runScenario replays a scenario file against the deterministic assistant
// (or gemini when configured) and prints the final report.
func runScenario(cmd *cobra.Command, path string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	applyCandidateFlags(cmd, config.Candidate)

	messages, err := scenario.Load(path)
	if err != nil {
		logger.Fatal("loading the scenario", zap.Error(err))
	}
	logger.Info("scenario loaded", zap.String("file", path), zap.Int("messages", len(messages)))

	assistant, err := newAssistant(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building the assistant", zap.Error(err))
	}

	answers := scenario.NewAnswers(messages)
	result, plan, err := runInterview(ctx, config, assistant, answers, logger)
	if err != nil {
		logger.Fatal("running the scenario", zap.Error(err))
	}

	if remaining := answers.Remaining(); remaining > 0 {
		logger.Info("scenario finished with unplayed messages", zap.Int("remaining", remaining))
	}

	fmt.Println()
	fmt.Print(interview.FormatResult(result, plan))
}
