package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/dmaksimov/interview-coach/internal/ai"
	"github.com/dmaksimov/interview-coach/internal/ai/gemini"
	"github.com/dmaksimov/interview-coach/internal/ai/mock"
	"github.com/dmaksimov/interview-coach/internal/interview"
	"github.com/dmaksimov/interview-coach/internal/logger"
	"github.com/dmaksimov/interview-coach/internal/resources"
	"github.com/dmaksimov/interview-coach/internal/secrets"
	"github.com/dmaksimov/interview-coach/internal/session"
	"github.com/dmaksimov/interview-coach/internal/topics"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var gradeItems = []string{
	string(topics.GradeJunior),
	string(topics.GradeMiddle),
	string(topics.GradeSenior),
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive interview session",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("provider", "p", "", "ai provider: gemini or mock (default is mock unless configured)")
	runCmd.Flags().String("grade", "", "target grade: Junior, Middle or Senior")

	viper.BindPFlag("ai.provider", runCmd.Flags().Lookup("provider"))
	viper.BindPFlag("candidate.grade", runCmd.Flags().Lookup("grade"))
}

// run is the interactive interview command.
func run(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the interview-coach", zap.String("version", version))

	if err := promptForCandidate(config.Candidate); err != nil {
		logger.Fatal("collecting candidate details", zap.Error(err))
	}

	assistant, err := newAssistant(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building the assistant", zap.Error(err))
	}

	result, plan, err := runInterview(ctx, config, assistant, &terminalAnswers{}, logger)
	if err != nil {
		logger.Fatal("running the interview", zap.Error(err))
	}

	fmt.Println()
	fmt.Print(interview.FormatResult(result, plan))
}

// runInterview builds the plan, session, and runner, and executes the loop.
// Shared between the interactive and scripted commands.
func runInterview(ctx context.Context, config *Config, assistant ai.Assistant, answers interview.AnswerSource, logger *zap.Logger) (*interview.Result, *topics.Plan, error) {
	candidate := config.Candidate
	plan := topics.BuildPlan(candidate.Position, candidate.Grade, candidate.Experience)
	state := session.NewState(candidate.Name, candidate.Position, plan.Grade, candidate.Experience)

	logger.Info("interview plan ready",
		zap.String("session_id", state.ID),
		zap.String("grade", string(plan.Grade)),
		zap.Int("topics", len(plan.Topics)),
		zap.Int("max_turns", plan.Rules.MaxTotalTurns),
	)
	logger.Debug("plan summary", zap.String("summary", plan.Summary))

	library, err := resources.NewLibrary()
	if err != nil {
		return nil, nil, fmt.Errorf("building resource library: %w", err)
	}

	runner := interview.NewRunner(plan, state, assistant, answers, library, config.CoverageThreshold, logger)
	runner.AskHook = func(question string) {
		fmt.Printf("\nInterviewer: %s\n", question)
	}

	result, err := runner.Run(ctx)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("interview finished",
		zap.String("stop_reason", result.StopReason),
		zap.Int("turns", result.Turns),
		zap.Float64("overall_coverage", result.Snapshot.Overall),
		zap.Int("confidence", result.Confidence),
	)

	return result, plan, nil
}

// promptForCandidate fills in any candidate fields the config left empty.
func promptForCandidate(candidate *CandidateConfig) error {
	if candidate.Name == "" {
		prompt := promptui.Prompt{Label: "Candidate name"}
		name, err := prompt.Run()
		if err != nil {
			return err
		}
		candidate.Name = name
	}

	if candidate.Position == "" {
		prompt := promptui.Prompt{
			Label:   "Position",
			Default: "Python Developer",
		}
		position, err := prompt.Run()
		if err != nil {
			return err
		}
		candidate.Position = position
	}

	if candidate.Grade == "" {
		prompt := promptui.Select{
			Label: "Target grade",
			Items: gradeItems,
		}
		_, grade, err := prompt.Run()
		if err != nil {
			return err
		}
		candidate.Grade = grade
	}

	if candidate.Experience == "" {
		prompt := promptui.Prompt{Label: "Briefly describe your experience"}
		experience, err := prompt.Run()
		if err != nil {
			return err
		}
		candidate.Experience = experience
	}

	return nil
}

// newAssistant picks the model backend. The deterministic mock is the
// default so the cli works without credentials.
func newAssistant(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Assistant, error) {
	provider := ""
	if cfg != nil {
		provider = strings.TrimSpace(strings.ToLower(cfg.Provider))
	}

	switch provider {
	case "", "mock":
		log.Info("using the deterministic assistant", zap.String("provider", "mock"))
		return mock.New(), nil
	case "gemini":
		// handled below
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		cfg.Gemini = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY_FILE",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.WithCommonFields(log, "gemini", cfg.Gemini.Model).With(
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewCoach(generator, genLogger, cfg.Gemini.MaxLogLength), nil
}

// terminalAnswers reads candidate answers from the terminal. Ctrl-C and
// Ctrl-D end the interview instead of erroring out.
type terminalAnswers struct{}

func (t *terminalAnswers) NextAnswer(_ string) (string, error) {
	prompt := promptui.Prompt{Label: "You"}
	answer, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return "", io.EOF
		}
		return "", err
	}
	return answer, nil
}
