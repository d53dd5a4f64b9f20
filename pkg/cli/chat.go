package cli

import (
	"context"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemon-dev/mnemon/pkg/cli/config"
	"github.com/mnemon-dev/mnemon/pkg/usecase"
	"github.com/mnemon-dev/mnemon/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdChat() *cli.Command {
	var userID string
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var assistantCfg config.Assistant

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "user",
			Usage:       "User ID owning the conversation",
			Value:       "local",
			Sources:     cli.EnvVars("MNEMON_CHAT_USER"),
			Destination: &userID,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, assistantCfg.Flags()...)

	return &cli.Command{
		Name:      "chat",
		Aliases:   []string{"c"},
		Usage:     "Run a single conversational turn from the command line",
		ArgsUsage: "<question>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			question := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(question) == "" {
				return goerr.New("question argument is required")
			}

			assistant, err := assistantCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load assistant configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}

			uc := usecase.New(repo,
				usecase.WithLLMClient(llmClient),
				usecase.WithDirective(assistant.Directive),
				usecase.WithLocation(assistant.Location),
			)

			answer, err := uc.Chat.Ask(ctx, userID, question)
			if err != nil {
				return goerr.Wrap(err, "chat turn failed")
			}

			color.New(color.FgCyan, color.Bold).Printf("[%s] ", userID)
			color.New(color.FgWhite).Println(question)
			color.New(color.FgGreen, color.Bold).Print("[assistant] ")
			color.New(color.FgWhite).Println(answer)

			return nil
		},
	}
}
