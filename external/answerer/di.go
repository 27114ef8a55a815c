package answerer

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/samber/do/v2"

	internalanswerer "github.com/Priyanshu9798/lecture-zen-38/internal/answerer"
	"github.com/Priyanshu9798/lecture-zen-38/internal/config"
	"github.com/Priyanshu9798/lecture-zen-38/internal/repository"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (internalanswerer.Answerer, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[repository.Repository](i)
		client := openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))
		return NewOpenAIAnswerer(&client, cfg.OpenAIModel, repo), nil
	})
}
