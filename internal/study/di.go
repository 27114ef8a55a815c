package study

import (
	"github.com/Priyanshu9798/lecture-zen-38/internal/answerer"
	"github.com/Priyanshu9798/lecture-zen-38/internal/config"
	"github.com/Priyanshu9798/lecture-zen-38/internal/repository"
	"github.com/Priyanshu9798/lecture-zen-38/internal/review"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (review.Scheduler, error) {
		return review.NewIntervalScheduler(), nil
	})
	do.Provide(injector, func(i do.Injector) (*Manager, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[repository.Repository](i)
		svc := do.MustInvoke[answerer.Answerer](i)
		scheduler := do.MustInvoke[review.Scheduler](i)
		return NewManager(cfg, repo, svc, scheduler), nil
	})
}
