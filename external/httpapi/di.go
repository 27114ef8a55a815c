package httpapi

import (
	"net/http"

	"github.com/samber/do/v2"

	"github.com/Priyanshu9798/lecture-zen-38/internal/config"
	"github.com/Priyanshu9798/lecture-zen-38/internal/repository"
	"github.com/Priyanshu9798/lecture-zen-38/internal/study"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Handler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		manager := do.MustInvoke[*study.Manager](i)
		repo := do.MustInvoke[repository.Repository](i)
		return NewHandler(cfg, manager, repo), nil
	})
	do.Provide(injector, func(i do.Injector) (http.Handler, error) {
		return NewRouter(do.MustInvoke[*Handler](i)), nil
	})
}
