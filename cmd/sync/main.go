package main

import (
	"context"
	"log"

	"github.com/eligro/erp-integrations/internal/container"
	"github.com/eligro/erp-integrations/internal/services"

	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		container.Module,
		fx.Invoke(func(
			lc fx.Lifecycle,
			orchestrator *services.Orchestrator,
			shutdowner fx.Shutdowner,
		) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					// One-shot run: execute the enabled syncs, then stop.
					go func() {
						orchestrator.Run(context.Background())
						if err := shutdowner.Shutdown(); err != nil {
							log.Printf("Shutdown error: %v", err)
						}
					}()
					return nil
				},
			})
		}),
	)

	app.Run()
}
