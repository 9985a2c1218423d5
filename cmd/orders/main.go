package main

import (
	"context"
	"errors"
	"os"

	"github.com/fsdevblog/groph-pay/internal/app"
	"github.com/fsdevblog/groph-pay/internal/config"
	"github.com/fsdevblog/groph-pay/internal/logger"
)

func main() {
	conf := config.MustLoadConfig(config.LoadDefaults{
		RunAddress:    ":8080",
		MigrationsDir: "internal/db/migrations/orders",
	})
	l := logger.New(os.Stdout)

	if err := app.NewOrders(conf, l).Run(); err != nil {
		if errors.Is(err, context.Canceled) {
			l.Info("graceful shutdown")
			os.Exit(0)
		}
		panic(err)
	}
}
