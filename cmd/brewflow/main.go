package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/nqvinh/brewflow/internal/app"
)

func main() {
	var (
		beans   = flag.Int("beans", 20, "bean weight in grams")
		water   = flag.Int("water", 300, "water weight in grams")
		timeout = flag.Duration("timeout", 0, "overall workflow timeout (0 = none)")
	)
	flag.Parse()

	ctx := context.Background()
	if err := app.Run(ctx, app.Options{
		BeanWeight:  *beans,
		WaterWeight: *water,
		Timeout:     *timeout,
	}); err != nil {
		slog.Error("brew failed", "error", err)
		os.Exit(1)
	}
}
