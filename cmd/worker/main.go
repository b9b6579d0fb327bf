// Command painel-worker applies order status events from Kafka to the
// local order history.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"painel-social/internal/app"
)

func main() {
	log.SetPrefix("painel-worker: ")
	log.SetFlags(log.LstdFlags | log.LUTC)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Print("wiring status event consumer")
	container := app.MustBuildWorkerContainer(ctx)

	app.NewWorkerRunner().MustRun(container)
	log.Print("status event consumer stopped")
}
