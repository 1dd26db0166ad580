// Command replverify verifies that objects written to a replication source are faithfully replicated to each of its
// configured destinations.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(execute(ctx, os.Args[1:], os.Stdout, os.Stderr))
}
