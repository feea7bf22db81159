// Command lvdistrict explores districting plans for a region with a ReCom
// Markov chain and writes the most typical compact plan.
//
//	lvdistrict -region PA -input pa_precincts.geojson -districts 17 -steps 10000
//	lvdistrict -region DEMO -grid-rows 12 -grid-cols 12 -districts 4 -steps 500
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "lvdistrict: %v\n", err)
		stop()
		os.Exit(1)
	}
}
