package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/evsuite/chargepoint-server/internal/config"
	"github.com/evsuite/chargepoint-server/internal/repository"
	"github.com/evsuite/chargepoint-server/internal/seed"
)

func main() {
	populate := flag.Int("populate", 0, "number of charge points to create")
	connectors := flag.Int("connectors", -1, "connectors per charge point (default: random 0..3)")
	seedValue := flag.Int64("seed", 0, "random seed for reproducible data")
	ratio := flag.Float64("soft-delete-ratio", 0, "fraction (0..1) of created charge points to soft-delete")
	clean := flag.Bool("clean", false, "hard-delete ALL charge points and connectors")
	force := flag.Bool("force", false, "required with -clean: confirms the full wipe")
	flag.Parse()

	if *populate <= 0 && !*clean {
		fmt.Fprintln(os.Stderr, "nothing to do: pass -populate N or -clean")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	db, err := repository.NewDatabase(&cfg.Database)
	if err != nil {
		fatal(err)
	}

	if *clean {
		if !*force {
			fmt.Fprintln(os.Stderr, "refusing to wipe all data: re-run with -clean -force to confirm")
			os.Exit(2)
		}
		if err := seed.Clean(db); err != nil {
			fatal(err)
		}
		fmt.Println("database cleaned: all charge points and connectors removed")
		return
	}

	res, err := seed.Populate(db, seed.Options{
		Count:           *populate,
		ConnectorsPer:   *connectors,
		Seed:            *seedValue,
		SoftDeleteRatio: *ratio,
	})
	if err != nil {
		fatal(err)
	}

	fmt.Printf("created %d charge points and %d connectors\n", res.ChargePoints, res.Connectors)
	if res.SoftDeleted > 0 {
		fmt.Printf("soft-deleted %d charge points (ratio=%.2f)\n", res.SoftDeleted, *ratio)
	}
	fmt.Println("try: GET /api/v1/chargepoint?status=ready&search=CP&ordering=-created_at&page=1")
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
