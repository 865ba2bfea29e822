package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/gravitas-games/habitats/internal/habitat"
	"github.com/gravitas-games/habitats/internal/persistence"
	"github.com/gravitas-games/habitats/internal/replay"
	"github.com/gravitas-games/habitats/internal/scoring"
	"github.com/gravitas-games/habitats/internal/supply"
)

func main() {
	var (
		logPath = flag.String("log", "", "path to a .jsonl.zst action log")
		catalog = flag.String("catalog", "", "tile catalog the game was played with (default: built-in)")
		dbPath  = flag.String("db", "", "optional result store to save the replayed scores into")
	)
	flag.Parse()
	if *logPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	var cat *supply.Catalog
	if *catalog != "" {
		c, err := supply.LoadCatalog(*catalog)
		if err != nil {
			log.Fatalf("Failed to load catalog: %v", err)
		}
		cat = c
	}

	g, err := replay.Replay(*logPath, cat)
	if err != nil {
		log.Fatalf("Replay failed: %v", err)
	}

	scores, ok := g.Results()
	if !ok {
		log.Printf("Log ends before game over (turn %d); scoring current habitats", g.Turn()+1)
		if scores, err = g.CalculateScore(); err != nil {
			log.Fatalf("Scoring failed: %v", err)
		}
	}

	fmt.Printf("Game %s  rules %s\n\n", g.ID(), g.Rules())
	printScoreboard(os.Stdout, scores)

	if *dbPath != "" && ok {
		store, err := persistence.Open(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open result store: %v", err)
		}
		defer store.Close()
		if err := store.SaveResult(g.ID(), scores); err != nil {
			log.Fatalf("Failed to save results: %v", err)
		}
		log.Printf("Saved results for %s to %s", g.ID(), *dbPath)
	}
}

func printScoreboard(out io.Writer, scores []scoring.Breakdown) {
	ordered := append([]scoring.Breakdown(nil), scores...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Total() > ordered[j].Total() })

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "place\tplayer")
	for _, a := range habitat.Animals {
		fmt.Fprintf(tw, "\t%s", a)
	}
	fmt.Fprint(tw, "\tterrain\tnature\ttotal\n")

	place := 0
	for i, b := range ordered {
		if i == 0 || b.Total() != ordered[i-1].Total() {
			place = i + 1
		}
		fmt.Fprintf(tw, "%s\t%s", humanize.Ordinal(place), b.Player)
		for _, a := range habitat.Animals {
			fmt.Fprintf(tw, "\t%d", b.Animals[a])
		}
		fmt.Fprintf(tw, "\t%d\t%d\t%s\n", b.TerrainTotal(), b.NatureTokens, humanize.Comma(int64(b.Total())))
	}
	tw.Flush()
}
