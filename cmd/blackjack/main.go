package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strings"

	"github.com/calvinwijaya/blackjack-table/internal/console"
	"github.com/calvinwijaya/blackjack-table/internal/game"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

func main() {
	var (
		players = flag.Int("players", 1, "Number of players sharing this terminal (1-7)")
		names   = flag.String("names", "", "Comma separated player names")
		seed    = flag.Int64("seed", 0, "Shuffle seed; 0 picks a random one")
		debug   = flag.Bool("debug", false, "Log dealer internals")
	)
	flag.Parse()

	if *debug {
		pterm.DefaultLogger.Level = pterm.LogLevelDebug
	}
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))

	if *players < 1 || *players > game.MaxPlayers {
		pterm.Error.Printfln("players must be between 1 and %d", game.MaxPlayers)
		os.Exit(2)
	}

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Black", pterm.FgDarkGray.ToStyle()),
		putils.LettersFromStringWithStyle("jack", pterm.FgRed.ToStyle()),
	).Render()

	prompter := console.NewPrompter(os.Stdin, os.Stdout)
	labels := strings.Split(*names, ",")
	table := make([]*game.Player, *players)
	for i := range table {
		var name string
		if i < len(labels) {
			name = strings.TrimSpace(labels[i])
		}
		table[i] = game.NewPlayer(i, name, prompter)
	}

	deck := game.NewDeck()
	if *seed != 0 {
		deck = game.NewDeckWithSource(rand.NewSource(*seed))
	}

	dealer, err := game.NewDealer(table,
		game.WithDeck(deck),
		game.WithDisplay(console.NewRenderer(os.Stdout)),
		game.WithContinuePrompter(prompter),
		game.WithLogger(logger),
	)
	if err != nil {
		pterm.Fatal.Println(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := dealer.PlayGame(ctx); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			pterm.Println()
			pterm.Info.Println("Bye!")
			return
		}
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
