package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/iamasit07/connect4-terminal/internal/bootstrap"
	"github.com/iamasit07/connect4-terminal/internal/config"
	"github.com/iamasit07/connect4-terminal/internal/transport/terminal"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.LoadConfig()

	// tcell owns the terminal, so logs go to a file
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("Failed to open log file %s: %v", cfg.LogFile, err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	statsService, cleanup, err := bootstrap.StatsService(cfg)
	if err != nil {
		log.Fatalf("Failed to set up statistics: %v", err)
	}
	defer cleanup()

	seed := cfg.Seed()
	log.Printf("Random seed %d", seed)
	rng := rand.New(rand.NewSource(seed))

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		// unblocks the pending PollEvent so Run returns
		screen.Fini()
	}()

	app := terminal.NewApp(screen, statsService, rng)
	if err := app.Run(ctx); err != nil {
		screen.Fini()
		log.Fatalf("Game error: %v", err)
	}
}
