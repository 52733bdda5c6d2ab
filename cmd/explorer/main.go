package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/homestage/designexplorer/internal/client"
	"github.com/homestage/designexplorer/internal/config"
	"github.com/homestage/designexplorer/internal/engine"
	"github.com/homestage/designexplorer/internal/logging"
)

func main() {
	// Parse flags; flags override environment configuration.
	apiURL := flag.String("api", "", "Persistence API base URL")
	dev := flag.Bool("dev", false, "Development mode (colored logs, debug level)")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
	}
	if *dev {
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	remote := client.New(client.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	})
	eng := engine.New(remote, engine.Options{
		Logger:             logger,
		SavedSessionsLimit: cfg.Session.SavedSessionsLimit,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eng.Bootstrap(ctx)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		repl(ctx, eng)
	}()

	select {
	case <-sigChan:
		fmt.Println("\nShutting down...")
		cancel()
	case <-done:
	}
}

// repl reads intents from stdin until EOF or "quit".
func repl(ctx context.Context, eng *engine.Engine) {
	fmt.Println("design explorer — type 'help' for commands")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s] > ", eng.Mode())
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		var err error
		switch cmd {
		case "help":
			printHelp()
		case "scrape":
			err = eng.StartScrape(ctx, rest)
		case "sessions":
			for _, s := range eng.SavedSessions() {
				fmt.Printf("  %s  %s  (%d views)\n", s.ID, s.WorkDate, len(s.Views))
			}
		case "resume":
			sessionID, viewID, _ := strings.Cut(rest, " ")
			err = eng.ResumeSession(sessionID, strings.TrimSpace(viewID))
		case "cards":
			for _, c := range eng.Cards() {
				fmt.Printf("  %s  %s  %s\n", c.ID, c.Title, c.ImageURL)
			}
		case "select":
			err = eng.SelectCard(rest)
		case "chat":
			err = eng.SendChat(ctx, rest)
		case "assets":
			for _, a := range eng.Assets() {
				fmt.Printf("  %s  %s  %s\n", a.ID, a.Name, a.ImageURL)
			}
		case "upload":
			name, path, _ := strings.Cut(rest, " ")
			err = uploadFile(ctx, eng, name, strings.TrimSpace(path))
		case "delete-asset":
			err = eng.DeleteAsset(ctx, rest)
		case "prev":
			eng.PreviousImage()
		case "next":
			eng.NextImage()
		case "revert":
			err = eng.RevertLatest(ctx)
		case "delete-view":
			err = eng.DeleteView(ctx, rest)
		case "delete-session":
			err = eng.DeleteSession(ctx, rest)
		case "back":
			eng.BackToGallery()
		case "reset":
			eng.Reset()
		case "status":
			printStatus(eng)
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q\n", cmd)
		}

		if err != nil {
			fmt.Printf("error: %v\n", err)
		}
		if status := eng.Status(); status != "" {
			fmt.Println(status)
		}
	}
}

func uploadFile(ctx context.Context, eng *engine.Engine, name, path string) error {
	if path == "" {
		return fmt.Errorf("usage: upload <name> <file>")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	asset, err := eng.UploadAsset(ctx, name, path, content)
	if err != nil {
		return err
	}
	fmt.Printf("uploaded %s → %s\n", asset.Name, asset.ImageURL)
	return nil
}

func printStatus(eng *engine.Engine) {
	fmt.Printf("mode: %s  session: %s\n", eng.Mode(), eng.LiveSessionID())
	if viewID := eng.ActiveViewID(); viewID != "" {
		pos := eng.HistoryPosition()
		fmt.Printf("view: %s  image: %s  version %d/%d\n",
			viewID, eng.ActiveImageURL(), pos.Index+1, pos.Count)
	}
	for _, entry := range eng.Timeline() {
		fmt.Printf("  · %s\n", entry)
	}
}

func printHelp() {
	fmt.Print(`  scrape <url>              start a workspace from a listing URL
  sessions                  list saved sessions
  resume <id> [view]        rebuild the workspace from a saved session
  cards                     list gallery cards
  select <card>             open a card in the editor
  chat <message>            send an edit prompt for the active view
  assets                    list the active view's asset library
  upload <name> <file>      upload a reference asset
  delete-asset <id>         delete an asset
  prev / next               step through the version history
  revert                    drop the newest edit
  delete-view <id>          delete a view everywhere
  delete-session <id>       delete a saved session
  back / reset / status / quit
`)
}
