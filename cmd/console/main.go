package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/ringtrail/internal/handlers"
)

type ConsoleConfig struct {
	APIBaseURL string
	Timeout    time.Duration
}

type profession struct {
	Name  string
	Blurb string
}

// professionList mirrors the presets in data/journey.json. The server is
// authoritative; an out-of-date list just yields a 400 on create.
var professionList = []profession{
	{"Baggins", "A comfortable start: well fed and well funded."},
	{"Took", "An adventurous start: heavy packs, light purse."},
	{"Brandybuck", "A balanced start: a little of everything."},
}

func main() {
	quick := flag.Bool("quick", false, "travel twelve times faster (debug)")
	storyOnly := flag.Bool("story-only", false, "suppress random travel encounters (debug)")
	autoCamp := flag.Bool("auto-camp", false, "resume travel automatically at nightfall")
	flag.Parse()

	cfg := &ConsoleConfig{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		Timeout:    30 * time.Second,
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	if !testConnection(client, cfg.APIBaseURL) {
		fmt.Fprintf(os.Stderr, "Could not connect to API. Please ensure the API is running.\nTry: docker-compose up -d\n")
		os.Exit(1)
	}

	fmt.Println("Choose your family name:")
	for i, p := range professionList {
		fmt.Printf("  %d - %s (%s)\n", i+1, p.Name, p.Blurb)
	}
	fmt.Print("\nSelect by number: ")

	var choice int
	if _, err := fmt.Scanf("%d", &choice); err != nil || choice < 1 || choice > len(professionList) {
		fmt.Fprintf(os.Stderr, "Invalid selection\n")
		os.Exit(1)
	}

	resp, err := createRun(client, cfg.APIBaseURL, handlers.CreateRunRequest{
		Profession:  professionList[choice-1].Name,
		QuickTravel: *quick,
		StoryOnly:   *storyOnly,
		AutoCamp:    *autoCamp,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create run: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(NewConsoleUI(cfg, client, resp),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
