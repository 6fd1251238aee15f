package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kilo9alfa/workouttracker/internal/client"
	"github.com/kilo9alfa/workouttracker/internal/tui"
)

func main() {
	baseURL := flag.String("api", envOr("WORKOUT_API_BASE", "http://localhost:8080"), "API base URL")
	email := flag.String("email", envOr("WORKOUT_DEV_EMAIL", ""), "identity sent as the dev header")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "set -email or WORKOUT_DEV_EMAIL")
		os.Exit(1)
	}

	if logPath := os.Getenv("WORKOUT_TUI_LOG"); logPath != "" {
		f, err := tea.LogToFile(logPath, "tui")
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	c := client.New(*baseURL, *email)

	program := tea.NewProgram(tui.New(c), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
