package main

import (
	"net/http"
	"os"

	"threadly/internal/logger"
	"threadly/internal/sheetdev"

	"github.com/joho/godotenv"
)

// sheetdev serves the spreadsheet wire contract from a local workbook,
// standing in for the remote script during development and testing.
func main() {
	_ = godotenv.Load()

	logger.Init()

	path := os.Getenv("SHEETDEV_FILE")
	if path == "" {
		path = "threadly.xlsx"
	}
	port := os.Getenv("SHEETDEV_PORT")
	if port == "" {
		port = "9090"
	}

	store, err := sheetdev.Open(path)
	if err != nil {
		logger.Fatal("failed to open workbook", map[string]any{
			"path":  path,
			"error": err.Error(),
		})
	}
	defer store.Close()

	server := sheetdev.NewServer(store, os.Getenv("SHEET_ID"))

	logger.Info("sheetdev started", map[string]any{
		"port": port,
		"file": path,
	})

	if err := http.ListenAndServe(":"+port, server.Router()); err != nil {
		logger.Fatal("sheetdev server failed", map[string]any{
			"error": err.Error(),
		})
	}
}
