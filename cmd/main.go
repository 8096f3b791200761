package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/yungbote/commerce-admin-backend/internal/app"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Failed to load .env: %v\n", err)
	}

	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	a.Log.Info("Starting server...", "port", a.Cfg.HTTPPort)
	if err := a.Run(); err != nil {
		a.Log.Fatal("Server exited", "error", err)
	}
}
