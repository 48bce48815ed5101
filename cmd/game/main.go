package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tatianab/satchel/internal/config"
	"github.com/tatianab/satchel/internal/tui"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.ContentPath, "content", cfg.ContentPath, "content YAML file (built-in fields when empty)")
	flag.StringVar(&cfg.SaveDir, "saves", cfg.SaveDir, "directory for save slots")
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file")
	flag.Parse()

	if err := tui.StartWith(cfg); err != nil {
		fmt.Printf("Error running game: %v\n", err)
		os.Exit(1)
	}
}
