// scribe rewrites one NPC's balloon lines with Gemini.
//
// Usage:
//
//	GEMINI_API_KEY=... scribe -npc Gatekeeper [-content fields.yaml] [-out fields.yaml]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tatianab/satchel/internal/config"
	"github.com/tatianab/satchel/internal/item"
	"github.com/tatianab/satchel/internal/models"
	"github.com/tatianab/satchel/internal/scribe"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	npcName := flag.String("npc", "", "name of the NPC to rewrite")
	out := flag.String("out", "", "where to write the content (stdout when empty)")
	flag.StringVar(&cfg.ContentPath, "content", cfg.ContentPath, "content YAML file (built-in fields when empty)")
	timeout := flag.Duration("timeout", time.Minute, "request timeout")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if *npcName == "" {
		fmt.Println("Error: -npc is required")
		flag.Usage()
		os.Exit(2)
	}
	if err := cfg.RequireGeminiKey(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	content, err := models.LoadContent(cfg.ContentPath)
	if err != nil {
		fmt.Printf("Error loading content: %v\n", err)
		os.Exit(1)
	}
	npc, ok := content.NPC(*npcName)
	if !ok {
		fmt.Printf("Error: no NPC named %q\n", *npcName)
		os.Exit(1)
	}
	cat := item.NewCatalog()
	for _, it := range content.Items {
		cat.Add(item.New(it.Key, it.Name, it.Icon))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	sc, err := scribe.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		fmt.Printf("Error creating scribe: %v\n", err)
		os.Exit(1)
	}
	defer sc.Close()

	logger.Info("asking for new lines", "npc", npc.Name, "model", sc.ModelName())
	lines, err := sc.DialogueFor(ctx, content.Title, *npc, cat)
	if err != nil {
		fmt.Printf("Error writing dialogue: %v\n", err)
		os.Exit(1)
	}
	if err := scribe.Apply(content, npc.Name, lines); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := content.Validate(); err != nil {
		fmt.Printf("Error: rewritten content is invalid: %v\n", err)
		os.Exit(1)
	}

	data, err := content.Marshal()
	if err != nil {
		fmt.Printf("Error encoding content: %v\n", err)
		os.Exit(1)
	}
	if *out == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		fmt.Printf("Error writing %s: %v\n", *out, err)
		os.Exit(1)
	}
	logger.Info("content written", "path", *out, "request_lines", len(lines.Request), "fulfilled_lines", len(lines.Fulfilled))
}
