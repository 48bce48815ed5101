// satchel-server serves the game over SSH. Every connection plays its own
// session with its own inventory.
//
// Usage:
//
//	satchel-server [--port 2222] [--key server_host_key] [--content fields.yaml]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"

	"github.com/tatianab/satchel/internal/config"
	"github.com/tatianab/satchel/internal/game"
	"github.com/tatianab/satchel/internal/models"
	"github.com/tatianab/satchel/internal/tui"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (generated if absent)")
	flag.StringVar(&cfg.ContentPath, "content", cfg.ContentPath, "content YAML file (built-in fields when empty)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	content, err := models.LoadContent(cfg.ContentPath)
	if err != nil {
		logger.Error("loading content", "error", err)
		os.Exit(1)
	}

	signer, err := loadOrCreateHostKey(*keyFile, logger)
	if err != nil {
		logger.Error("host key", "error", err)
		os.Exit(1)
	}

	srv := &gossh.Server{
		Addr: fmt.Sprintf(":%d", *port),
		Handler: func(s gossh.Session) {
			handleSession(s, content, cfg, logger)
		},
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		HostSigners: []gossh.Signer{signer},
	}

	logger.Info("satchel SSH server listening", "port", *port, "title", content.Title)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// handleSession runs one game for one connection. It blocks until the
// player quits or the connection drops.
func handleSession(s gossh.Session, content *models.Content, cfg *config.Config, logger *slog.Logger) {
	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "This game needs a terminal. Connect with: ssh -t -p <port> <host>")
		return
	}

	logger = logger.With("remote", s.RemoteAddr().String(), "user", s.User())
	sess, err := game.NewSession(content, logger)
	if err != nil {
		logger.Error("session setup failed", "error", err)
		fmt.Fprintf(s, "Session setup failed: %v\n", err)
		return
	}
	app, err := tui.New(sess, tui.WithSaveDir(cfg.SaveDir))
	if err != nil {
		logger.Error("game setup failed", "error", err)
		fmt.Fprintf(s, "Game setup failed: %v\n", err)
		return
	}
	defer app.Close()

	p := tea.NewProgram(app, tea.WithInput(s), tea.WithOutput(s), tea.WithAltScreen())
	go func() {
		p.Send(tea.WindowSizeMsg{Width: pty.Window.Width, Height: pty.Window.Height})
		for win := range winCh {
			p.Send(tea.WindowSizeMsg{Width: win.Width, Height: win.Height})
		}
	}()
	go func() {
		<-s.Context().Done()
		p.Quit()
	}()

	logger.Info("player connected", "session", sess.ID)
	if _, err := p.Run(); err != nil {
		logger.Warn("program ended with error", "error", err)
	}
	logger.Info("player disconnected", "session", sess.ID)
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	logger.Info("generating new ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	if block, err := xssh.MarshalPrivateKey(key, "satchel server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
			logger.Warn("could not persist host key", "path", path, "error", err)
		}
	}
	return signer, nil
}
