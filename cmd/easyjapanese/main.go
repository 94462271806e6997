package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Serve    ServeCommand    `cmd:"serve" help:"Start the easy Japanese server."`
	Simplify SimplifyCommand `cmd:"simplify" help:"Summarize an article and rewrite it in easy Japanese."`
	Batch    BatchCommand    `cmd:"batch" help:"Simplify every article in a Pocketbase collection."`
	UI       UICommand       `cmd:"ui" help:"Paste articles into an interactive terminal UI."`
	Version  VersionCommand  `cmd:"version" help:"Print the version."`
}

func main() {
	var cli CLI
	ctx := context.Background()
	kctx := kong.Parse(&cli, kong.UsageOnError(), kong.BindTo(ctx, (*context.Context)(nil)))
	if err := kctx.Run(); err != nil {
		log := getLogger("error")
		log.Error("error", slog.Any("error", err))
		os.Exit(1)
	}
}

func getLogger(level string) *slog.Logger {
	ll := slog.LevelInfo
	switch level {
	case "debug":
		ll = slog.LevelDebug
	case "info":
		ll = slog.LevelInfo
	case "warn":
		ll = slog.LevelWarn
	case "error":
		ll = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: ll,
	}))
}
