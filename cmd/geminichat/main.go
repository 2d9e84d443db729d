// Command geminichat sends one prompt to Gemini and prints the reply.
//
// Usage:
//
//	geminichat [-config aichat.yaml] [-model name] [-system text] [-media https://...] [-stream] prompt...
//
// With no prompt arguments the prompt is read from stdin. A -media URL is downloaded and sent inline. Settings are loaded by the config
// package (YAML file, AICHAT_* environment variables, GEMINI_API_KEY).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/skosovsky/aichat"
	"github.com/skosovsky/aichat/adapter/gemini"
	"github.com/skosovsky/aichat/config"
	"github.com/skosovsky/aichat/ext/otelchat"
	"github.com/skosovsky/aichat/mediafetch"
)

func main() {
	if err := run(); err != nil {
		slog.Error("geminichat failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "path to the YAML config file")
		model      = flag.String("model", "", "model id (overrides gemini.default_model)")
		system     = flag.String("system", "", "system instructions")
		stream     = flag.Bool("stream", false, "stream the reply as it is generated")
		media      = flag.String("media", "", "https URL of an image, audio, video or PDF to attach")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	level, err := cfg.Logging.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	prompt, err := readPrompt(flag.Args(), os.Stdin)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handle, err := cfg.TransportBuilder().Build(ctx)
	if err != nil {
		return fmt.Errorf("creating transport: %w", err)
	}
	inner, err := gemini.NewClient(handle, gemini.New(gemini.WithDefaultModel(cfg.Gemini.DefaultModel)),
		gemini.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}
	fetcher := &mediafetch.Fetcher{}
	client := aichat.Chain(inner, aichat.Logging(logger), otelchat.Middleware(nil), fetcher.Middleware())

	var opts []aichat.Option
	if *model != "" {
		opts = append(opts, aichat.WithModel(*model))
	}
	if *system != "" {
		opts = append(opts, aichat.WithInstructions(*system))
	}
	messages := []aichat.Message{userMessage(prompt, *media)}

	if *stream {
		return streamReply(ctx, client, messages, aichat.NewOptions(opts...), os.Stdout)
	}
	resp, err := client.GetResponse(ctx, messages, aichat.NewOptions(opts...))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, resp.Text())
	return err
}

func streamReply(ctx context.Context, client aichat.ChatClient, messages []aichat.Message, opts *aichat.Options, w io.Writer) error {
	for u, err := range client.GetStreamingResponse(ctx, messages, opts) {
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, u.Text()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func userMessage(prompt, mediaURL string) aichat.Message {
	if mediaURL == "" {
		return aichat.UserMessage(prompt)
	}
	return aichat.NewMessage(aichat.RoleUser, aichat.TextContent{Text: prompt}, aichat.URIContent{URI: mediaURL})
}

var errEmptyPrompt = errors.New("prompt is empty")

func readPrompt(args []string, stdin io.Reader) (string, error) {
	prompt := strings.Join(args, " ")
	if prompt == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		prompt = string(data)
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errEmptyPrompt
	}
	return prompt, nil
}
