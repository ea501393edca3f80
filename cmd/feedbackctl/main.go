// Command feedbackctl submits and browses feedback from a terminal.
//
//	feedbackctl [--url URL] submit --name NAME --feedback TEXT
//	feedbackctl [--url URL] prompt
//	feedbackctl [--url URL] list
//	feedbackctl [--url URL] carousel [--size N]
//	feedbackctl [--url URL] export [--prefix P] [--link-ttl D]
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/feedbackwall/feedback-service/internal/config"
	"github.com/feedbackwall/feedback-service/internal/feedback"
	"github.com/feedbackwall/feedback-service/internal/feedback/carousel"
	"github.com/feedbackwall/feedback-service/internal/feedback/prompt"
	"github.com/feedbackwall/feedback-service/internal/storage"
	"github.com/feedbackwall/feedback-service/pkg/client"
	"github.com/feedbackwall/feedback-service/pkg/logger"
	"github.com/spf13/pflag"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	api *client.Client
	in  *bufio.Reader
	out io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	global := pflag.NewFlagSet("feedbackctl", pflag.ContinueOnError)
	global.SetInterspersed(false)
	defURL := os.Getenv("FEEDBACK_URL")
	if defURL == "" {
		defURL = "http://localhost:5001"
	}
	url := global.String("url", defURL, "feedback service base URL")
	if err := global.Parse(args); err != nil {
		return err
	}
	rest := global.Args()
	if len(rest) == 0 {
		return errors.New("missing command: submit, prompt, list, carousel or export")
	}

	a := &app{api: client.New(*url), in: bufio.NewReader(stdin), out: stdout}
	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "submit":
		return a.submit(ctx, cmdArgs)
	case "prompt":
		return a.prompt(ctx)
	case "list":
		return a.list(ctx)
	case "carousel":
		return a.carousel(ctx, cmdArgs)
	case "export":
		return a.export(ctx, cmdArgs)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) submit(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("submit", pflag.ContinueOnError)
	name := fs.String("name", "", "your name")
	text := fs.String("feedback", "", "feedback text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rec, err := a.api.Submit(ctx, *name, *text)
	if err != nil {
		return submitFailure(err)
	}
	fmt.Fprintf(a.out, "Feedback submitted successfully! (id %s)\n", rec.ID)
	return nil
}

func (a *app) prompt(ctx context.Context) error {
	s := prompt.NewSession(nil)
	for {
		q, ok := s.Next()
		if !ok {
			break
		}
		fmt.Fprintf(a.out, "> %s\n", q.Prompt)
		line, err := a.in.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return fmt.Errorf("read answer: %w", err)
		}
		s.Answer(line)
	}
	rec, err := s.Finish(ctx, a.api)
	if err != nil {
		return submitFailure(err)
	}
	fmt.Fprintf(a.out, "Thanks, %s! Feedback submitted successfully.\n", rec.Name)
	return nil
}

// submitFailure keeps the service's own message for the user.
func submitFailure(err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("error submitting feedback: %s", apiErr.Message)
	}
	return fmt.Errorf("error submitting feedback: %w", err)
}

func (a *app) list(ctx context.Context) error {
	items, err := a.api.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No feedback yet.")
		return nil
	}
	for _, r := range items {
		printCard(a.out, r)
	}
	return nil
}

func printCard(w io.Writer, r feedback.Record) {
	fmt.Fprintf(w, "%s\n  %s\n\n", r.Name, r.Feedback)
}

// carousel fetches once, then navigates locally: n/next, p/prev, q/quit.
func (a *app) carousel(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("carousel", pflag.ContinueOnError)
	size := fs.Int("size", 3, "cards shown at once")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *size < 1 {
		return fmt.Errorf("invalid --size %d: must be at least 1", *size)
	}
	items, err := a.api.List(ctx)
	if err != nil {
		return err
	}
	c := carousel.New(items, *size)
	if c.Len() == 0 {
		fmt.Fprintln(a.out, "No feedback yet.")
		return nil
	}
	for {
		for _, r := range c.Window(*size) {
			printCard(a.out, r)
		}
		fmt.Fprint(a.out, "[n]ext [p]rev [q]uit: ")
		line, err := a.in.ReadString('\n')
		switch strings.TrimSpace(strings.ToLower(line)) {
		case "n", "next", "":
			c.Next()
		case "p", "prev":
			c.Prev()
		case "q", "quit":
			fmt.Fprintln(a.out)
			return nil
		}
		if err != nil {
			fmt.Fprintln(a.out)
			return nil
		}
	}
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := pflag.NewFlagSet("export", pflag.ContinueOnError)
	prefix := fs.String("prefix", "exports/", "object key prefix")
	linkTTL := fs.Duration("link-ttl", 24*time.Hour, "presigned link validity (0 disables)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg := config.LoadMinIOConfig()
	dst, err := storage.NewMinIOStorage(ctx, &cfg)
	if err != nil {
		return err
	}
	res, err := storage.NewExporter(a.api, dst, *prefix).Export(ctx, *linkTTL)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "exported %d records to %s/%s\n", res.Count, cfg.Bucket, res.Key)
	if res.URL != "" {
		fmt.Fprintln(a.out, res.URL)
	}
	return nil
}
