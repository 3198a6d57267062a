// Command ytdl is the interactive YouTube transcript downloader frontend.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/avaricexx/youtube-transcript-downloader/internal/config"
	"github.com/avaricexx/youtube-transcript-downloader/pkg/client"
	"github.com/avaricexx/youtube-transcript-downloader/pkg/formatters"
)

func main() {
	root := &cobra.Command{
		Use:   "ytdl",
		Short: "Download YouTube transcripts for videos, channels or URL lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
		SilenceUsage: true,
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := newLogger(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	dl := client.New(
		client.WithAPIKey(cfg.APIKey),
		client.WithOutputDir(cfg.OutputDir),
		client.WithLanguages(cfg.Languages),
		client.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		client.WithRateLimiter(rate.NewLimiter(rate.Every(cfg.RateLimitInterval), cfg.RateLimit)),
		client.WithLogger(log),
	)

	reader := bufio.NewReader(os.Stdin)
	for {
		printMenu()
		choice, err := prompt(reader, "\nEnter your choice (1-4): ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			if cfg.APIKey == "" {
				fmt.Println("YOUTUBE_API_KEY is not set; channel downloads need a Data API key.")
				continue
			}
			input, err := prompt(reader, "Enter the YouTube channel URL: ")
			if err != nil {
				return err
			}
			runBatch(reader, dl, []string{input})
		case "2":
			input, err := prompt(reader, "Enter the YouTube video URL: ")
			if err != nil {
				return err
			}
			runBatch(reader, dl, []string{input})
		case "3":
			path, err := prompt(reader, "Enter the path to the file containing video URLs: ")
			if err != nil {
				return err
			}
			inputs, err := readURLFile(path)
			if err != nil {
				fmt.Printf("Could not read %s: %v\n", path, err)
				continue
			}
			runBatch(reader, dl, inputs)
		case "4":
			fmt.Println("\nThank you for using the YouTube transcript downloader!")
			return nil
		default:
			fmt.Println("Please enter a number between 1 and 4.")
		}
	}
}

func printMenu() {
	fmt.Println("\n=== YouTube Transcript Downloader ===")
	fmt.Println("1. Download ALL transcripts from a YouTube channel")
	fmt.Println("2. Download transcript from a specific video")
	fmt.Println("3. Download transcripts from multiple videos (using a file)")
	fmt.Println("4. Exit")
	fmt.Println("=====================================")
}

func runBatch(reader *bufio.Reader, dl *client.Client, inputs []string) {
	mode, err := chooseMode(reader)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	report := dl.Run(context.Background(), inputs, mode)
	fmt.Println(report.Summary())
}

func chooseMode(reader *bufio.Reader) (formatters.Mode, error) {
	for {
		fmt.Println("\nOutput format:")
		fmt.Println("1. Structured (JSON with timing)")
		fmt.Println("2. Plain text")
		fmt.Println("3. Subtitle (SRT)")
		choice, err := prompt(reader, "Enter your choice (1-3): ")
		if err != nil {
			return "", err
		}
		switch choice {
		case "1":
			return formatters.ModeStructured, nil
		case "2":
			return formatters.ModePlainText, nil
		case "3":
			return formatters.ModeSubtitle, nil
		}
		fmt.Println("Please enter a number between 1 and 3.")
	}
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if err == io.EOF && line == "" {
		return "", fmt.Errorf("input closed")
	}
	return strings.TrimSpace(line), nil
}

// readURLFile loads a newline-delimited list of URLs, skipping blanks and
// comment lines.
func readURLFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var inputs []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		inputs = append(inputs, trimmed)
	}
	return inputs, nil
}

func newLogger(logDir string) (*logrus.Logger, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}

	logFile := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "ytdl.log"),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	log := logrus.New()
	log.SetOutput(io.MultiWriter(os.Stdout, logFile))
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	log.SetLevel(logrus.InfoLevel)
	return log, nil
}
