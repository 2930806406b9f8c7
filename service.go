package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go-mod.ewintr.nl/vid2blog/config"
	"go-mod.ewintr.nl/vid2blog/fetch"
	"go-mod.ewintr.nl/vid2blog/handler"
	"go-mod.ewintr.nl/vid2blog/model"
	"go-mod.ewintr.nl/vid2blog/process"
	"golang.org/x/exp/slog"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

type app struct {
	transcriber *fetch.Transcriber
	generator   *process.Generator
	pipeline    *process.Pipeline
}

func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	httpClient := &http.Client{Timeout: cfg.UpstreamTimeout}

	transcriptSources := []fetch.Source[string]{
		fetch.TranscriptSource("timedtext", fetch.NewTimedText(httpClient, cfg.PlayerURL, cfg.TranscriptLang)),
	}
	var metadataSources []fetch.Source[model.Metadata]
	if cfg.YoutubeKey != "" {
		ytClient, err := youtube.NewService(ctx, option.WithAPIKey(cfg.YoutubeKey), option.WithHTTPClient(httpClient))
		if err != nil {
			return nil, fmt.Errorf("unable to create youtube service: %w", err)
		}
		yt := fetch.NewYoutube(ytClient)
		transcriptSources = append(transcriptSources, fetch.TranscriptSource("youtube captions", yt))
		metadataSources = append(metadataSources, fetch.MetadataSource("youtube videos", yt))
	} else {
		logger.Warn("no youtube api key, data api sources disabled")
	}
	metadataSources = append(metadataSources, fetch.MetadataSource("oembed", fetch.NewOEmbed(httpClient, cfg.OEmbedURL)))

	transcriber := fetch.NewTranscriber(
		fetch.NewTranscripts(logger, transcriptSources...),
		fetch.NewMetadata(logger, metadataSources...),
		logger,
	)
	generator := process.NewGenerator(process.NewOpenAI(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, httpClient), logger)

	return &app{
		transcriber: transcriber,
		generator:   generator,
		pipeline:    process.NewPipeline(transcriber, generator, logger),
	}, nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	rootCmd := &cobra.Command{
		Use:           "vid2blog",
		Short:         "Turn YouTube videos into blog posts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(serveCmd(logger), generateCmd(logger))

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func serveCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the http api",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}

			server := handler.NewServer(a.transcriber, a.generator, a.pipeline, logger)
			srv := &http.Server{
				Addr: fmt.Sprintf(":%d", cfg.Port),
				Handler: cors.New(cors.Options{
					AllowedOrigins: cfg.AllowedOrigins,
					AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
					AllowedHeaders: []string{"Content-Type"},
					ExposedHeaders: []string{handler.RequestIDHeader, "Content-Disposition"},
				}).Handler(server),
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server failed", slog.Any("error", err))
					stop()
				}
			}()
			logger.Info("http server started", slog.Int("port", cfg.Port))

			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("could not stop http server: %w", err)
			}
			logger.Info("service stopped")

			return nil
		},
	}
}

func generateCmd(logger *slog.Logger) *cobra.Command {
	var (
		tone     string
		words    int
		audience string
		render   bool
	)
	cmd := &cobra.Command{
		Use:   "generate [URL]",
		Short: "Generate a blog post for one video and print it",
		Example: `  vid2blog generate "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  vid2blog generate dQw4w9WgXcQ --tone educational --words 1200 --render`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			res := a.pipeline.Run(cmd.Context(), process.Request{
				VideoURL: args[0],
				Options: model.GenerationOptions{
					Tone:      model.Tone(tone),
					WordCount: words,
					Audience:  model.Audience(audience),
				},
			})
			if !res.Success {
				if res.Error == nil {
					return errors.New("processing failed")
				}
				return res.Error
			}

			out := res.BlogPost
			if render {
				r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
				if err != nil {
					return fmt.Errorf("creating terminal renderer: %w", err)
				}
				if out, err = r.Render(res.BlogPost); err != nil {
					return fmt.Errorf("rendering markdown: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			fmt.Fprintf(cmd.OutOrStdout(), "\nSEO title: %s\nSEO description: %s\nKeywords: %s\n", res.SEOMetadata.Title, res.SEOMetadata.Description, strings.Join(res.SEOMetadata.Keywords, ", "))

			return nil
		},
	}
	cmd.Flags().StringVar(&tone, "tone", string(model.ToneProfessional), "tone of the post: professional, conversational, educational or creative")
	cmd.Flags().IntVar(&words, "words", model.WordCountDefault, "approximate length of the post in words")
	cmd.Flags().StringVar(&audience, "audience", string(model.AudienceGeneral), "target audience: general, technical, business or academic")
	cmd.Flags().BoolVar(&render, "render", false, "render the markdown for the terminal")

	return cmd
}
