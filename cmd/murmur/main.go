package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quietpine/murmur/internal/config"
	"github.com/quietpine/murmur/internal/outpath"
	"github.com/quietpine/murmur/pkg/audio/wav"
	"github.com/quietpine/murmur/pkg/clip"
	"github.com/quietpine/murmur/pkg/tts"
	ttsfake "github.com/quietpine/murmur/pkg/tts/fake"
	ttsopenai "github.com/quietpine/murmur/pkg/tts/openai"
	"github.com/quietpine/murmur/pkg/version"
	"github.com/quietpine/murmur/pkg/weave"
)

var rootCmd = &cobra.Command{
	Use:   "murmur",
	Short: "murmur weaves spoken-word clips into an immersive stereo soundscape",
	Long: `murmur assembles a directory of pre-rendered voice clips into a single
stereo soundscape: clips are chosen to approximate a target duration, then
placed in time with independent panning and controlled overlap so that
several voices interleave without collapsing into noise.`,
	SilenceUsage: true,
}

var verbose bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.GetVersionInfo())
	},
}

var weaveCmd = &cobra.Command{
	Use:   "weave",
	Short: "Weave the clip library into a stereo soundscape file",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetFloat64("target-duration")
		seed, _ := cmd.Flags().GetInt64("seed")
		seedSet := cmd.Flags().Changed("seed")
		configPath, _ := cmd.Flags().GetString("config")

		logger := setupLogger()

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd, &cfg)

		logger.Info("Starting weave",
			slog.String("clips_dir", cfg.ClipsDir),
			slog.Float64("target_duration", target),
			slog.Bool("seeded", seedSet),
			slog.Int64("seed", seed))

		pool, err := clip.Load(cfg.ClipsDir)
		if err != nil {
			return err
		}
		logger.Info("Clip library loaded",
			slog.Int("clips", len(pool)),
			slog.Float64("total_seconds", clip.TotalDuration(pool)))

		var engine *weave.Engine
		if seedSet {
			engine = weave.NewSeededEngine(cfg.Engine(), seed)
		} else {
			engine = weave.NewEngine(cfg.Engine())
		}

		sel, timeline, err := engine.Weave(pool, target)
		if err != nil {
			return err
		}
		logger.Info("Clips selected",
			slog.Int("selected", len(sel.Clips)),
			slog.Float64("cumulative_seconds", sel.TotalDuration))

		for i, p := range timeline.Placements {
			logger.Debug("Placement",
				slog.Int("index", i),
				slog.String("clip", p.Clip.ID),
				slog.Float64("start", p.Start),
				slog.Float64("pan", p.Pan))
		}

		buf, err := engine.Render(timeline)
		if err != nil {
			return err
		}

		out, err := outpath.Next(cfg.OutDir, cfg.Prefix, ".wav")
		if err != nil {
			return err
		}
		if err := buf.WriteWAV(out); err != nil {
			return err
		}

		logger.Info("Soundscape written",
			slog.String("path", out),
			slog.Float64("duration_seconds", buf.Duration()))
		fmt.Println(out)
		return nil
	},
}

var clipsCmd = &cobra.Command{
	Use:   "clips",
	Short: "List the clip library with durations and tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")

		setupLogger()

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd, &cfg)

		pool, err := clip.Load(cfg.ClipsDir)
		if err != nil {
			return err
		}

		for _, c := range pool {
			line := fmt.Sprintf("%s\t%6.2fs", c.Path, c.Duration)
			if tags := clip.ReadTags(c.Path); tags.Title != "" {
				line += "\t" + tags.Title
				if tags.Artist != "" {
					line += " — " + tags.Artist
				}
			}
			fmt.Println(line)
		}
		fmt.Printf("%d clips, %.1fs total\n", len(pool), clip.TotalDuration(pool))
		return nil
	},
}

var speakCmd = &cobra.Command{
	Use:   "speak [text]",
	Short: "Render spoken clips into the clip library using a TTS provider",
	Long: `speak renders one clip per message into the clip directory, ready for
weaving. Messages come either from a single positional argument or, with
--messages, one per line from a file (blank lines and # comments ignored).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		messagesPath, _ := cmd.Flags().GetString("messages")
		provider, _ := cmd.Flags().GetString("provider")
		voice, _ := cmd.Flags().GetString("voice")
		model, _ := cmd.Flags().GetString("model")
		speed, _ := cmd.Flags().GetFloat32("speed")
		configPath, _ := cmd.Flags().GetString("config")

		logger := setupLogger()

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd, &cfg)

		messages, err := collectMessages(args, messagesPath)
		if err != nil {
			return err
		}
		if len(messages) == 0 {
			return fmt.Errorf("nothing to speak: provide text or --messages")
		}

		synth, err := newSynthesizer(provider, model, voice)
		if err != nil {
			return err
		}

		// Cancel cleanly mid-batch on interrupt.
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		for _, text := range messages {
			audio, err := synth.Synthesize(ctx, tts.SynthesizeRequest{
				Text:  text,
				Voice: voice,
				Speed: speed,
			})
			if err != nil {
				return fmt.Errorf("synthesis failed for %q: %w", text, err)
			}

			out, err := outpath.Next(cfg.ClipsDir, "speech_", ".wav")
			if err != nil {
				return err
			}
			if err := writeClip(out, audio); err != nil {
				return err
			}

			logger.Info("Clip rendered",
				slog.String("path", out),
				slog.Float64("duration_seconds", audio.Duration()),
				slog.String("text", text))
		}

		return nil
	},
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("clips-dir") {
		cfg.ClipsDir, _ = cmd.Flags().GetString("clips-dir")
	}
	if cmd.Flags().Changed("out-dir") {
		cfg.OutDir, _ = cmd.Flags().GetString("out-dir")
	}
	if cmd.Flags().Changed("prefix") {
		cfg.Prefix, _ = cmd.Flags().GetString("prefix")
	}
	if cmd.Flags().Changed("sample-rate") {
		cfg.SampleRate, _ = cmd.Flags().GetInt("sample-rate")
	}
}

func collectMessages(args []string, messagesPath string) ([]string, error) {
	var messages []string

	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		messages = append(messages, strings.TrimSpace(args[0]))
	}

	if messagesPath != "" {
		data, err := os.ReadFile(messagesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read messages file: %w", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			messages = append(messages, line)
		}
	}

	return messages, nil
}

func newSynthesizer(provider, model, voice string) (tts.Synthesizer, error) {
	switch provider {
	case "openai":
		return ttsopenai.New(ttsopenai.Config{Model: model, Voice: voice})
	case "fake":
		return ttsfake.New(), nil
	default:
		return nil, fmt.Errorf("unknown TTS provider %q (want openai or fake)", provider)
	}
}

func writeClip(path string, audio tts.Audio) error {
	w, err := wav.NewWriter(path, uint32(audio.SampleRate), 1, 16)
	if err != nil {
		return err
	}
	if err := w.WriteSamples(audio.Samples); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func setupLogger() *slog.Logger {
	logFormat := os.Getenv("MURMUR_LOG_FORMAT")
	logLevel := os.Getenv("MURMUR_LOG_LEVEL")

	var handler slog.Handler
	opts := &slog.HandlerOptions{}

	// Set log level
	switch logLevel {
	case "debug":
		opts.Level = slog.LevelDebug
	case "info":
		opts.Level = slog.LevelInfo
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	// Choose handler based on format
	if logFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		// Default to text on stderr; stdout carries the output path
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Add flags to weave command
	weaveCmd.Flags().Float64P("target-duration", "t", 0, "Approximate output length in seconds (0 = use the entire clip pool)")
	weaveCmd.Flags().Int64P("seed", "s", 0, "RNG seed for reproducible selection and placement")
	weaveCmd.Flags().String("clips-dir", "", "Directory of pre-rendered mono clips")
	weaveCmd.Flags().String("out-dir", "", "Directory for the rendered soundscape")
	weaveCmd.Flags().String("prefix", "", "Output filename prefix")
	weaveCmd.Flags().Int("sample-rate", 0, "Output sample rate in Hz")
	weaveCmd.Flags().String("config", "", "Path to YAML config file")

	// Add flags to clips command
	clipsCmd.Flags().String("clips-dir", "", "Directory of pre-rendered mono clips")
	clipsCmd.Flags().String("config", "", "Path to YAML config file")

	// Add flags to speak command
	speakCmd.Flags().String("messages", "", "File with one message per line")
	speakCmd.Flags().String("provider", "openai", "TTS provider (openai, fake)")
	speakCmd.Flags().String("voice", "", "Provider voice name")
	speakCmd.Flags().String("model", "", "Provider model name")
	speakCmd.Flags().Float32("speed", 0, "Speech speed multiplier")
	speakCmd.Flags().String("clips-dir", "", "Directory to write rendered clips into")
	speakCmd.Flags().String("config", "", "Path to YAML config file")

	// Build command tree
	rootCmd.AddCommand(versionCmd, weaveCmd, clipsCmd, speakCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
