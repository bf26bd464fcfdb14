package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/andresmejia3/tonematch/internal/capture"
	"github.com/andresmejia3/tonematch/internal/detector"
	"github.com/andresmejia3/tonematch/internal/palette"
	"github.com/andresmejia3/tonematch/internal/snapshot"
	"github.com/andresmejia3/tonematch/internal/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Options holds the live view configuration
type Options struct {
	Device       string
	CascadePath  string
	SnapshotPath string
	WindowTitle  string
}

var liveOpts Options

// Build metadata, set by -ldflags at compile time.
var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "tonematch",
	Short: "Live skin tone analysis with clothing color suggestions",
	Long: `tonematch opens the camera, finds faces, samples the skin in the middle of
each face and classifies it as Fair, Light, Medium, Tan or Dark. Colors that
suit (and colors to avoid for) that tone are drawn next to the face.

Keys: 'q' quits, 's' saves the current annotated frame.`,
	Version: Version,
	Args:    cobra.NoArgs,
	// Errors are printed once, by Execute or by the command that boxed them
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Flags win; the environment only fills in flags left at their default
		envFallback(cmd, "device", "TONEMATCH_DEVICE")
		envFallback(cmd, "cascade", "TONEMATCH_CASCADE")
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runLive(cmd.Context(), liveOpts)
	},
}

func Execute() {
	// Create a context that listens for Ctrl+C (SIGINT) or Kill (SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printUnreported(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// printUnreported prints err unless a command already showed it.
func printUnreported(w io.Writer, err error) {
	if utils.IsReported(err) {
		return
	}
	fmt.Fprintln(w, "Error:", err)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&liveOpts.CascadePath, "cascade", detector.DefaultCascade, "Haar cascade XML used for face detection")
	rootCmd.Flags().StringVarP(&liveOpts.Device, "device", "d", "0", "Camera index or video file to read from")
	rootCmd.Flags().StringVarP(&liveOpts.SnapshotPath, "snapshot", "o", snapshot.DefaultPath, "Where 's' saves the annotated frame")
	rootCmd.Flags().StringVar(&liveOpts.WindowTitle, "window", "Skin Tone Analyzer", "Title of the preview window")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}

// envFallback copies the environment variable key into flag name unless the
// flag was set on the command line.
func envFallback(cmd *cobra.Command, name, key string) {
	flag := cmd.Flags().Lookup(name)
	if flag == nil || flag.Changed {
		return
	}
	if v := os.Getenv(key); v != "" {
		_ = flag.Value.Set(v)
	}
}

func runLive(ctx context.Context, opts Options) error {
	res, err := capture.Open(capture.Config{
		Device:      opts.Device,
		CascadePath: opts.CascadePath,
		WindowTitle: opts.WindowTitle,
	})
	if err != nil {
		return utils.Report("Startup failed", err)
	}

	loop := capture.NewLoop(res, palette.Default(), opts.SnapshotPath)
	fmt.Fprintln(os.Stderr, "🎥 Press 'q' to quit, 's' to save a sample output.")

	err = loop.Run(ctx)

	st := loop.Stats()
	fmt.Fprintf(os.Stderr, "📷 Camera released. %d frames, %d faces analysed, %d snapshots saved.\n", st.Frames, st.Faces, st.Snapshots)
	if err != nil {
		return utils.Report("Live view stopped with an error", err)
	}
	return nil
}
