package cmd

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/andresmejia3/tonematch/internal/detector"
	"github.com/andresmejia3/tonematch/internal/palette"
	"github.com/andresmejia3/tonematch/internal/pipeline"
	"github.com/andresmejia3/tonematch/internal/snapshot"
	"github.com/andresmejia3/tonematch/internal/types"
	"github.com/andresmejia3/tonematch/internal/utils"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gocv.io/x/gocv"
)

var (
	analyzeAnnotate string
	analyzeFaces    []string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE...",
	Short: "Classify skin tone in still images",
	Long: `Runs the same detection and classification as the live view on image files
and prints one row per detected face. With --annotate, an annotated copy of
every image is written to the given directory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runAnalyze(cmd.Context(), args, liveOpts.CascadePath)
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeAnnotate, "annotate", "a", "", "Directory for annotated copies of the input images")
	analyzeCmd.Flags().StringArrayVar(&analyzeFaces, "face", nil, "Known face box as x,y,w,h (repeatable); skips detection")
	rootCmd.AddCommand(analyzeCmd)
}

type fileResult struct {
	Path     string
	Readings []types.Reading
}

var errNoReadableImages = errors.New("none of the input images could be read")

func runAnalyze(ctx context.Context, paths []string, cascadePath string) error {
	faces, err := parseFaces(analyzeFaces)
	if err != nil {
		return utils.Report("Configuration Error", err)
	}
	if err := validateAnnotateDir(analyzeAnnotate); err != nil {
		return utils.Report("Invalid annotate directory", err)
	}

	var det detector.Detector
	if len(faces) > 0 {
		det = detector.Static(faces)
	} else {
		c, err := detector.NewCascade(cascadePath, detector.DefaultParams())
		if err != nil {
			return utils.Report("Error loading Haar cascade", err)
		}
		fmt.Fprintf(os.Stderr, "🧠 Loaded face cascade from %s\n", c.Path)
		det = c
	}
	defer det.Close()

	p := pipeline.New(det, palette.Default())

	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetDescription("Analyzing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)

	results := make([]fileResult, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		res, ok := analyzeFile(p, path, analyzeAnnotate)
		if ok {
			results = append(results, res)
		}
		bar.Add(1)
	}
	bar.Finish()
	fmt.Fprintln(os.Stderr)

	if len(results) == 0 {
		return utils.Report("Nothing to report", errNoReadableImages)
	}
	return writeReport(os.Stdout, results)
}

// analyzeFile processes one image. ok is false when the image could not be read.
func analyzeFile(p *pipeline.Pipeline, path, annotateDir string) (fileResult, bool) {
	img := gocv.IMRead(path, gocv.IMReadColor)
	defer img.Close()
	if img.Empty() {
		fmt.Fprintf(os.Stderr, "\n⚠️  Skipping %s: not a readable image\n", path)
		return fileResult{}, false
	}

	readings, err := p.Process(&img)
	if err != nil {
		utils.ShowError("Failed to annotate "+path, err)
	}

	if annotateDir != "" {
		out := filepath.Join(annotateDir, annotatedName(path))
		if err := snapshot.Save(out, img); err != nil {
			utils.ShowError("Failed to write annotated image", err)
		}
	}
	return fileResult{Path: path, Readings: readings}, true
}

// annotatedName maps "dir/photo.png" to "photo_annotated.jpg".
func annotatedName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_annotated.jpg"
}

// parseFaces converts "x,y,w,h" specs into rectangles.
func parseFaces(specs []string) ([]image.Rectangle, error) {
	faces := make([]image.Rectangle, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ",")
		if len(parts) != 4 {
			return nil, fmt.Errorf("invalid face %q: want x,y,w,h", spec)
		}
		var v [4]int
		for i, part := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, fmt.Errorf("invalid face %q: %w", spec, err)
			}
			v[i] = n
		}
		if v[2] <= 0 || v[3] <= 0 {
			return nil, fmt.Errorf("invalid face %q: width and height must be positive", spec)
		}
		faces = append(faces, image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]))
	}
	return faces, nil
}

func validateAnnotateDir(dir string) error {
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			// snapshot.Save creates it
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

func writeReport(out io.Writer, results []fileResult) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "FILE\tFACE\tTIER\tBRIGHTNESS\tRGB\tHEX\tBEST\tAVOID")
	fmt.Fprintln(w, "----\t----\t----\t----------\t---\t---\t----\t-----")

	for _, res := range results {
		if len(res.Readings) == 0 {
			fmt.Fprintf(w, "%s\t-\tno face detected\t\t\t\t\t\n", res.Path)
			continue
		}
		for i, r := range res.Readings {
			fmt.Fprintf(w, "%s\t%d\t%s\t%.1f\t%s\t%s\t%s\t%s\n",
				res.Path, i+1, r.Tier, r.Brightness, r.Color, r.Color.Hex(),
				strings.Join(r.Best, ", "), strings.Join(r.Avoid, ", "))
		}
	}
	return w.Flush()
}
