package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/liquid-bridge/pkg/bridge"
	"github.com/walteh/liquid-bridge/pkg/syntax"
)

type Handler struct {
	fs     afero.Fs
	dir    string
	json   bool
	strict bool
}

func NewClassifyCommand(fs afero.Fs) *cobra.Command {
	me := &Handler{fs: fs}

	cmd := &cobra.Command{
		Use:   "classify [globs...]",
		Short: "classify json syntax tree dumps into tokens, folds and outline",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.Flags().StringVar(&me.dir, "dir", "", "directory the globs are relative to (default: working directory)")
	cmd.Flags().BoolVar(&me.json, "json", false, "print results as json")
	cmd.Flags().BoolVar(&me.strict, "strict", false, "fail when a tree has malformed nodes")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), cmd.OutOrStdout(), args)
	}

	return cmd
}

// Result is one classified file.
type Result struct {
	File string `json:"file"`
	*bridge.Classification
}

func (me *Handler) Run(ctx context.Context, out io.Writer, patterns []string) error {
	logger := zerolog.Ctx(ctx)

	dir := me.dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}
	root := afero.NewBasePathFs(me.fs, dir)

	files, err := me.expand(root, patterns)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.Errorf("no files match %v in %s", patterns, dir)
	}

	ext := bridge.NewExtension(nil)
	results := make([]Result, 0, len(files))

	for _, file := range files {
		tree, err := me.decode(root, file)
		if err != nil {
			return err
		}

		if verr := syntax.Validate(tree); verr != nil {
			if me.strict {
				return errors.Errorf("%s: %w", file, verr)
			}
			logger.Warn().Err(verr).Str("file", file).Msg("tree has malformed nodes")
		}

		results = append(results, Result{File: file, Classification: ext.Classify(ctx, tree)})
	}

	if me.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return errors.Errorf("encoding results: %w", err)
		}
		return nil
	}

	for _, r := range results {
		printResult(out, r)
	}
	return nil
}

// expand resolves every pattern, keeping first-seen order and dropping
// duplicates.
func (me *Handler) expand(root afero.Fs, patterns []string) ([]string, error) {
	fsys := afero.NewIOFS(root)
	seen := map[string]bool{}
	var files []string

	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	return files, nil
}

func (me *Handler) decode(root afero.Fs, file string) (*syntax.Node, error) {
	f, err := root.Open(file)
	if err != nil {
		return nil, errors.Errorf("opening %s: %w", file, err)
	}
	defer f.Close()

	tree, err := syntax.Decode(f)
	if err != nil {
		return nil, errors.Errorf("%s: %w", file, err)
	}
	return tree, nil
}

var (
	fileStyle  = color.New(color.Bold)
	tagStyle   = color.New(color.FgCyan)
	kindStyle  = color.New(color.FgYellow)
	rangeStyle = color.New(color.Faint)
)

func printResult(out io.Writer, r Result) {
	fmt.Fprintln(out, fileStyle.Sprint(r.File))

	fmt.Fprintf(out, "  tokens (%d)\n", len(r.Tokens))
	for _, tok := range r.Tokens {
		fmt.Fprintf(out, "    %s %s %s\n", rangeStyle.Sprint(tok.Range()), tagStyle.Sprint(tok.Tag.Capture()), tok.Node.Text)
	}

	fmt.Fprintf(out, "  folds (%d)\n", len(r.Folds))
	for _, f := range r.Folds {
		fmt.Fprintf(out, "    %s %s\n", rangeStyle.Sprint(f.Range), kindStyle.Sprint(f.Kind))
	}

	fmt.Fprintf(out, "  outline (%d)\n", len(r.Outline))
	for _, e := range r.Outline {
		name := e.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(out, "    %*s%s %s %s\n", e.Depth*2, "", kindStyle.Sprint(e.Kind), name, rangeStyle.Sprint(e.Range))
	}
}
