package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cristianadrielbraun/qrframe/internal/frame"
	"github.com/cristianadrielbraun/qrframe/internal/qr"
)

type renderOptions struct {
	data   string
	style  string
	out    string
	all    bool
	strict bool
}

func newRenderCmd(a *app) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Encode a payload and write the framed code as PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}
			log := a.logger(cmd)

			enc, err := qr.NewEncoder(cfg.QR.Encoder())
			if err != nil {
				return err
			}
			comp, err := frame.New(cfg.Frame.Compositor(), frame.WithLogger(log))
			if err != nil {
				return err
			}

			code, err := enc.Encode(opts.data)
			if err != nil {
				return err
			}

			compose := comp.Compose
			if opts.strict {
				compose = comp.Render
			}

			if !opts.all {
				style, ok := frame.ParseStyle(opts.style)
				if !ok {
					return fmt.Errorf("unknown style %q", opts.style)
				}
				out := opts.out
				if out == "" {
					out = style.String() + ".png"
				}
				img, err := compose(code, style)
				if err != nil {
					return err
				}
				if err := writePNG(out, img); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}

			dir := opts.out
			if dir == "" {
				dir = "."
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			styles := frame.Styles()
			paths := make([]string, len(styles))
			var g errgroup.Group
			for i, style := range styles {
				i, style := i, style
				g.Go(func() error {
					img, err := compose(code, style)
					if err != nil {
						return err
					}
					p := filepath.Join(dir, style.String()+".png")
					if err := writePNG(p, img); err != nil {
						return err
					}
					log.Info().Str("style", style.String()).Str("file", p).Msg("rendered")
					paths[i] = p
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			sort.Strings(paths)
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "text or URL to encode")
	cmd.Flags().StringVarP(&opts.style, "style", "s", string(frame.StyleNone), "frame style")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file, or directory with --all")
	cmd.Flags().BoolVar(&opts.all, "all", false, "render every style concurrently")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail instead of falling back to a plain border")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func newStylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the frame styles",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, s := range frame.Styles() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", s, s.Label())
			}
		},
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
