package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/posterforge/pkg/gallery"
	"github.com/matzehuels/posterforge/pkg/pipeline"
)

// galleryCommand creates the gallery command for the local poster gallery.
func (c *CLI) galleryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Manage posters saved with render --save",
	}

	cmd.AddCommand(c.galleryListCommand())
	cmd.AddCommand(c.galleryShowCommand())
	cmd.AddCommand(c.galleryRenderCommand())
	cmd.AddCommand(c.galleryRemoveCommand())

	return cmd
}

func openGallery() (*gallery.FileStore, error) {
	dir, err := galleryDir()
	if err != nil {
		return nil, fmt.Errorf("get gallery dir: %w", err)
	}
	return gallery.NewFileStore(dir)
}

func (c *CLI) galleryListCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved posters, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openGallery()
			if err != nil {
				return err
			}
			defer store.Close()

			recs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				printInfo("Gallery is empty")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), galleryTable(recs))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", gallery.DefaultListLimit, "maximum number of posters")
	return cmd
}

// galleryTable renders records with a palette strip per row.
func galleryTable(recs []gallery.Record) string {
	rows := make([][]string, len(recs))
	for i, r := range recs {
		strip := ""
		for _, h := range r.Palette {
			strip += swatchBlock(h, 2)
		}
		title := r.Title
		if title == "" {
			title = "—"
		}
		rows[i] = []string{
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			title,
			string(r.Config.PaletteMode),
			fmt.Sprintf("%d", r.Config.Seed),
			strip,
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Created", "Title", "Palette", "Seed", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleDim
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func (c *CLI) galleryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved poster's configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := getRecord(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, swatchRow(rec.Palette))
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	}
}

func (c *CLI) galleryRenderCommand() *cobra.Command {
	var (
		formats string
		output  string
		scale   float64
	)
	cmd := &cobra.Command{
		Use:   "render <id>",
		Short: "Re-render a saved poster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := getRecord(cmd, args[0])
			if err != nil {
				return err
			}
			fs, err := pipeline.ParseFormats(formats)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(false)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Render(cmd.Context(), pipeline.Options{Poster: rec.Config, Formats: fs, Scale: scale})
			if err != nil {
				return err
			}
			paths, err := writeArtifacts(res, fs, outputBase(output, res.Seed, false))
			if err != nil {
				return err
			}
			printSuccess("Poster %s rendered", rec.ID)
			for _, p := range paths {
				printFile(p)
			}
			printStats(res.Stats.Layers, res.Stats.Bytes, res.CacheHit)
			return nil
		},
	}
	cmd.Flags().StringVarP(&formats, "format", "f", pipeline.FormatPNG, "output formats (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "raster scale factor")
	return cmd
}

func (c *CLI) galleryRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a saved poster",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := gallery.ValidateID(args[0]); err != nil {
				return err
			}
			store, err := openGallery()
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}

func getRecord(cmd *cobra.Command, id string) (gallery.Record, error) {
	if err := gallery.ValidateID(id); err != nil {
		return gallery.Record{}, err
	}
	store, err := openGallery()
	if err != nil {
		return gallery.Record{}, err
	}
	defer store.Close()
	return store.Get(cmd.Context(), id)
}
