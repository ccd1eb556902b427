package tui

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mmcdole/videoclub/internal/domain"
	"github.com/mmcdole/videoclub/internal/gallery"
)

// RenderPlain writes the gallery for res as plain text, for output that is
// not a terminal. It returns the catalog error when the load failed.
func RenderPlain(w io.Writer, res domain.CatalogResult, streamBase string, logger *slog.Logger) error {
	region := newScreenRegion(streamBase, nil)
	gallery.NewRenderer(region, logger).Render(res)

	if region.message != nil {
		if _, err := fmt.Fprintln(w, region.message.Text); err != nil {
			return err
		}
		if res.Err != nil {
			return res.Err
		}
		return nil
	}

	for i, c := range region.cards {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		f := c.fragment
		if _, err := fmt.Fprintf(w, "%s\n  %s\n  %s\n  %s\n  %s\n",
			f.Heading, f.Poster, f.YearText, f.DurationText, c.streamURL); err != nil {
			return err
		}
	}
	return nil
}
