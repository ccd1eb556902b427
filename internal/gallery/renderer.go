package gallery

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/mmcdole/videoclub/internal/domain"
)

// StreamPath is the backend path that serves media bytes
const StreamPath = "/stream"

// User-facing gallery messages
const (
	EmptyCatalogText  = "No hay películas disponibles."
	FailedCatalogText = "Error al cargar el listado de películas"
)

// MessageKind distinguishes informational messages from error banners
type MessageKind int

const (
	MessageInfo MessageKind = iota
	MessageError
)

// Message is the single message shown in place of the gallery
type Message struct {
	Kind MessageKind
	Text string
}

// Fragment is the display data for one catalog entry
type Fragment struct {
	Index        int
	Heading      string // "Title (Year)"
	YearText     string // "Año: 2000"
	DurationText string // "90 minutos"
	Poster       string // poster image URI
	Alt          string // poster alternative text
	StreamPath   string // "/stream?path=..."
}

// Region is the one container the renderer is allowed to mutate
type Region interface {
	// Reset removes all content from the region
	Reset()
	// SetMessage replaces the region content with a single message
	SetMessage(msg Message)
	// Append adds a fragment after the existing ones and returns its surfaces
	Append(f Fragment) Mount
}

// Renderer materializes a catalog result into a region
type Renderer struct {
	region Region
	logger *slog.Logger
}

// NewRenderer creates a renderer bound to region
func NewRenderer(region Region, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{region: region, logger: logger}
}

// Render replaces the region content with res. It returns the gallery of
// controllers, empty unless res is Loaded.
func (r *Renderer) Render(res domain.CatalogResult) *Gallery {
	r.region.Reset()

	switch res.Kind {
	case domain.ResultFailed:
		text := FailureText(res.Err)
		r.logger.Error("catalog load failed", "error", res.Err)
		r.region.SetMessage(Message{Kind: MessageError, Text: text})
		return &Gallery{}

	case domain.ResultLoaded:
		g := &Gallery{controllers: make([]*Controller, 0, len(res.Entries))}
		for i, entry := range res.Entries {
			mount := r.region.Append(NewFragment(i, entry))
			g.controllers = append(g.controllers, NewController(i, mount, r.logger))
		}
		r.logger.Info("gallery rendered", "entries", len(g.controllers))
		return g

	default:
		r.region.SetMessage(Message{Kind: MessageInfo, Text: EmptyCatalogText})
		return &Gallery{}
	}
}

// FailureText builds the diagnostic shown for a failed catalog load
func FailureText(err *domain.CatalogError) string {
	if err == nil {
		return FailedCatalogText + "."
	}
	if err.Kind == domain.FailureTransport && err.Status != 0 {
		return fmt.Sprintf("%s: código %s", FailedCatalogText, err.Detail())
	}
	return fmt.Sprintf("%s: %s", FailedCatalogText, err.Detail())
}

// NewFragment builds the display fragment for the entry at index
func NewFragment(index int, entry domain.MediaEntry) Fragment {
	return Fragment{
		Index:        index,
		Heading:      entry.Label(),
		YearText:     fmt.Sprintf("Año: %d", entry.Year),
		DurationText: fmt.Sprintf("%d minutos", entry.Duration),
		Poster:       entry.Poster,
		Alt:          entry.Title,
		StreamPath:   StreamLocator(entry.VideoURL),
	}
}

// StreamLocator returns the backend request path for a video token
func StreamLocator(videoURL string) string {
	return StreamPath + "?path=" + encodeURIComponent(videoURL)
}

// encodeURIComponent escapes s for use as a query value, encoding spaces as
// %20 and leaving the unreserved marks !'()*-._~ alone.
func encodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	return strings.NewReplacer(
		"+", "%20",
		"%21", "!",
		"%27", "'",
		"%28", "(",
		"%29", ")",
		"%2A", "*",
	).Replace(escaped)
}
