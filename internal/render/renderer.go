package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/luqmanhadi/oshikatsu/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer turns cards and pages into HTML
type Renderer struct {
	tmpl    *template.Template
	printer *message.Printer
	lang    string
}

// pageView adds document-level attributes to a page. CardMarkup holds the output of
// RenderCard for each card, in page order.
type pageView struct {
	models.Page
	Lang       string
	CardMarkup []template.HTML
}

// New parses the embedded templates. locale is a BCP 47 tag that controls number
// formatting and the document language.
func New(locale string) (*Renderer, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	r := &Renderer{
		printer: message.NewPrinter(tag),
		lang:    tag.String(),
	}

	tmpl, err := template.New("oshikatsu").
		Funcs(template.FuncMap{"formatDays": r.FormatDays}).
		ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.tmpl = tmpl

	return r, nil
}

// FormatDays formats a day count with the locale's grouping separators (1234 -> 1,234 in en)
func (r *Renderer) FormatDays(days int) string {
	return r.printer.Sprintf("%d", days)
}

// RenderCard writes the markup of a single card
func (r *Renderer) RenderCard(w io.Writer, card models.Card) error {
	return r.tmpl.ExecuteTemplate(w, "card", card)
}

// RenderPage writes the complete document, rendering each card through RenderCard
func (r *Renderer) RenderPage(w io.Writer, page models.Page) error {
	markup := make([]template.HTML, 0, len(page.Cards))
	var buf bytes.Buffer
	for _, card := range page.Cards {
		buf.Reset()
		if err := r.RenderCard(&buf, card); err != nil {
			return fmt.Errorf("failed to render card %d: %w", card.Oshi.OrderID, err)
		}
		// card output is already escaped by html/template
		markup = append(markup, template.HTML(buf.String()))
	}

	return r.tmpl.ExecuteTemplate(w, "page", pageView{Page: page, Lang: r.lang, CardMarkup: markup})
}
