package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/luqmanhadi/oshikatsu/internal/apperrors"
	"github.com/luqmanhadi/oshikatsu/internal/config"
	"github.com/luqmanhadi/oshikatsu/internal/metrics"
	"github.com/luqmanhadi/oshikatsu/internal/models"
	"github.com/luqmanhadi/oshikatsu/internal/render"
	"github.com/luqmanhadi/oshikatsu/internal/source"
)

// DefaultPageAssembler implements PageAssembler with one data source read per call
type DefaultPageAssembler struct {
	source   source.Source
	days     DayCalculator
	renderer *render.Renderer
	meta     models.PageMeta
}

// NewPageAssembler creates a page assembler
func NewPageAssembler(src source.Source, days DayCalculator, renderer *render.Renderer, meta models.PageMeta) PageAssembler {
	return &DefaultPageAssembler{
		source:   src,
		days:     days,
		renderer: renderer,
		meta:     meta,
	}
}

// Assemble loads, sorts, counts and renders. A load failure, a malformed start date
// or a template error aborts the whole page.
func (a *DefaultPageAssembler) Assemble(ctx context.Context, w io.Writer) (err error) {
	logger := config.GetLogger()
	start := time.Now()

	defer func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.PageRendersTotal.WithLabelValues(status).Inc()
		metrics.PageRenderDuration.Observe(time.Since(start).Seconds())
	}()

	list, err := a.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load oshi data from %s: %w", a.source.Name(), err)
	}

	models.SortByOrder(list)

	cards := make([]models.Card, 0, len(list))
	for _, oshi := range list {
		days, err := a.days.DaysSince(oshi.StartDate)
		if err != nil {
			return &apperrors.ErrInvalidStartDate{OrderID: oshi.OrderID, Value: oshi.StartDate}
		}
		cards = append(cards, models.Card{Oshi: oshi, Days: days})
	}

	var buf bytes.Buffer
	if err := a.renderer.RenderPage(&buf, models.Page{Meta: a.meta, Cards: cards}); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}

	metrics.OshiEntries.Set(float64(len(cards)))
	logger.Debug().
		Int("oshi", len(cards)).
		Dur("duration", time.Since(start)).
		Msg("Rendered oshi page")

	return nil
}

// MetaFromConfig copies the configured page strings into the view model
func MetaFromConfig(p config.PageConfig) models.PageMeta {
	return models.PageMeta{
		Title:       p.Title,
		Description: p.Description,
		Icon:        p.Icon,
		Owner:       p.Owner,
		Heading:     p.Heading,
		LogoPath:    p.LogoPath,
		LogoAlt:     p.LogoAlt,
		LogoSize:    p.LogoSize,
		FooterText:  p.FooterText,
		LinkURL:     p.LinkURL,
		LinkText:    p.LinkText,
	}
}
