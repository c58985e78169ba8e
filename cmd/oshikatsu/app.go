package main

import (
	"fmt"

	"github.com/luqmanhadi/oshikatsu/internal/config"
	"github.com/luqmanhadi/oshikatsu/internal/render"
	"github.com/luqmanhadi/oshikatsu/internal/services"
	"github.com/luqmanhadi/oshikatsu/internal/source"
)

// app bundles what both commands need to produce the page
type app struct {
	source    source.Source
	assembler services.PageAssembler
}

func newApp(cfg *config.Config) (*app, error) {
	renderer, err := render.New(cfg.Locale)
	if err != nil {
		return nil, err
	}

	loc, err := services.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	src := source.New(cfg)
	days := services.NewDayCalculator(nil, loc)

	return &app{
		source:    src,
		assembler: services.NewPageAssembler(src, days, renderer, services.MetaFromConfig(cfg.Page)),
	}, nil
}
