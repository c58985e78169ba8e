package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luqmanhadi/oshikatsu/internal/config"
)

func newRenderCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the page once to a file or stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the page to this file instead of stdout")

	return cmd
}

func runRender(cmd *cobra.Command, out string) error {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := a.assembler.Assemble(cmd.Context(), &buf); err != nil {
		logger.Error().Err(err).Str("source", a.source.Name()).Msg("Failed to render oshi page")
		return err
	}

	if out == "" {
		_, err := buf.WriteTo(cmd.OutOrStdout())
		return err
	}

	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	logger.Info().Str("path", out).Int("bytes", buf.Len()).Msg("Page written")
	return nil
}
