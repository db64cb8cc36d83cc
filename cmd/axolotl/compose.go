package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aexol-studio/axolotl-sub001/internal/compose"
)

func newComposeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "compose [paths...]",
		Short:   "Merge SDL files and directories into one schema",
		Example: "axolotl compose users/ reviews/schema.graphql -o schema.graphql",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = a.cfg.Schema.Sources
			}
			sources, err := compose.LoadFiles(paths...)
			if err != nil {
				return fmt.Errorf("load sources: %w", err)
			}
			if len(sources) == 0 {
				return fmt.Errorf("no SDL files found in %v", paths)
			}

			sdl, err := compose.ComposeSources(cmd.Context(), sources...)
			if err != nil {
				return err
			}

			w, closeOut, err := output(cmd, a.cfg.Schema.Output)
			if err != nil {
				return err
			}
			if _, err := io.WriteString(w, sdl); err != nil {
				_ = closeOut()
				return err
			}
			a.logger.Debug("schema written", zap.String("output", a.cfg.Schema.Output))
			return closeOut()
		},
	}
	cmd.Flags().StringP("schema.output", "o", "", "write the composed schema to file (- for stdout)")
	return cmd
}
