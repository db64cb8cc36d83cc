package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aexol-studio/axolotl-sub001/internal/modelgen"
)

func newModelsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "models",
		Short:   "Generate TypeScript models from a composed schema",
		Example: "axolotl models -s schema.graphql -o src/models.ts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := os.ReadFile(a.cfg.Models.Schema)
			if err != nil {
				return fmt.Errorf("read schema: %w", err)
			}

			w, closeOut, err := output(cmd, a.cfg.Models.Output)
			if err != nil {
				return err
			}
			opts := modelgen.Options{Scalars: a.cfg.Models.ScalarTypes()}
			if err := modelgen.Generate(w, string(schema), opts); err != nil {
				_ = closeOut()
				return err
			}
			a.logger.Debug("models written", zap.String("output", a.cfg.Models.Output))
			return closeOut()
		},
	}
	cmd.Flags().StringP("models.schema", "s", "", "schema file to generate models from")
	cmd.Flags().StringP("models.output", "o", "", "write models to file (- for stdout)")
	return cmd
}
