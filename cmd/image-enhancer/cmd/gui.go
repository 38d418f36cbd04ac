package cmd

import (
	"image-enhancer/internal/app"

	"github.com/spf13/cobra"
)

func newGUICommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Launch the desktop application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.cfg.PipelineConfiguration()
			if err != nil {
				return err
			}

			application, err := app.NewApplication(cfg.Params(), s.log, s.recorder)
			if err != nil {
				return err
			}
			return application.Run()
		},
	}
}

