package main

import (
	"mass-image-editor/internal/config"
	"mass-image-editor/internal/logger"

	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once flags are parsed
type app struct {
	configPath string
	cfg        config.Config
	log        logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "mass-image-editor",
		Short: "Apply one chain of image filters to a whole folder",
		Long: `Mass Image Editor composes an ordered chain of filters (scan, rotate,
flip, crop, sharpen, blur, smooth, emboss, greyscale) and applies it to
every image of a source folder.

Use "preview" to check a chain and "export" to write the results into a
fresh output directory.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
			}

			log, err := logger.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)
			if err != nil {
				return err
			}

			a.cfg = cfg
			a.log = log
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML settings file")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error, disabled")

	cmd.AddCommand(newFiltersCmd(a))
	cmd.AddCommand(newPreviewCmd(a))
	cmd.AddCommand(newExportCmd(a))

	return cmd
}
