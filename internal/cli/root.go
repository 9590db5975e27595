// Package cli is the trajvis command line: each subcommand reads a backend
// payload from a file or stdin and prints the normalized panel as json.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/uyouii/trajvis/config"
	"github.com/uyouii/trajvis/utils"
	"go.uber.org/zap"
)

type app struct {
	configPath string
	verbose    bool
	cfg        *config.Config
}

func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "trajvis",
		Short:         "Normalize CKD trajectory payloads into plot ready json",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "yaml config file, TRAJVIS_* variables apply either way")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(a.newAnalysisCmd())
	root.AddCommand(a.newDensityCmd())
	root.AddCommand(a.newPatientCmd())
	root.AddCommand(a.newTrajectoryCmd())
	root.AddCommand(a.newIndicatorsCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.Load(a.configPath)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	level := a.cfg.Log.Level
	if a.verbose {
		level = "debug"
	}
	logger, err := utils.InitLogger(a.cfg.Log.Mode, level)
	if err != nil {
		return err
	}
	logger.Debug("config loaded", zap.String("path", a.configPath),
		zap.Int("startAge", a.cfg.Probability.StartAge), zap.Int("endAge", a.cfg.Probability.EndAge))

	cmd.SetContext(utils.WithLogger(cmd.Context(), logger))
	return nil
}
