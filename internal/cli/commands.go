package cli

import (
	"github.com/spf13/cobra"
	"github.com/uyouii/trajvis/density"
	"github.com/uyouii/trajvis/embedding"
	"github.com/uyouii/trajvis/model"
	"github.com/uyouii/trajvis/payload"
	"github.com/uyouii/trajvis/view"
)

func (a *app) newAnalysisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analysis <analysis.json|->",
		Short: "Trajectories, bands, probabilities and demographics of one patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			bundle, err := payload.DecodeAnalysis(raw)
			if err != nil {
				return err
			}
			return writeJSON(cmd, view.BuildAnalysis(cmd.Context(), &bundle, a.cfg))
		},
	}
}

func (a *app) newDensityCmd() *cobra.Command {
	var hint string
	var smooth float64

	cmd := &cobra.Command{
		Use:   "density <dist.json|->",
		Short: "Population distribution of a concept, synthetic when the payload is unusable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			res := view.PopulationDensity(cmd.Context(), raw, density.ParseHint(hint), a.cfg.Density.Source())
			if !cmd.Flags().Changed("smooth") {
				smooth = a.cfg.Density.Smooth
			}
			if smooth > 0 {
				res = density.Smooth(res, smooth)
			}
			return writeJSON(cmd, res)
		},
	}
	cmd.Flags().StringVar(&hint, "hint", string(density.AgeHint), "fallback shape, egfr or age")
	cmd.Flags().Float64Var(&smooth, "smooth", 0, "kernel smoothing bandwidth adjustment, 0 disables it")
	return cmd
}

func (a *app) newPatientCmd() *cobra.Command {
	var labtestPath, left, right string

	cmd := &cobra.Command{
		Use:   "patient <patient.json|->",
		Short: "Patient card and the two metric lab chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			bundle, err := payload.DecodePatient(raw)
			if err != nil {
				return err
			}

			lab := payload.Labtest{Concepts: []string{}}
			labRaw, err := readOptional(cmd, labtestPath)
			if err != nil {
				return err
			}
			if labRaw != nil {
				if lab, err = payload.DecodeLabtest(labRaw); err != nil {
					return err
				}
			}

			panel := view.BuildPatient(cmd.Context(), &bundle, &lab, left, right, a.cfg.Indicator.Labels())
			return writeJSON(cmd, panel)
		},
	}
	cmd.Flags().StringVar(&labtestPath, "labtest", "", "labtest payload of the patient")
	cmd.Flags().StringVar(&left, "left", view.DefaultLeftMetric, "concept of the left axis")
	cmd.Flags().StringVar(&right, "right", view.DefaultRightMetric, "concept of the right axis")
	return cmd
}

func (a *app) newTrajectoryCmd() *cobra.Command {
	var patientPath, colorKey string

	cmd := &cobra.Command{
		Use:   "trajectory <umap.json|->",
		Short: "Embedding view of the population with the patient projected onto it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			population, err := payload.DecodePopulationEmbedding(raw)
			if err != nil {
				return err
			}

			patient := []model.Point{}
			patientRaw, err := readOptional(cmd, patientPath)
			if err != nil {
				return err
			}
			if patientRaw != nil {
				if patient, err = payload.DecodePatientEmbedding(patientRaw); err != nil {
					return err
				}
			}

			panel, _ := view.BuildTrajectory(cmd.Context(), &population, patient, colorKey, a.cfg)
			return writeJSON(cmd, panel)
		},
	}
	cmd.Flags().StringVar(&patientPath, "patient", "", "embedding payload of the patient")
	cmd.Flags().StringVar(&colorKey, "color", embedding.AgeAttribute, "coloring attribute, age or egfr")
	return cmd
}

func (a *app) newIndicatorsCmd() *cobra.Command {
	var analysisPath string

	cmd := &cobra.Command{
		Use:   "indicators <patient.json|->",
		Short: "Age by concept matrix of the patient's clinical indicators",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			bundle, err := payload.DecodePatient(raw)
			if err != nil {
				return err
			}

			var analysis *payload.AnalysisBundle
			analysisRaw, err := readOptional(cmd, analysisPath)
			if err != nil {
				return err
			}
			if analysisRaw != nil {
				decoded, err := payload.DecodeAnalysis(analysisRaw)
				if err != nil {
					return err
				}
				analysis = &decoded
			}

			return writeJSON(cmd, view.BuildIndicators(cmd.Context(), &bundle, analysis, a.cfg))
		},
	}
	cmd.Flags().StringVar(&analysisPath, "analysis", "", "analysis payload, colors the age columns by trajectory class")
	return cmd
}
