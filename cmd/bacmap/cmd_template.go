package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"bacmap/internal/catalog"
	"bacmap/internal/dictionary"
	"bacmap/internal/logging"
	"bacmap/internal/match"
	"bacmap/internal/signature"
	"bacmap/internal/template"
	"bacmap/internal/types"
)

var (
	applyTarget string
	applyBy     string
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage and apply equipment templates",
}

var templateImportCmd = &cobra.Command{
	Use:   "import <template.yaml>",
	Short: "Import an equipment template from YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read template: %w", err)
		}
		var tpl types.EquipmentTemplate
		if err := yaml.Unmarshal(data, &tpl); err != nil {
			return fmt.Errorf("failed to parse template %s: %w", args[0], err)
		}
		if tpl.ID == "" {
			tpl.ID = uuid.NewString()
		}
		if tpl.Name == "" || len(tpl.Points) == 0 {
			return fmt.Errorf("template needs a name and at least one point")
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.SaveTemplate(&tpl); err != nil {
			return err
		}
		fmt.Printf("imported template %s (%s) with %d points\n", tpl.Name, tpl.ID, len(tpl.Points))
		return nil
	},
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		list, err := s.ListTemplates()
		if err != nil {
			return err
		}
		if jsonOutput {
			return emitJSON(list)
		}
		tbl := newTable("Templates", "ID", "Name", "Equipment Type", "Points", "Uses", "Success")
		for _, t := range list {
			tbl.addRow(t.ID, t.Name, t.EquipmentType,
				fmt.Sprintf("%d", len(t.Points)), fmt.Sprintf("%d", t.UsageCount), pct(t.SuccessRate))
		}
		fmt.Print(tbl.render())
		return nil
	},
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete <template-id>",
	Short: "Delete a template and its application history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		return s.DeleteTemplate(args[0])
	},
}

var templateMatchCmd = &cobra.Command{
	Use:   "match <template-id> <points-file>",
	Short: "Match observed points against a template's point slots",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		tpl, err := s.GetTemplate(args[0])
		if err != nil {
			return err
		}
		if tpl == nil {
			return fmt.Errorf("template %s not found", args[0])
		}

		points, err := loadPoints(args[1])
		if err != nil {
			return err
		}
		result, err := processPoints(cmd, args[1], points, tpl.EquipmentType)
		if err != nil {
			return err
		}
		normalized := make([]types.NormalizedPoint, len(result.Points))
		for i, p := range result.Points {
			normalized[i] = p.Normalized
		}

		matcher := match.NewMatcher(cfg.Matching, signature.NewBuilder(cfg.Signature))
		matches := matcher.Match(normalized, *tpl)
		if jsonOutput {
			return emitJSON(matches)
		}

		tbl := newTable("Template Matches", "Template Point", "Observed Point", "Score", "Quality")
		for _, m := range matches {
			tbl.addRow(m.TemplatePointID, m.MatchedPointObjectName,
				fmt.Sprintf("%.2f", m.MatchScore), quality(m.Quality))
		}
		fmt.Print(tbl.render())
		for _, m := range matches {
			for _, w := range m.Warnings {
				fmt.Println(warnStyle.Render("warning: " + w))
			}
			for _, r := range m.Recommendations {
				fmt.Println(mutedStyle.Render("hint: " + r))
			}
		}
		return nil
	},
}

var templateApplyCmd = &cobra.Command{
	Use:   "apply <template-id> <points-file>",
	Short: "Apply a template to a target equipment's points",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if applyTarget == "" {
			return fmt.Errorf("--target equipment ID is required")
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		tpl, err := s.GetTemplate(args[0])
		if err != nil {
			return err
		}
		if tpl == nil {
			return fmt.Errorf("template %s not found", args[0])
		}

		raws, err := loadPoints(args[1])
		if err != nil {
			return err
		}
		result, err := processPoints(cmd, args[1], raws, tpl.EquipmentType)
		if err != nil {
			return err
		}
		observed := make([]template.ObservedPoint, len(result.Points))
		for i, p := range result.Points {
			observed[i] = template.ObservedPoint{
				ObjectName: raws[i].ObjectName,
				BacnetCur:  raws[i].ObjectName,
				BacnetDis:  raws[i].DisplayName,
				BacnetDesc: raws[i].Description,
				NavName:    p.Normalized.NormalizedName,
				Units:      raws[i].Units,
				Score:      p.Normalized.ConfidenceScore,
			}
		}

		opts := types.ApplicationOptions{
			AllowPartialMatches: cfg.Application.AllowPartialMatches,
			CopyNavName:         cfg.Application.CopyNavName,
			CopyUnits:           cfg.Application.CopyUnits,
			ConfidenceThreshold: cfg.Application.ConfidenceThreshold,
		}
		applicator := template.NewApplicator(cfg.Application)
		app := applicator.Apply(*tpl, applyTarget, observed, opts, applyBy)
		if err := s.RecordApplication(&app); err != nil {
			return err
		}
		if jsonOutput {
			return emitJSON(app)
		}

		tbl := newTable("Applied Points", "Template Point", "Bound Point", "Confidence", "Matched")
		for _, ap := range app.AppliedPoints {
			matched := okStyle.Render("yes")
			if !ap.Matched {
				matched = warnStyle.Render("no")
			}
			tbl.addRow(ap.TemplatePointID, ap.PointObjectName, fmt.Sprintf("%.2f", ap.Confidence), matched)
		}
		fmt.Print(tbl.render())

		mr := app.MatchingResults
		status := okStyle.Render("successful")
		if !app.IsSuccessful {
			status = warnStyle.Render("unsuccessful")
		}
		fmt.Printf("\napplication %s: %d/%d points bound, average confidence %.2f (%s)\n",
			app.ID, mr.MatchedPoints, mr.TotalPoints, mr.AverageConfidence, status)
		return nil
	},
}

var templateEffectivenessCmd = &cobra.Command{
	Use:   "effectiveness <template-id>",
	Short: "Report a template's historical effectiveness",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		tpl, err := s.GetTemplate(args[0])
		if err != nil {
			return err
		}
		if tpl == nil {
			return fmt.Errorf("template %s not found", args[0])
		}
		apps, err := s.ListApplications(tpl.ID)
		if err != nil {
			return err
		}

		report := template.Effectiveness(*tpl, apps)
		if jsonOutput {
			return emitJSON(report)
		}

		fmt.Println(titleStyle.Render("Effectiveness: " + tpl.Name))
		fmt.Printf("overall        %.2f\n", report.OverallEffectiveness)
		fmt.Printf("match rate     %.2f\n", report.PointMatchRate)
		fmt.Printf("confidence     %.2f\n", report.ConfidenceScore)
		fmt.Printf("applications   %d\n", report.UsageFrequency)
		for _, r := range report.Recommendations {
			fmt.Println(mutedStyle.Render("hint: " + r))
		}
		return nil
	},
}

// processPoints normalizes an already-loaded point export with the
// template's equipment type as context.
func processPoints(cmd *cobra.Command, deviceID string, points []types.RawPoint, equipmentType string) (*catalog.DeviceResult, error) {
	provider, err := dictionary.NewProvider(cfg.Dictionary.Path, logging.Get(logging.CategoryDictionary))
	if err != nil {
		return nil, err
	}
	defer provider.Close()

	cat := catalog.New(cfg, provider)
	return cat.ProcessDevice(cmd.Context(), catalog.Device{
		DeviceID:      deviceID,
		EquipmentType: equipmentType,
		Points:        points,
	})
}

func quality(q types.MatchQuality) string {
	switch {
	case q.Exact:
		return okStyle.Render("exact")
	case q.Partial:
		return "partial"
	case q.Fuzzy:
		return warnStyle.Render("fuzzy")
	}
	return mutedStyle.Render("weak")
}

func init() {
	templateApplyCmd.Flags().StringVar(&applyTarget, "target", "", "target equipment ID")
	templateApplyCmd.Flags().StringVar(&applyBy, "by", "bacmap", "operator recorded on the application")
	templateCmd.AddCommand(templateImportCmd, templateListCmd, templateDeleteCmd,
		templateMatchCmd, templateApplyCmd, templateEffectivenessCmd)
	rootCmd.AddCommand(templateCmd)
}
