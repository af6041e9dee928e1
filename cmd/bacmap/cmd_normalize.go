package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bacmap/internal/catalog"
	"bacmap/internal/dictionary"
	"bacmap/internal/logging"
)

var (
	normalizeEquipmentType string
	normalizeVendor        string
	normalizeDeviceID      string
)

// normalizeCmd runs a point export through the normalization pipeline.
var normalizeCmd = &cobra.Command{
	Use:   "normalize <points-file>",
	Short: "Normalize a BACnet point export (trio or CSV)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		points, err := loadPoints(args[0])
		if err != nil {
			return err
		}

		provider, err := dictionary.NewProvider(cfg.Dictionary.Path, logging.Get(logging.CategoryDictionary))
		if err != nil {
			return err
		}
		defer provider.Close()

		cat := catalog.New(cfg, provider)
		res, err := cat.ProcessDevice(cmd.Context(), catalog.Device{
			DeviceID:      normalizeDeviceID,
			EquipmentType: normalizeEquipmentType,
			VendorName:    normalizeVendor,
			Points:        points,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return emitJSON(res)
		}

		tbl := newTable("Normalized Points", "Object", "Original", "Normalized", "Function", "Confidence", "Review")
		for _, p := range res.Points {
			np := p.Normalized
			review := ""
			if np.RequiresManualReview {
				review = warnStyle.Render("yes")
			}
			tbl.addRow(np.ObjectName, np.OriginalName, np.ExpandedDescription,
				string(np.PointFunction), fmt.Sprintf("%.2f (%s)", np.ConfidenceScore, np.ConfidenceLevel), review)
		}
		fmt.Print(tbl.render())

		s := res.Summary
		fmt.Printf("\n%d points, %d need review, average confidence %.2f\n",
			s.TotalPoints, s.NeedsReview, s.AverageConfidence)
		return nil
	},
}

func init() {
	normalizeCmd.Flags().StringVar(&normalizeEquipmentType, "equipment-type", "", "equipment type hint (e.g. VAV_CONTROLLER)")
	normalizeCmd.Flags().StringVar(&normalizeVendor, "vendor", "", "vendor name hint")
	normalizeCmd.Flags().StringVar(&normalizeDeviceID, "device", "device", "device identifier for the summary")
	rootCmd.AddCommand(normalizeCmd)
}
