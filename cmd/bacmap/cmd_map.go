package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bacmap/internal/automap"
	"bacmap/internal/store"
	"bacmap/internal/types"
)

var mapDryRun bool

// mapCmd maps BACnet equipment onto the CxAlloy catalog.
var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Auto-map BACnet equipment onto CxAlloy equipment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		sources, err := s.ListEquipment(store.SideBacnet)
		if err != nil {
			return err
		}
		targets, err := s.ListEquipment(store.SideCxAlloy)
		if err != nil {
			return err
		}

		mapper := automap.NewMapper(cfg.AutoMap)
		result := mapper.Map(cmd.Context(), sources, targets)

		if !mapDryRun {
			all := make([]types.AutoMappingMatch, 0, len(result.Exact)+len(result.Suggested))
			all = append(all, result.Exact...)
			all = append(all, result.Suggested...)
			if err := s.RecordMappings(all); err != nil {
				return err
			}
		}
		if jsonOutput {
			return emitJSON(result)
		}

		tbl := newTable("Equipment Mappings", "BACnet", "CxAlloy", "Confidence", "Type", "Reasons")
		for _, m := range result.Exact {
			tbl.addRow(m.BacnetEquipmentID, m.CxAlloyEquipmentID,
				okStyle.Render(fmt.Sprintf("%.2f", m.Confidence)), string(m.MatchType), strings.Join(m.Reasons, "; "))
		}
		for _, m := range result.Suggested {
			tbl.addRow(m.BacnetEquipmentID, m.CxAlloyEquipmentID,
				warnStyle.Render(fmt.Sprintf("%.2f", m.Confidence)), string(m.MatchType), strings.Join(m.Reasons, "; "))
		}
		fmt.Print(tbl.render())

		st := result.Stats
		fmt.Printf("\n%d sources, %d targets: %d exact, %d suggested, %d unmatched (%dms)\n",
			st.TotalSources, st.TotalTargets, st.ExactCount, st.SuggestedCount, st.UnmatchedCount, st.ElapsedMs)
		for _, e := range result.UnmatchedSource {
			fmt.Println(mutedStyle.Render("unmatched bacnet: " + e.Name))
		}
		return nil
	},
}

// mappingsCmd lists previously recorded mappings.
var mappingsCmd = &cobra.Command{
	Use:   "mappings",
	Short: "List recorded equipment mappings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		list, err := s.ListMappings()
		if err != nil {
			return err
		}
		if jsonOutput {
			return emitJSON(list)
		}
		tbl := newTable("Recorded Mappings", "BACnet", "CxAlloy", "Confidence", "Type")
		for _, m := range list {
			tbl.addRow(m.BacnetEquipmentID, m.CxAlloyEquipmentID, fmt.Sprintf("%.2f", m.Confidence), string(m.MatchType))
		}
		fmt.Print(tbl.render())
		return nil
	},
}

func init() {
	mapCmd.Flags().BoolVar(&mapDryRun, "dry-run", false, "compute mappings without recording them")
	rootCmd.AddCommand(mapCmd, mappingsCmd)
}
