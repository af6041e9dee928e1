package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bacmap/internal/store"
	"bacmap/internal/types"
)

var (
	equipmentSide     string
	equipmentType     string
	equipmentLocation string
)

var equipmentCmd = &cobra.Command{
	Use:   "equipment",
	Short: "Manage BACnet and CxAlloy equipment records",
}

var equipmentAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an equipment record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		side, err := parseSide(equipmentSide)
		if err != nil {
			return err
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		e := &types.Equipment{
			Name:          args[0],
			EquipmentType: equipmentType,
			Location:      equipmentLocation,
		}
		if err := s.SaveEquipment(side, e); err != nil {
			return err
		}
		fmt.Printf("added %s equipment %s (%s)\n", side, e.Name, e.ID)
		return nil
	},
}

var equipmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List equipment records on one side",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		side, err := parseSide(equipmentSide)
		if err != nil {
			return err
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		list, err := s.ListEquipment(side)
		if err != nil {
			return err
		}
		if jsonOutput {
			return emitJSON(list)
		}
		tbl := newTable(fmt.Sprintf("%s equipment", side), "ID", "Name", "Type", "Location")
		for _, e := range list {
			tbl.addRow(e.ID, e.Name, e.EquipmentType, e.Location)
		}
		fmt.Print(tbl.render())
		return nil
	},
}

var equipmentDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an equipment record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		return s.DeleteEquipment(args[0])
	},
}

func parseSide(v string) (store.EquipmentSide, error) {
	switch store.EquipmentSide(v) {
	case store.SideBacnet, store.SideCxAlloy:
		return store.EquipmentSide(v), nil
	}
	return "", fmt.Errorf("unknown side %q (want bacnet or cxalloy)", v)
}

func init() {
	equipmentCmd.PersistentFlags().StringVar(&equipmentSide, "side", "bacnet", "equipment side: bacnet or cxalloy")
	equipmentAddCmd.Flags().StringVar(&equipmentType, "type", "", "equipment type (e.g. VAV_CONTROLLER)")
	equipmentAddCmd.Flags().StringVar(&equipmentLocation, "location", "", "free-form location")
	equipmentCmd.AddCommand(equipmentAddCmd, equipmentListCmd, equipmentDeleteCmd)
	rootCmd.AddCommand(equipmentCmd)
}
