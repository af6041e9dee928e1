package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bacmap/internal/dictionary"
)

var (
	dictEquipment string
	dictVendor    string
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Inspect the acronym dictionary",
}

var dictStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dictionary snapshot statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := dictionary.LoadDir(cfg.Dictionary.Path)
		if err != nil {
			return err
		}
		fmt.Println(titleStyle.Render("Dictionary " + snap.Version()))
		fmt.Println(snap.Stats())
		if eq := snap.EquipmentTypes(); len(eq) > 0 {
			fmt.Println("equipment tables:", strings.Join(eq, ", "))
		}
		if v := snap.Vendors(); len(v) > 0 {
			fmt.Println("vendor tables:", strings.Join(v, ", "))
		}
		return nil
	},
}

var dictLookupCmd = &cobra.Command{
	Use:   "lookup <token>",
	Short: "Look a token up through the dictionary cascade",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := dictionary.LoadDir(cfg.Dictionary.Path)
		if err != nil {
			return err
		}
		token := args[0]

		tbl := newTable("Lookup: "+token, "Table", "Expansion", "Category", "Priority", "Tags")
		if dictEquipment != "" {
			if e, ok := snap.Equipment(dictEquipment, token); ok {
				tbl.addRow("equipment:"+dictEquipment, e.Expansion, e.Category,
					fmt.Sprintf("%d", e.Priority), strings.Join(e.Tags, ","))
			}
		}
		if dictVendor != "" {
			if e, ok := snap.Vendor(dictVendor, token); ok {
				tbl.addRow("vendor:"+dictVendor, e.Expansion, e.Category,
					fmt.Sprintf("%d", e.Priority), strings.Join(e.Tags, ","))
			}
		}
		if e, ok := snap.General(token); ok {
			tbl.addRow("general", e.Expansion, e.Category,
				fmt.Sprintf("%d", e.Priority), strings.Join(e.Tags, ","))
		}
		fmt.Print(tbl.render())
		return nil
	},
}

var dictCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the dictionary overlay directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Dictionary.Path == "" {
			fmt.Println("no overlay directory configured, embedded defaults only")
			return nil
		}
		snap, err := dictionary.LoadDir(cfg.Dictionary.Path)
		if err != nil {
			return err
		}
		fmt.Println(okStyle.Render("dictionary OK"), snap.Version(), snap.Stats())
		return nil
	},
}

func init() {
	dictLookupCmd.Flags().StringVar(&dictEquipment, "equipment", "", "also consult this equipment table")
	dictLookupCmd.Flags().StringVar(&dictVendor, "vendor", "", "also consult this vendor table")
	dictCmd.AddCommand(dictStatsCmd, dictLookupCmd, dictCheckCmd)
	rootCmd.AddCommand(dictCmd)
}
