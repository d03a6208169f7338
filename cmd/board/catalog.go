package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List placeable blueprints",
	Long:  `List the blueprints in the catalog with their footprints and capabilities.`,
	Args:  cobra.NoArgs,
	Run:   runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) {
	cat, err := loadCatalog()
	if err != nil {
		fail("%v", err)
	}

	th := currentTheme()
	fmt.Println(th.Paint(th.Title, "Blueprints"))
	fmt.Println()

	blueprints := cat.List()
	maxName := 4
	for _, bp := range blueprints {
		if len(bp.Name) > maxName {
			maxName = len(bp.Name)
		}
	}

	fmt.Printf("  %-*s  %-8s  %-9s  %s\n", maxName, "NAME", "KIND", "FOOTPRINT", "DETAILS")
	fmt.Printf("  %s  %s  %s  %s\n", strings.Repeat("-", maxName), strings.Repeat("-", 8),
		strings.Repeat("-", 9), strings.Repeat("-", 20))

	for _, bp := range blueprints {
		var details []string
		if bp.Title != "" {
			details = append(details, bp.Title)
		}
		if bp.Producer != nil {
			details = append(details, fmt.Sprintf("produces %s at %s",
				strings.Join(bp.Producer.Units, ", "), bp.Producer.SpawnOffset))
		}
		if bp.Mobile != nil {
			details = append(details, fmt.Sprintf("speed %.1f", bp.Mobile.Speed))
		}
		fmt.Printf("  %-*s  %-8s  %-9s  %s\n", maxName, bp.Name, bp.Kind, bp.Footprint,
			strings.Join(details, "; "))
	}
	fmt.Println()
	fmt.Printf("Total: %d blueprints\n", len(blueprints))
}
