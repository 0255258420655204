package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mmcdole/retrofolio/internal/domain"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List sections and how often each was compiled",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		_, err = fmt.Fprintln(cmd.OutOrStdout(), sectionsTable(a.registry.All(), a.prefs.Visits))
		return err
	},
}

// sectionsTable lays out one row per section in registry order
func sectionsTable(sections []domain.Section, visits func(id string) int) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "ID", "LABEL", "FILE", "VISITS")
	for i, s := range sections {
		t.Row(strconv.Itoa(i+1), s.ID, s.DisplayLabel(), s.Filename, strconv.Itoa(visits(s.ID)))
	}
	return t.String()
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}
