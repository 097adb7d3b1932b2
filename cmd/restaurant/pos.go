package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/temporalio/temporal-restaurant/cmd/restaurant/ui"
)

var posCmd = &cobra.Command{
	Use:   "pos",
	Short: "Point of Sale",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			return err
		}
		defer f.Close()

		s, err := newSession(newLogger(f))
		if err != nil {
			return err
		}

		p := tea.NewProgram(ui.NewPOS(s), tea.WithAltScreen())
		_, err = p.Run()

		return err
	},
}

func init() {
	rootCmd.AddCommand(posCmd)
}
