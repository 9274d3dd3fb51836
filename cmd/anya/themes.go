package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/phanxgames/anya"
	"github.com/phanxgames/anya/internal/themes"
)

var themesOpts struct {
	file string
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available button themes",
	Long: `List the themes in the theme file with color swatches for outline,
background and text. The active theme is marked with *.

Without --file, the file from the config is used, or the built-in themes
when none is configured.`,
	Args: cobra.NoArgs,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)

	themesCmd.Flags().StringVar(&themesOpts.file, "file", "",
		"Theme YAML file (default: themes.file from config)")
}

func runThemes(cmd *cobra.Command, args []string) error {
	path := themesOpts.file
	if path == "" {
		path = cfg.Themes.File
	}
	table, err := themes.Load(path)
	if err != nil {
		return err
	}
	printThemes(cmd.OutOrStdout(), table, cfg.Themes.Active)
	return nil
}

func printThemes(w io.Writer, table map[string]anya.Theme, active string) {
	nameStyle := lipgloss.NewStyle().Bold(true).Width(10)
	hexStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	for _, name := range themes.Names(table) {
		spec := themes.Spec(table[name])
		marker := " "
		if name == active {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s %s %s %s %s\n",
			marker,
			nameStyle.Render(name),
			swatch(spec.Outline),
			swatch(spec.Background),
			swatch(spec.Text),
			hexStyle.Render(fmt.Sprintf("%s %s %s", spec.Outline, spec.Background, spec.Text)))
	}
}

func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("   ")
}
