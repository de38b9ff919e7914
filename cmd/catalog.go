package cmd

import (
	"encoding/json"

	"video-tutor/work-flows/catalog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List subjects and lessons",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(cat.Subjects)
			}

			cyan := color.New(color.FgCyan, color.Bold)
			yellow := color.New(color.FgYellow)
			for _, name := range cat.SubjectNames() {
				slug, _ := cat.SlugFor(name)
				cyan.Fprintf(out, "%s (%s)\n", cat.Label(name), slug)
				for _, lesson := range cat.Lessons(name) {
					yellow.Fprintf(out, "  • %s\n", lesson)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")

	return cmd
}
