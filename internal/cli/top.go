package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/classkit/wordcloud/pkg/cloud"
)

// newTopCmd creates the top command for browsing word frequencies.
func newTopCmd() *cobra.Command {
	var (
		limit int
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "top [file]",
		Short: "Browse aggregated word frequencies",
		Long: `Top aggregates a submissions file and shows the ranked word table.
By default it opens an interactive view; --plain prints the table and exits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subs, err := readSubmissions(args[0])
			if err != nil {
				return err
			}
			words := cloud.Aggregate(subs)
			if limit > 0 && limit < len(words) {
				words = words[:limit]
			}

			if plain {
				printWordTable(words)
				return nil
			}

			model := newWordTableModel(words)
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the top N words")
	cmd.Flags().BoolVar(&plain, "plain", false, "print the table without the interactive view")

	return cmd
}

// printWordTable prints the ranked words without the interactive view.
func printWordTable(words []cloud.AggregatedWord) {
	if len(words) == 0 {
		printInfo("No words submitted")
		return
	}
	for i, w := range words {
		fmt.Println(formatWordRow(i, w))
	}
}
