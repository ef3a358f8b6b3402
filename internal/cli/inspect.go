package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/influencerdeck/influencerdeck/pkg/imagefetch"
	"github.com/influencerdeck/influencerdeck/pkg/io"
	"github.com/influencerdeck/influencerdeck/pkg/record"
	"github.com/influencerdeck/influencerdeck/pkg/slides"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var interests int

	cmd := &cobra.Command{
		Use:   "inspect <input.csv|input.xlsx>",
		Short: "Validate an input file and summarize each record",
		Long: `Inspect reads and validates an input file the same way generate does, then
prints one line per record without writing a deck.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(c.Logger)
			recs, err := io.ImportRecords(args[0])
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Validated %d records", len(recs)))
			printInspect(args[0], recs, interests)
			return nil
		},
	}

	cmd.Flags().IntVar(&interests, "interests", slides.TopInterestCount, "number of top interests to list")
	return cmd
}

func printInspect(path string, recs []*record.Influencer, interests int) {
	fmt.Fprintln(stdout, StyleTitle.Render(path))
	printKeyValue("Records", fmt.Sprint(len(recs)))
	if len(recs) == 0 {
		printWarning("no records; generate would fail")
		return
	}
	printNewline()

	rows := make([][]string, 0, len(recs))
	var warnings []string
	for _, r := range recs {
		yt := "averages"
		if r.YouTube.HasChannel() {
			yt = "channel"
		}
		var top []string
		for _, in := range slides.TopInterests(r.InterestScores[:], interests) {
			top = append(top, in.Name)
		}
		rows = append(rows, []string{
			fmt.Sprint(r.Index),
			r.Name,
			slides.FormatCount(r.Followers),
			yt,
			strings.Join(top, ", "),
		})

		if r.ProfileImage != "" {
			if _, err := imagefetch.ParseURL(r.ProfileImage); err != nil {
				warnings = append(warnings, fmt.Sprintf("record %d (%s): profile picture will be skipped: %v", r.Index, r.Name, err))
			}
		}
		if _, _, ok := slides.Proportions(r.Male, r.Female); !ok {
			warnings = append(warnings, fmt.Sprintf("record %d (%s): gender chart will be skipped", r.Index, r.Name))
		}
		if _, _, ok := slides.Proportions(r.Organisational, r.Individuals); !ok {
			warnings = append(warnings, fmt.Sprintf("record %d (%s): account type chart will be skipped", r.Index, r.Name))
		}
	}
	printTable([]string{"#", "Handle", "Followers", "YouTube", "Top interests"}, rows)
	for _, w := range warnings {
		printWarning("%s", w)
	}
}
