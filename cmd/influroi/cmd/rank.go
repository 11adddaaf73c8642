package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	rankPolicy string
	rankLimit  int
)

var rankCmd = &cobra.Command{
	Use:   "rank <project-id>",
	Short: "코호트 순위 출력",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := bootstrap(ctx, "influroi-cli")
		if err != nil {
			return err
		}
		defer a.Close()

		ranking, err := a.Service.Rankings(ctx, args[0], rankPolicy)
		if err != nil {
			return err
		}

		fmt.Printf("project %s · policy %s · %d channels · avg %.2f\n",
			ranking.ProjectID, ranking.Policy, ranking.TotalCount, ranking.Stats.AvgTotalScore)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RANK\tGRADE\tSCORE\tRAW\tCHANNEL\tTITLE")
		for i, y := range ranking.Youtubers {
			if rankLimit > 0 && i >= rankLimit {
				break
			}
			mark := ""
			if y.Fallback {
				mark = " *"
			}
			fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f%s\t%s\t%s\n",
				y.Rank, y.Grade, y.TotalScore, y.RawScore, mark, y.ChannelID, y.Title)
		}
		return w.Flush()
	},
}

func init() {
	rankCmd.Flags().StringVar(&rankPolicy, "policy", "", "grading policy: curve | percentile | absolute (default SCORING_DEFAULT_POLICY)")
	rankCmd.Flags().IntVar(&rankLimit, "limit", 0, "print only the top N (0 = all)")
}
