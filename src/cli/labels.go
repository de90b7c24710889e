package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cephcsi-tools/src/gh"
)

func newLabelsCmd(stdout io.Writer) *cobra.Command {
	var (
		id       int
		hasLabel string
	)

	cmd := &cobra.Command{
		Use:   "github-labels",
		Short: "Fetch the labels of a ceph-csi issue or pull request",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			names, err := gh.New(ctx, os.Getenv("GITHUB_API_TOKEN")).IssueLabels(ctx, id)
			if err != nil {
				return err
			}
			if hasLabel != "" {
				for _, name := range names {
					if name == hasLabel {
						return nil
					}
				}
				return fmt.Errorf("%w: %s", gh.ErrLabelNotSet, hasLabel)
			}
			for _, name := range names {
				fmt.Fprintln(stdout, name)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "number of the issue or pull request")
	_ = cmd.MarkFlagRequired("id")
	cmd.Flags().StringVar(&hasLabel, "has-label", "", "exit 0 if the label is set, 2 if not")

	return cmd
}
