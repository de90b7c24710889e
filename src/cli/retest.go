package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cephcsi-tools/src/gh"
)

func newRetestCmd() *cobra.Command {
	var (
		repository string
		cfg        gh.RetestConfig
	)

	cmd := &cobra.Command{
		Use:   "retest",
		Short: "Re-trigger failed CI runs on labelled pull requests",
		Long: "Scans the repository's open pull requests for ones carrying the\n" +
			"required label and enough approvals, and comments \"/retest <context>\"\n" +
			"on failed CI contexts; pull requests behind their base branch are\n" +
			"rebased via mergify instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			token := os.Getenv("GITHUB_TOKEN")
			if token == "" {
				return errors.New("GITHUB_TOKEN is not set")
			}
			if cfg.RequiredLabel == "" {
				return errors.New("required-label is not set")
			}
			parts := strings.Split(repository, "/")
			if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
				return fmt.Errorf("repository %q is not in owner/repo form", repository)
			}
			cfg.Owner, cfg.Repo = parts[0], parts[1]

			ctx := cmd.Context()
			return gh.New(ctx, token).Retest(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&repository, "repository", os.Getenv("GITHUB_REPOSITORY"), "repository in owner/repo form")
	cmd.Flags().StringVar(&cfg.RequiredLabel, "required-label", "", "label a pull request must carry to be retested")
	cmd.Flags().StringVar(&cfg.ExemptLabel, "exempt-label", "", "label that excludes a pull request from retesting")
	cmd.Flags().IntVar(&cfg.RetryLimit, "max-retry", 5, "maximum retest attempts per failed context")
	cmd.Flags().IntVar(&cfg.RequiredApprovals, "required-approve-count", 2, "minimum number of approved reviews")

	return cmd
}
