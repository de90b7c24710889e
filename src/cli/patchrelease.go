package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cephcsi-tools/src/gh"
)

func newPatchReleaseCmd(stdout io.Writer) *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "patch-release",
		Short: "Find the latest kubernetes patch release for a major version",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			releases, err := gh.New(ctx, os.Getenv("GITHUB_API_TOKEN")).KubernetesReleases(ctx)
			if err != nil {
				return err
			}
			if version == "" {
				for _, release := range releases {
					fmt.Fprintln(stdout, release)
				}
				return nil
			}
			release, ok := gh.LatestPatchRelease(releases, version)
			if !ok {
				return fmt.Errorf("no patch release found for %s", version)
			}
			fmt.Fprintln(stdout, release)
			return nil
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "major version to find the patch release for (e.g. v1.19)")

	return cmd
}
