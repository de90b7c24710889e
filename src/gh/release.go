package gh

import (
	"context"
	"fmt"
	"strings"
)

// KubernetesReleases returns the kubernetes release names, newest first
// (the order GitHub serves them in).
func (c *Client) KubernetesReleases(ctx context.Context) ([]string, error) {
	releases, _, err := c.gh.Repositories.ListReleases(ctx, "kubernetes", "kubernetes", nil)
	if err != nil {
		return nil, fmt.Errorf("list kubernetes releases: %w", err)
	}
	names := make([]string, 0, len(releases))
	for _, release := range releases {
		names = append(names, release.GetName())
	}
	return names, nil
}

// LatestPatchRelease picks the most recent patch release for a major
// version like "v1.19" from a newest-first release list. A version that
// already carries a patch number is returned unchanged, which lets CI
// jobs pin an exact release.
func LatestPatchRelease(releases []string, version string) (string, bool) {
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if strings.Count(version, ".") >= 2 {
		return version, true
	}
	for _, release := range releases {
		if strings.HasPrefix(release, version+".") {
			return release, true
		}
	}
	return "", false
}
