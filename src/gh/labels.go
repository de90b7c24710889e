package gh

import (
	"context"
	"errors"
	"fmt"
)

// ErrLabelNotSet reports that the requested label is missing from the
// issue or pull request. The CLI maps it to exit code 2 so CI jobs can
// branch on it.
var ErrLabelNotSet = errors.New("label not set")

// IssueLabels returns the label names of a ceph-csi issue or pull
// request. GitHub serves both through the issues endpoint.
func (c *Client) IssueLabels(ctx context.Context, id int) ([]string, error) {
	labels, _, err := c.gh.Issues.ListLabelsByIssue(ctx, "ceph", "ceph-csi", id, nil)
	if err != nil {
		return nil, fmt.Errorf("list labels of issue %d: %w", id, err)
	}
	names := make([]string, 0, len(labels))
	for _, label := range labels {
		names = append(names, label.GetName())
	}
	return names, nil
}
