package gh

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/github"
	"k8s.io/klog/v2"
)

// RetestConfig controls one retest sweep over a repository's open pull
// requests.
type RetestConfig struct {
	Owner string
	Repo  string

	// RequiredLabel must be set on a pull request before it is
	// considered; ExemptLabel excludes it outright.
	RequiredLabel string
	ExemptLabel   string

	// RetryLimit caps how often a single failed context is retested on
	// one pull request.
	RetryLimit int

	// RequiredApprovals is the minimum number of APPROVED reviews.
	RequiredApprovals int
}

// Retest scans the open pull requests carrying the required label and
// re-triggers failed CI contexts by commenting "/retest <context>".
// A pull request behind its base branch is rebased via mergify instead.
// Only the first pull request with failures is handled per run, to
// avoid retesting several pull requests at the same time.
func (c *Client) Retest(ctx context.Context, cfg RetestConfig) error {
	prs, _, err := c.gh.PullRequests.List(ctx, cfg.Owner, cfg.Repo, &github.PullRequestListOptions{})
	if err != nil {
		return fmt.Errorf("list pull requests: %w", err)
	}
	for _, pr := range prs {
		if pr.GetState() != "open" {
			continue
		}
		prNumber := pr.GetNumber()
		klog.Infof("PR %d %q is open", prNumber, pr.GetTitle())
		for _, label := range pr.Labels {
			if strings.EqualFold(cfg.ExemptLabel, label.GetName()) {
				continue
			}
			if !strings.EqualFold(cfg.RequiredLabel, label.GetName()) {
				continue
			}
			if !c.hasRequiredApprovals(ctx, cfg, prNumber) {
				continue
			}

			klog.Infof("checking statuses of PR %d with label %s", prNumber, label.GetName())
			statuses, _, err := c.gh.Repositories.ListStatuses(ctx, cfg.Owner, cfg.Repo, pr.GetHead().GetSHA(), &github.ListOptions{})
			if err != nil {
				klog.Errorf("failed to list statuses of PR %d: %v", prNumber, err)
				continue
			}

			failedTestFound := false
			for _, status := range latestStatuses(statuses) {
				klog.Infof("found context %s with status %s", status.GetContext(), status.GetState())
				if status.GetState() != "failed" && status.GetState() != "failure" {
					continue
				}
				failedTestFound = true

				// a PR behind its base branch gets rebased, not retested
				if pr.GetMergeableState() == "BEHIND" {
					if err := c.comment(ctx, cfg, prNumber, "@mergifyio rebase"); err != nil {
						klog.Errorf("failed to create comment on PR %d: %v", prNumber, err)
					}
					break
				}

				msg := fmt.Sprintf("/retest %s", status.GetContext())
				reached, err := c.retestLimitReached(ctx, cfg, prNumber, msg)
				if err != nil {
					klog.Errorf("failed to check retest limit of PR %d: %v", prNumber, err)
					continue
				}
				if reached {
					klog.Infof("PR %d: %q reached the maximum of %d attempts, skipping retest",
						prNumber, status.GetContext(), cfg.RetryLimit)
					continue
				}

				if err := c.comment(ctx, cfg, prNumber, msg); err != nil {
					klog.Errorf("failed to create comment on PR %d: %v", prNumber, err)
					continue
				}
				logMsg := fmt.Sprintf("@%s %q test failed. Logs are available at [location](%s) for debugging",
					pr.GetUser().GetLogin(), status.GetContext(), status.GetTargetURL())
				if err := c.comment(ctx, cfg, prNumber, logMsg); err != nil {
					klog.Errorf("failed to create comment on PR %d: %v", prNumber, err)
					continue
				}
			}

			if failedTestFound {
				// requeue so mergify adds the PR back into its queue
				if err := c.comment(ctx, cfg, prNumber, "@Mergifyio requeue"); err != nil {
					klog.Errorf("failed to create comment on PR %d: %v", prNumber, err)
				}
				break
			}
		}
	}
	return nil
}

// hasRequiredApprovals reports whether the pull request has enough
// APPROVED reviews.
func (c *Client) hasRequiredApprovals(ctx context.Context, cfg RetestConfig, prNumber int) bool {
	// the default page size of 30 reviews is too small sometimes
	opts := github.ListOptions{PerPage: 100}
	reviews, _, err := c.gh.PullRequests.ListReviews(ctx, cfg.Owner, cfg.Repo, prNumber, &opts)
	if err != nil {
		klog.Errorf("failed to list reviews of PR %d: %v", prNumber, err)
		return false
	}
	approved := 0
	for _, review := range reviews {
		if review.GetState() == "APPROVED" {
			approved++
		}
	}
	if approved < cfg.RequiredApprovals {
		klog.Infof("PR %d has %d approved reviews but requires %d", prNumber, approved, cfg.RequiredApprovals)
		return false
	}
	return true
}

// retestLimitReached counts how often the exact retest comment was
// already posted on the pull request.
func (c *Client) retestLimitReached(ctx context.Context, cfg RetestConfig, prNumber int, msg string) (bool, error) {
	comments, _, err := c.gh.Issues.ListComments(ctx, cfg.Owner, cfg.Repo, prNumber, &github.IssueListCommentsOptions{})
	if err != nil {
		return false, err
	}
	count := 0
	for _, comment := range comments {
		if comment.GetBody() == msg {
			count++
		}
	}
	klog.Infof("found %d retries, %d remaining", count, cfg.RetryLimit-count)
	return count >= cfg.RetryLimit, nil
}

func (c *Client) comment(ctx context.Context, cfg RetestConfig, prNumber int, body string) error {
	comment := &github.IssueComment{Body: github.String(body)}
	_, _, err := c.gh.Issues.CreateComment(ctx, cfg.Owner, cfg.Repo, prNumber, comment)
	return err
}

// latestStatuses deduplicates a raw status list, which may carry
// several entries per context, keeping only the most recently updated
// status of each.
func latestStatuses(raw []*github.RepoStatus) []*github.RepoStatus {
	byContext := make(map[string]*github.RepoStatus)
	for _, status := range raw {
		current, ok := byContext[status.GetContext()]
		if !ok || status.GetUpdatedAt().After(current.GetUpdatedAt()) {
			byContext[status.GetContext()] = status
		}
	}
	statuses := make([]*github.RepoStatus, 0, len(byContext))
	for _, status := range byContext {
		statuses = append(statuses, status)
	}
	return statuses
}
