package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"cephcsi-tools/src/cli"
	"cephcsi-tools/src/version"
)

func TestRootHelpShowsUsage(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"--help"})

	if _, err := cmd.ExecuteC(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o := out.String()
	if !strings.Contains(o, "Usage:") || !strings.Contains(o, "cephcsi-tools") {
		t.Fatalf("help output missing expected content; got: %s", o)
	}
	for _, sub := range []string{"tracevol", "github-labels", "patch-release", "retest", "version"} {
		if !strings.Contains(o, sub) {
			t.Fatalf("help output missing subcommand %q; got: %s", sub, o)
		}
	}
}

func TestVersionCmd(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"version"})

	if _, err := cmd.ExecuteC(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != version.Version {
		t.Fatalf("version output %q, want %q", got, version.Version)
	}
}

func TestTraceRejectsUnsupportedCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"tracevol", "--command", "minikube"})

	_, err := cmd.ExecuteC()
	if err == nil {
		t.Fatal("expected an error for an unsupported command name")
	}
	if !strings.Contains(err.Error(), "minikube command not supported") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLabelsRequiresID(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"github-labels"})

	if _, err := cmd.ExecuteC(); err == nil {
		t.Fatal("expected an error when --id is missing")
	}
}

func TestRetestRequiresToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"retest", "--repository", "ceph/ceph-csi", "--required-label", "ci/retest"})

	_, err := cmd.ExecuteC()
	if err == nil || !strings.Contains(err.Error(), "GITHUB_TOKEN is not set") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRetestRequiresLabel(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "sekrit")

	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"retest", "--repository", "ceph/ceph-csi"})

	_, err := cmd.ExecuteC()
	if err == nil || !strings.Contains(err.Error(), "required-label is not set") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRetestRejectsMalformedRepository(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "sekrit")

	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd(&out, &errOut)
	cmd.SetArgs([]string{"retest", "--repository", "ceph-csi", "--required-label", "ci/retest"})

	_, err := cmd.ExecuteC()
	if err == nil || !strings.Contains(err.Error(), "owner/repo") {
		t.Fatalf("unexpected error: %v", err)
	}
}
