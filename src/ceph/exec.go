package ceph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"k8s.io/klog/v2"
)

// ExecConn runs ceph commands as subprocesses, either directly on the
// local host or wrapped in `kubectl exec` against the rook toolbox pod.
type ExecConn struct {
	// Command is the kubernetes CLI used for the toolbox wrapper,
	// "kubectl" or "oc".
	Command    string
	Kubeconfig string

	// RookNamespace is where the toolbox pod lives.
	RookNamespace string

	// Credentials passed to every ceph command when UserKey is set.
	UserID  string
	UserKey string

	// Toolbox selects the `kubectl exec` wrapper. When false the ceph
	// binaries must be available locally.
	Toolbox bool

	// ToolboxPod resolves the toolbox pod name. Only consulted when
	// Toolbox is true.
	ToolboxPod func(ctx context.Context) (string, error)

	// Runner executes the assembled argv. Defaults to os/exec with
	// combined output; tests replace it.
	Runner func(ctx context.Context, argv []string) ([]byte, error)
}

func (c *ExecConn) ListPools(ctx context.Context) ([]Pool, error) {
	out, err := c.invoke(ctx, []string{"ceph", "osd", "lspools", "--format=json"})
	if err != nil {
		return nil, err
	}
	var pools []Pool
	if err := json.Unmarshal(out, &pools); err != nil {
		return nil, fmt.Errorf("parse pool listing: %w", err)
	}
	return pools, nil
}

func (c *ExecConn) ListFilesystems(ctx context.Context) ([]Filesystem, error) {
	out, err := c.invoke(ctx, []string{"ceph", "fs", "ls", "--format=json"})
	if err != nil {
		return nil, err
	}
	var filesystems []Filesystem
	if err := json.Unmarshal(out, &filesystems); err != nil {
		return nil, fmt.Errorf("parse filesystem listing: %w", err)
	}
	return filesystems, nil
}

func (c *ExecConn) GetOMapValue(ctx context.Context, pool, radosNamespace, object, key string) (string, error) {
	argv := []string{"rados", "getomapval", object, key, "--pool", pool}
	if radosNamespace != "" {
		argv = append(argv, "--namespace", radosNamespace)
	}
	out, err := c.invoke(ctx, argv)
	return string(out), err
}

func (c *ExecConn) ImageInfo(ctx context.Context, pool, image string) (string, error) {
	out, err := c.invoke(ctx, []string{"rbd", "info", image, "--pool", pool})
	return string(out), err
}

func (c *ExecConn) SubvolumePath(ctx context.Context, fs, name, group string) (string, error) {
	out, err := c.invoke(ctx, []string{"ceph", "fs", "subvolume", "getpath", fs, name, group})
	return string(out), err
}

func (c *ExecConn) invoke(ctx context.Context, argv []string) ([]byte, error) {
	full, err := c.commandLine(ctx, argv)
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("running: %s", strings.Join(full, " "))
	run := c.Runner
	if run == nil {
		run = runCommand
	}
	out, err := run(ctx, full)
	if err != nil {
		return out, fmt.Errorf("%s: %w: %s", argv[0], err, bytes.TrimSpace(out))
	}
	return out, nil
}

// commandLine assembles the final argv: the ceph command, credentials,
// and the toolbox exec prefix when the toolbox is in use.
func (c *ExecConn) commandLine(ctx context.Context, argv []string) ([]string, error) {
	if c.UserKey != "" {
		argv = append(argv, "--id", c.UserID, "--key", c.UserKey)
	}
	if !c.Toolbox {
		return argv, nil
	}
	pod, err := c.ToolboxPod(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve toolbox pod: %w", err)
	}
	prefix := []string{c.Command}
	if c.Kubeconfig != "" {
		// oc spells the kubeconfig flag differently
		if c.Command == "oc" {
			prefix = append(prefix, "--config", c.Kubeconfig)
		} else {
			prefix = append(prefix, "--kubeconfig", c.Kubeconfig)
		}
	}
	prefix = append(prefix, "exec", pod, "-n", c.RookNamespace, "--")
	return append(prefix, argv...), nil
}

func runCommand(ctx context.Context, argv []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	return cmd.CombinedOutput()
}
