package trace

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"k8s.io/klog/v2"
)

// Result is the outcome of one consistency check. Only OK is projected
// into the report; Reason carries the diagnostic detail for debug logs.
type Result struct {
	OK     bool
	Reason string
}

var passed = Result{OK: true}

func failed(format string, args ...any) Result {
	return Result{Reason: fmt.Sprintf(format, args...)}
}

// radosNamespace returns the rados namespace scoping the csi omap
// objects. RBD omaps live in the pool default namespace, cephfs omaps
// in "csi".
func radosNamespace(rbd bool) string {
	if rbd {
		return ""
	}
	return "csi"
}

// checkPVNameInOMap is the forward lookup: the csi.volumes.default omap
// must map csi.volume.<pvName> to the image UUID.
func (t *Tracer) checkPVNameInOMap(ctx context.Context, uuid, pvName, pool string, rbd bool) Result {
	out, err := t.ceph.GetOMapValue(ctx, pool, radosNamespace(rbd), "csi.volumes.default", "csi.volume."+pvName)
	if err != nil {
		return failed("forward omap lookup for %s: %v", pvName, err)
	}
	got := ParseOMapValue(out)
	if got != uuid {
		return failed("expected image id %s, found %s in omap", uuid, got)
	}
	return passed
}

// checkImageUUIDInOMap is the reverse lookup: the per-image omap object
// csi.volume.<uuid> must record the PV name under csi.volname.
func (t *Tracer) checkImageUUIDInOMap(ctx context.Context, uuid, pvName, pool string, rbd bool) Result {
	out, err := t.ceph.GetOMapValue(ctx, pool, radosNamespace(rbd), "csi.volume."+uuid, "csi.volname")
	if err != nil {
		return failed("reverse omap lookup for %s: %v", uuid, err)
	}
	got := ParseOMapValue(out)
	if got != pvName {
		return failed("expected pv name %s, found %s in omap", pvName, got)
	}
	return passed
}

// checkImageInCluster reports whether the RBD image actually exists.
func (t *Tracer) checkImageInCluster(ctx context.Context, pool, image string) Result {
	out, err := t.ceph.ImageInfo(ctx, pool, image)
	if err != nil {
		return failed("rbd info %s/%s: %v", pool, image, err)
	}
	if strings.Contains(out, "No such file or directory") {
		return failed("image %s/%s not found in cluster", pool, image)
	}
	return passed
}

// checkSubvolumeInCluster reports whether the cephfs subvolume exists.
// Resolving the subvolume group consults the ceph-csi configmap; a
// malformed configmap is fatal for the whole run.
func (t *Tracer) checkSubvolumeInCluster(ctx context.Context, fs, name string) (Result, error) {
	group, err := t.subvolumeGroup(ctx)
	if err != nil {
		return Result{}, err
	}
	out, err := t.ceph.SubvolumePath(ctx, fs, name, group)
	if err != nil {
		return failed("subvolume getpath %s/%s: %v", fs, name, err), nil
	}
	if strings.Contains(out, "Error") {
		return failed("subvolume %s not found in cluster: %s", name, strings.TrimSpace(out)), nil
	}
	return passed, nil
}

// poolName resolves the backend pool for a volume handle. RBD handles
// carry a numeric pool id that is matched against the cluster pool
// listing; cephfs volumes live in the metadata pool of the filesystem
// (a single-filesystem backend is assumed). Fails closed to "".
func (t *Tracer) poolName(ctx context.Context, handle string, rbd bool) string {
	if !rbd {
		filesystems, err := t.ceph.ListFilesystems(ctx)
		if err != nil {
			klog.V(1).Infof("failed to list filesystems: %v", err)
			return ""
		}
		if len(filesystems) == 0 {
			return ""
		}
		return filesystems[0].MetadataPool
	}

	token, ok := poolIDToken(handle, t.cfg.RookNamespace)
	if !ok {
		klog.V(1).Infof("pool id not in the proper format: %s", handle)
		return ""
	}
	id, err := strconv.Atoi(token)
	if err != nil {
		klog.V(1).Infof("pool id %q is not numeric: %v", token, err)
		return ""
	}
	pools, err := t.ceph.ListPools(ctx)
	if err != nil {
		klog.V(1).Infof("failed to list pools: %v", err)
		return ""
	}
	for _, pool := range pools {
		if pool.Number == id {
			return pool.Name
		}
	}
	return ""
}
