package ceph

import (
	"context"
	"fmt"
)

// FakeConn is an in-memory implementation for unit tests. Map keys are
// slash-joined lookup paths, values the raw output the real commands
// would produce.
type FakeConn struct {
	Pools       []Pool
	Filesystems []Filesystem

	// OMap is keyed by "<pool>/<radosNamespace>/<object>/<key>".
	OMap map[string]string
	// Images is keyed by "<pool>/<image>".
	Images map[string]string
	// Subvolumes is keyed by "<fs>/<group>/<name>".
	Subvolumes map[string]string

	// Err, when set, fails every call.
	Err error
}

func NewFake() *FakeConn {
	return &FakeConn{
		OMap:       map[string]string{},
		Images:     map[string]string{},
		Subvolumes: map[string]string{},
	}
}

func (f *FakeConn) ListPools(ctx context.Context) ([]Pool, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Pools, nil
}

func (f *FakeConn) ListFilesystems(ctx context.Context) ([]Filesystem, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Filesystems, nil
}

func (f *FakeConn) GetOMapValue(ctx context.Context, pool, radosNamespace, object, key string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	k := pool + "/" + radosNamespace + "/" + object + "/" + key
	out, ok := f.OMap[k]
	if !ok {
		return "", fmt.Errorf("rados: no omap value for %s", k)
	}
	return out, nil
}

func (f *FakeConn) ImageInfo(ctx context.Context, pool, image string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	out, ok := f.Images[pool+"/"+image]
	if !ok {
		return "", fmt.Errorf("rbd: image %s/%s not configured in fake", pool, image)
	}
	return out, nil
}

func (f *FakeConn) SubvolumePath(ctx context.Context, fs, name, group string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	out, ok := f.Subvolumes[fs+"/"+group+"/"+name]
	if !ok {
		return "", fmt.Errorf("ceph: subvolume %s/%s/%s not configured in fake", fs, group, name)
	}
	return out, nil
}
