package ceph

import "context"

// Pool is one entry of `ceph osd lspools --format=json`.
type Pool struct {
	Number int    `json:"poolnum"`
	Name   string `json:"poolname"`
}

// Filesystem is one entry of `ceph fs ls --format=json`.
type Filesystem struct {
	Name         string `json:"name"`
	MetadataPool string `json:"metadata_pool"`
}

// Conn is a narrow interface over the ceph, rados, and rbd command-line
// tools. Methods that return free text hand back the raw command output;
// interpreting it is the caller's job.
type Conn interface {
	ListPools(ctx context.Context) ([]Pool, error)
	ListFilesystems(ctx context.Context) ([]Filesystem, error)

	// GetOMapValue runs `rados getomapval object key` in the given pool.
	// radosNamespace may be empty. The returned string is the hexdump
	// style output of rados.
	GetOMapValue(ctx context.Context, pool, radosNamespace, object, key string) (string, error)

	// ImageInfo runs `rbd info image` in the given pool.
	ImageInfo(ctx context.Context, pool, image string) (string, error)

	// SubvolumePath runs `ceph fs subvolume getpath`.
	SubvolumePath(ctx context.Context, fs, name, group string) (string, error)
}
