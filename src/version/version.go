package version

// Version is the CLI version. Overridden at build time via
// -ldflags "-X cephcsi-tools/src/version.Version=...".
var Version = "dev"
