package version

// Version is the version of the admin client. It is overridden at build time
// with -ldflags "-X github.com/openlumify/openlumify-admin/internal/version.Version=...".
var Version = "0.1.0-dev"
