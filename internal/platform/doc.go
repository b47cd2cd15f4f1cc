// Package platform provides cross-platform filesystem operations: permission
// management that is a no-op on Windows, and whole-file replacement through a
// temporary sibling file and rename so readers never see a partial write.
package platform
