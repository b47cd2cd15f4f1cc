// Package config loads the user-level settings stored at ~/.tellnet/config.json:
// the service endpoint used when creating a network and the optional bootstrap
// credentials some deployments require for it. A missing or unreadable file is
// replaced with defaults on first use.
package config
