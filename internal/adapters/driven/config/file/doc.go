// Package file provides the file-based settings adapter. Settings are
// stored as TOML in commserver.toml under the config directory; secrets
// never land here, they stay in the environment.
package file
