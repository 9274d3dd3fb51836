// Package themes loads button themes from YAML and hot-reloads them.
// It ships an embedded theme file used when no custom file is configured.
package themes
