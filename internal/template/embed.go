package template

import (
	"embed"
	"io/fs"
)

//go:embed all:payloads profiles.yaml
var embedded embed.FS

// Payloads returns the embedded template payload filesystem, rooted at the
// payloads directory.
func Payloads() (fs.FS, error) {
	return fs.Sub(embedded, "payloads")
}

// ProfileManifest returns the raw embedded profiles.yaml content.
func ProfileManifest() ([]byte, error) {
	return embedded.ReadFile("profiles.yaml")
}
