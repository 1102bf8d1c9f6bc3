package defs

import "io/fs"

// File and directory permissions used for generated content.
const (
	DirPerm  fs.FileMode = 0o755
	FilePerm fs.FileMode = 0o644
)

// DefaultProjectName is used when the operator submits a blank folder name.
const DefaultProjectName = "server"

// PackageJSON is the npm package manifest file.
const PackageJSON = "package.json"

// ProjectDirs lists the subdirectories created inside every generated
// project, regardless of profile.
var ProjectDirs = []string{
	"config",
	"controllers",
	"middlewares",
	"models",
	"routes",
	"utils",
}

// Generated file names referenced outside the template payloads.
const (
	ServerJS = "server.js"
	EnvFile  = ".env"
	ReadmeMD = "README.md"
)
