package static

import (
	"embed"
	"io/fs"
)

//go:embed index.html
var embedded embed.FS

// Index returns the dashboard page.
func Index() ([]byte, error) {
	return fs.ReadFile(embedded, "index.html")
}
