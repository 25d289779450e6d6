package content

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/h2non/filetype"

	"SocialAutoPoster/models"
	"SocialAutoPoster/utils"
)

// ListImages returns the attachable image files for a posting category,
// sorted by name so the rotation order is stable across runs. Eligibility
// is decided by magic-number detection, not file extension: a stray
// text file dropped into the images directory must never reach the
// vendor APIs.
func ListImages(contentDir string, t models.PostType) []string {
	dir := filepath.Join(contentDir, "images", string(t))

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			utils.Warnf("error reading image directory %s: %v", dir, err)
		}
		return nil
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if isImage(path) {
			images = append(images, path)
		}
	}

	sort.Strings(images)
	return images
}

// ImageAt resolves the image for the current cursor and the cursor value
// to store after a send. With no images the post goes out text-only.
func ImageAt(images []string, index int) (path string, next int) {
	if len(images) == 0 {
		return "", 0
	}
	if index < 0 || index >= len(images) {
		index = 0
	}
	return images[index], (index + 1) % len(images)
}

// isImage sniffs the file's magic numbers. filetype needs at least 262
// bytes; we read 512 to be safe.
func isImage(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		utils.Warnf("error opening image candidate %s: %v", path, err)
		return false
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return false
	}

	return filetype.IsImage(buf[:n])
}
