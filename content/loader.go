// Package content loads the pre-authored post rotations and their images
// from the repository's content directory:
//
//	content/posts/<type>/posts.yaml
//	content/images/<type>/
package content

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"SocialAutoPoster/models"
)

// LoadPosts reads the rotation file for a posting category.
func LoadPosts(contentDir string, t models.PostType) ([]models.Post, error) {
	path := filepath.Join(contentDir, "posts", string(t), "posts.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s posts: %w", t, err)
	}

	var posts []models.Post
	if err := yaml.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(posts) == 0 {
		return nil, fmt.Errorf("no posts defined in %s", path)
	}

	for i, p := range posts {
		if p.Text == "" {
			return nil, fmt.Errorf("post %d in %s has no text", i, path)
		}
	}

	return posts, nil
}
