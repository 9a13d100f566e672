package content

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func blogFile(title, date, excerpt string) string {
	return "---\ntitle: " + title + "\ndate: \"" + date + "\"\nexcerpt: " + excerpt + "\n---\n\n# " + title + "\n\nBody of " + title + ".\n"
}

const validProject = `---
title: Vision Pipeline
category: Computer Vision
description: Real-time detection service.
tech: [Python, PyTorch]
year: "2024"
github: https://github.com/example/vision
---
Project body.
`
