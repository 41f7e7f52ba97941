package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
)

// GLTFLoader reads .gltf/.glb files from a root directory.
type GLTFLoader struct {
	Root  string
	Cache *Cache
}

// NewGLTFLoader creates a loader rooted at root with its own cache.
func NewGLTFLoader(root string) *GLTFLoader {
	return &GLTFLoader{Root: root, Cache: NewCache()}
}

// Load opens the model and summarizes its meshes and materials.
func (l *GLTFLoader) Load(ctx context.Context, path string, progress ProgressFunc) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full := path
	if l.Root != "" && !filepath.IsAbs(path) {
		full = filepath.Join(l.Root, path)
	}

	if l.Cache != nil {
		if m, ok := l.Cache.Get(full); ok {
			return m, nil
		}
	}

	info, err := os.Stat(full)
	if err != nil {
		return nil, err
	}
	total := info.Size()
	if progress != nil {
		progress(0, total)
	}

	doc, err := gltf.Open(full)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", full, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// External buffers count towards the download size; embedded ones are
	// already part of the file.
	for _, b := range doc.Buffers {
		if b.URI != "" && !strings.HasPrefix(b.URI, "data:") {
			total += int64(b.ByteLength)
		}
	}

	m := &Model{
		Path:   full,
		Meshes: len(doc.Meshes),
		Bytes:  total,
	}
	for _, mat := range doc.Materials {
		if mat == nil {
			continue
		}
		m.Materials = append(m.Materials, Material{
			Name:     mat.Name,
			Textured: mat.PBRMetallicRoughness != nil && mat.PBRMetallicRoughness.BaseColorTexture != nil,
			Emissive: mat.EmissiveTexture != nil,
		})
	}

	if progress != nil {
		progress(total, total)
	}
	if l.Cache != nil {
		l.Cache.Set(full, m)
	}
	return m, nil
}
