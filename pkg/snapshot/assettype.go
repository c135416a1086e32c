package snapshot

import (
	"path"
	"strings"
)

// AssetType is the kind of asset a path holds, decided by its extension.
type AssetType int

const (
	Prefab AssetType = iota
	Texture
	Material
	Folder
	Scene
	Script
	Animation
	Unsupported
)

var assetTypeNames = map[AssetType]string{
	Prefab:      "prefab",
	Texture:     "texture",
	Material:    "material",
	Folder:      "folder",
	Scene:       "scene",
	Script:      "script",
	Animation:   "animation",
	Unsupported: "unsupported",
}

var extensionTypes = map[string]AssetType{
	".prefab": Prefab,
	".png":    Texture,
	".jpg":    Texture,
	".jpeg":   Texture,
	".bmp":    Texture,
	".tga":    Texture,
	".mat":    Material,
	".unity":  Scene,
	".cs":     Script,
	".txt":    Script,
	".json":   Script,
	".xml":    Script,
	".anim":   Animation,
}

// String returns the lower-case name of the type.
func (t AssetType) String() string {
	if name, ok := assetTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Classify returns the asset type for a repository path. Extensions are
// matched case-insensitively; a trailing slash marks a folder.
func Classify(p string) AssetType {
	if p == "" {
		return Unsupported
	}
	p = strings.ReplaceAll(p, "\\", "/")
	if strings.HasSuffix(p, "/") {
		return Folder
	}
	if t, ok := extensionTypes[strings.ToLower(path.Ext(p))]; ok {
		return t
	}
	return Unsupported
}

// RequiresRemap reports whether snapshots of this type must be written with
// a neutral extension so surrounding tooling does not treat them as live source.
func (t AssetType) RequiresRemap() bool {
	return t == Script
}

// SupportCondition describes what a front-end can offer for an asset type.
type SupportCondition int

const (
	SupportedWithPreviewAndComparison SupportCondition = iota
	SupportedWithPreview
	SupportedHistory
	NotSupported
)

func (c SupportCondition) String() string {
	switch c {
	case SupportedWithPreviewAndComparison:
		return "preview and comparison"
	case SupportedWithPreview:
		return "preview"
	case SupportedHistory:
		return "history only"
	default:
		return "not supported"
	}
}

// CanPreview reports whether a snapshot of the asset can be previewed.
func (c SupportCondition) CanPreview() bool {
	return c == SupportedWithPreview || c == SupportedWithPreviewAndComparison
}

// Support returns the support condition for the type. History is available
// for every tracked file. Only serialized object graphs can be compared;
// textures and scripts can be extracted for preview.
func (t AssetType) Support() SupportCondition {
	switch t {
	case Prefab, Material, Scene, Animation:
		return SupportedWithPreviewAndComparison
	case Texture, Script:
		return SupportedWithPreview
	default:
		return SupportedHistory
	}
}

// CanCompare reports whether object graphs of the asset can be compared.
func (c SupportCondition) CanCompare() bool {
	return c == SupportedWithPreviewAndComparison
}
