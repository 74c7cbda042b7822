package assets

// AssetResolver prefers assets from a custom directory and falls back to the
// embedded ones when an asset is missing there. Validation and read errors
// from the custom directory are returned as is.
type AssetResolver struct {
	custom   AssetLoader
	embedded AssetLoader
}

var _ AssetLoader = (*AssetResolver)(nil)

// NewAssetResolver returns a resolver. An empty basePath uses only the
// embedded assets.
func NewAssetResolver(basePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if basePath != "" {
		fsl, err := NewFilesystemLoader(basePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsl
	}
	return r, nil
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.load(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.load(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

func (r *AssetResolver) load(fn func(AssetLoader) (string, error)) (string, error) {
	if r.custom != nil {
		content, err := fn(r.custom)
		if err == nil || !isNotFound(err) {
			return content, err
		}
	}
	return fn(r.embedded)
}
