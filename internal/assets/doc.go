// Package assets provides the stylesheets and HTML document templates used by
// the HTML and Chromium backends.
//
// Loaders:
//
//	AssetLoader (interface)
//	    ├── EmbeddedLoader    - compiled-in styles and templates
//	    ├── FilesystemLoader  - {basePath}/styles/{name}.css, {basePath}/templates/{name}.html
//	    └── AssetResolver     - filesystem first, embedded on not-found
//
// Asset names are bare file stems. Names with separators or dots are
// rejected, and the filesystem loader resolves symlinks and refuses paths
// that leave basePath.
package assets
