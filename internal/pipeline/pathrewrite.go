package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rewritable lists the attributes that may point at local files.
var rewritable = map[atom.Atom]string{
	atom.Img: "src",
	atom.A:   "href",
}

// RewriteRelativePaths turns relative img[src] and a[href] values into
// file:// URLs resolved against sourceDir, so Chrome can load them from a
// temporary file elsewhere. URLs, anchors, absolute paths and paths escaping
// sourceDir are left alone. An empty sourceDir returns the input unchanged.
func RewriteRelativePaths(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlContent, nil
	}
	root, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	doc, fragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}
	rw := pathRewriter{root: filepath.Clean(root)}
	rw.walk(doc)
	return renderHTML(doc, fragment)
}

type pathRewriter struct {
	root string
}

func (rw pathRewriter) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		if key, ok := rewritable[n.DataAtom]; ok {
			for i := range n.Attr {
				if n.Attr[i].Key == key {
					n.Attr[i].Val = rw.rewrite(n.Attr[i].Val)
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rw.walk(c)
	}
}

// rewrite returns the file:// form of ref, or ref itself when it is not a
// local relative path inside the root.
func (rw pathRewriter) rewrite(ref string) string {
	if !isLocalRelative(ref) {
		return ref
	}
	abs := filepath.Join(rw.root, filepath.FromSlash(ref))
	if !rw.contains(abs) {
		return ref
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}

func (rw pathRewriter) contains(abs string) bool {
	rel, err := filepath.Rel(rw.root, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// isLocalRelative reports whether ref is a relative filesystem path.
func isLocalRelative(ref string) bool {
	switch {
	case ref == "", strings.HasPrefix(ref, "#"), strings.HasPrefix(ref, "//"):
		return false
	case filepath.IsAbs(ref) || strings.HasPrefix(ref, "/"):
		return false
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return false
	}
	return true
}

// parseHTML parses a full document or, failing a leading doctype/html tag,
// a body fragment. The bool result reports a fragment.
func parseHTML(content string) (*html.Node, bool, error) {
	head := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, true, nil
}

func renderHTML(doc *html.Node, fragment bool) (string, error) {
	var buf strings.Builder
	if !fragment {
		err := html.Render(&buf, doc)
		return buf.String(), err
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
