// Package pipeline implements the markdown-to-HTML path shared by the HTML
// and Chromium backends:
//   - markdown preprocessing (line endings, blank lines, ==highlight==)
//   - markdown to HTML fragments via goldmark with chroma highlighting
//   - wrapping the fragment in the document template with its stylesheet
//   - rewriting relative image and link paths to file:// URLs for Chrome
//
// The in-process PDF backend only uses the preprocessing stage.
package pipeline
