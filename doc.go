// Package jamdr renders markdown documents to PDF or HTML.
//
// # Backends
//
// Three backends implement [Backend]:
//
//   - [InhouseBackend] lays documents out with its own text measurement and
//     line wrapping and writes the PDF directly. It needs no browser.
//   - [ChromiumBackend] converts markdown to styled HTML and prints it with
//     headless Chrome (go-rod).
//   - [HTMLBackend] stops after templating and returns the HTML page.
//
// # Quick Start
//
//	b, err := jamdr.NewBackend(jamdr.BackendInhouse, jamdr.OutputPDF)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	out, err := b.RenderFiles(ctx, map[string]string{
//	    "notes.md": "# Title\n\nBody",
//	}, "", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("notes.pdf", out["notes.md"], 0644)
//
// # Batches
//
// RenderFiles renders every document of a batch in parallel with a bounded
// worker pool. A document that fails does not stop the others: the returned
// map holds the successful documents and the error joins one [*FileError]
// per failure.
//
// # Configuration
//
// Functional options tune the backends:
//
//	b, err := jamdr.NewInhouseBackend(
//	    jamdr.WithWorkers(4),
//	    jamdr.WithPage(jamdr.PageSettings{Size: jamdr.PageSizeA4}),
//	    jamdr.WithLayout(jamdr.LayoutSettings{HeadingRule: "text", Paginate: true}),
//	    jamdr.WithFontDir("/usr/share/fonts/mydoc"),
//	)
package jamdr
