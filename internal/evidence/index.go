package evidence

import (
	"context"
	"sort"
	"sync"

	"github.com/mholloway/matchbook/internal/common"
	"github.com/mholloway/matchbook/internal/document"
	"github.com/mholloway/matchbook/internal/model"
	"github.com/schollz/progressbar/v3"
)

// Index maps document paths to their extracted evidence. It is built once
// per run, frozen, and read-only during matching. Documents that fail
// extraction or yield no evidence are absent.
type Index struct {
	docs   map[string]*model.EvidenceDocument
	sorted []*model.EvidenceDocument
}

// BuildOptions configures index construction.
type BuildOptions struct {
	Workers      int
	ShowProgress bool
}

// DefaultBuildOptions returns the default index build configuration.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{Workers: 4}
}

// BuildIndex extracts evidence from every document and assembles the index.
// Extraction is fanned out across a worker pool; the result is a commutative
// union of per-document evidence, so the index is identical regardless of
// completion order. Extraction failures are logged and the document is
// skipped.
func BuildIndex(ctx context.Context, paths []string, extractor document.Extractor, opts BuildOptions) *Index {
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	var bar *progressbar.ProgressBar
	if opts.ShowProgress {
		bar = progressbar.NewOptions(len(paths),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Indexing receipts..."),
		)
	}

	jobs := make(chan string)
	results := make(chan *model.EvidenceDocument)

	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- extractOne(path, extractor)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range paths {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	docs := make(map[string]*model.EvidenceDocument)
	for doc := range results {
		if bar != nil {
			_ = bar.Add(1)
		}
		if doc != nil {
			docs[doc.Path] = doc
		}
	}

	return newIndex(docs)
}

// extractOne returns the evidence for a single document, or nil when the
// document fails extraction or contains none.
func extractOne(path string, extractor document.Extractor) *model.EvidenceDocument {
	text, err := extractor.Text(path)
	if err != nil {
		common.LogError(err, "Skipping unreadable document", common.Fields{"path": path})
		return nil
	}
	if text == "" {
		return nil
	}

	doc := Extract(path, text)
	if doc.Empty() {
		return nil
	}
	return doc
}

func newIndex(docs map[string]*model.EvidenceDocument) *Index {
	sorted := make([]*model.EvidenceDocument, 0, len(docs))
	for _, doc := range docs {
		sorted = append(sorted, doc)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	return &Index{docs: docs, sorted: sorted}
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int {
	return len(idx.docs)
}

// Get returns the evidence for a document path.
func (idx *Index) Get(path string) (*model.EvidenceDocument, bool) {
	doc, ok := idx.docs[path]
	return doc, ok
}

// Documents returns the indexed documents in ascending path order. The
// explicit ordering makes match winners deterministic when several documents
// hold the same amount.
func (idx *Index) Documents() []*model.EvidenceDocument {
	return idx.sorted
}
