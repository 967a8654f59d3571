// Package dom provides a small in-memory SVG document model.
//
// It covers the host surface the reveal engine needs from a rendering
// document: parsing and serializing SVG, querying shape descendants in
// document order, reading and writing inline style declarations, CSS
// style sheets backed by <style> elements, computed style lookups, and
// per-element event listeners.
//
// # Parsing
//
//	doc, err := dom.Parse(r)
//	if err != nil {
//	    return err
//	}
//	for _, el := range doc.Root.QueryAll(dom.ShapeTags...) {
//	    el.Style().SetProperty("fill", "none")
//	}
//	return doc.Encode(w)
//
// # Concurrency
//
// Tree structure (children, parents) must be mutated from a single
// goroutine. Attribute, style and listener state on an Element is guarded
// by a mutex so that deferred style restores from timers are safe.
package dom
