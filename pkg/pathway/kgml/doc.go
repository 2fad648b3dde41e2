// Package kgml fetches KEGG pathway definitions and translates them into
// pathway graphs.
//
// KEGG serves pathway topology as KGML, an XML format listing entries
// (compounds, genes, orthologs) with canvas coordinates and reactions with
// substrate/product references. Translation keeps only compound entries as
// metabolite nodes, expands each reaction into substrate x product edges
// (plus mirrored edges for reversible reactions), attaches enzyme labels
// from the gene entries that declare the reaction, and rescales the KEGG
// canvas coordinates into the editor viewport.
//
// The Client caches raw KGML through pkg/cache and retries transient
// failures through pkg/httputil, since the KEGG REST endpoint is
// rate-limited and occasionally flaky.
package kgml
