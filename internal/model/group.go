package model

// TaxonGroup is the ordered list of audio URLs collected for one taxon.
//
// URLs keep dataset scan order; duplicates are kept.
type TaxonGroup struct {
	Taxon string
	URLs  []string
}

// TaxonGroups is an ordered collection of groups keyed by taxon name.
//
// Iteration order is the order in which each taxon was first seen.
type TaxonGroups struct {
	index  map[string]int
	groups []*TaxonGroup
}

// NewTaxonGroups creates an empty collection.
func NewTaxonGroups() *TaxonGroups {
	return &TaxonGroups{index: make(map[string]int)}
}

// Add appends url to the group for taxon, creating the group on first use.
func (g *TaxonGroups) Add(taxon, url string) {
	if idx, ok := g.index[taxon]; ok {
		g.groups[idx].URLs = append(g.groups[idx].URLs, url)
		return
	}
	g.index[taxon] = len(g.groups)
	g.groups = append(g.groups, &TaxonGroup{Taxon: taxon, URLs: []string{url}})
}

// Get returns the group for taxon, if present.
func (g *TaxonGroups) Get(taxon string) (*TaxonGroup, bool) {
	idx, ok := g.index[taxon]
	if !ok {
		return nil, false
	}
	return g.groups[idx], true
}

// Len returns the number of groups.
func (g *TaxonGroups) Len() int {
	return len(g.groups)
}

// All returns the groups in first-seen order.
func (g *TaxonGroups) All() []*TaxonGroup {
	return g.groups
}

// TotalURLs returns the number of URLs across all groups.
func (g *TaxonGroups) TotalURLs() int {
	n := 0
	for _, group := range g.groups {
		n += len(group.URLs)
	}
	return n
}

// Filter removes every group holding fewer than minCount URLs.
func (g *TaxonGroups) Filter(minCount int) {
	kept := g.groups[:0]
	index := make(map[string]int, len(g.groups))
	for _, group := range g.groups {
		if len(group.URLs) < minCount {
			continue
		}
		index[group.Taxon] = len(kept)
		kept = append(kept, group)
	}
	for i := len(kept); i < len(g.groups); i++ {
		g.groups[i] = nil
	}
	g.groups = kept
	g.index = index
}

// GroupByTaxon aggregates candidates by taxon and keeps only the groups
// with at least minCount URLs. Filtering runs once, after every candidate
// has been added.
func GroupByTaxon(candidates []AudioCandidate, minCount int) *TaxonGroups {
	groups := NewTaxonGroups()
	for _, c := range candidates {
		groups.Add(c.Taxon, c.URL)
	}
	groups.Filter(minCount)
	return groups
}
