package bm25

import (
	"math"
	"sort"
	"sync"
)

const (
	k1 = 1.5
	b  = 0.75
)

// field weights, per the engine's ranking design: identifiers matter most,
// qualified names next, source text least.
const (
	weightName          = 3.0
	weightQualifiedName = 2.0
	weightSnippet       = 1.0
)

// Document is the indexable text for one code element.
type Document struct {
	ElementID     string
	Name          string
	QualifiedName string
	Snippet       string
}

type postingList map[string]float64 // elementID -> weighted term frequency

// Index is a BM25F-style inverted index: term frequencies are weighted by
// field before scoring, so a query hit in Name outweighs the same hit in
// Snippet.
type Index struct {
	mu sync.RWMutex

	postings   map[string]postingList // term -> doc -> weighted tf
	docLength  map[string]float64     // elementID -> weighted token count
	totalLength float64
	docCount   int
}

// New returns an empty index.
func New() *Index {
	return &Index{
		postings:  make(map[string]postingList),
		docLength: make(map[string]float64),
	}
}

// Result is one scored hit.
type Result struct {
	ElementID string
	Score     float64
}

// AddDocument indexes (or re-indexes) doc, replacing any prior entry for
// the same ElementID.
func (idx *Index) AddDocument(doc Document) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.removeLocked(doc.ElementID)

	weighted := map[string]float64{}
	length := 0.0
	addField := func(text string, weight float64) {
		for _, tok := range Tokenize(text) {
			weighted[tok] += weight
			length += weight
		}
	}
	addField(doc.Name, weightName)
	addField(doc.QualifiedName, weightQualifiedName)
	addField(doc.Snippet, weightSnippet)

	if length == 0 {
		return
	}

	for term, wtf := range weighted {
		list, ok := idx.postings[term]
		if !ok {
			list = postingList{}
			idx.postings[term] = list
		}
		list[doc.ElementID] = wtf
	}
	idx.docLength[doc.ElementID] = length
	idx.totalLength += length
	idx.docCount++
}

// RemoveDocument deletes an element from the index, if present.
func (idx *Index) RemoveDocument(elementID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.removeLocked(elementID)
}

func (idx *Index) removeLocked(elementID string) {
	length, ok := idx.docLength[elementID]
	if !ok {
		return
	}
	for term, list := range idx.postings {
		if _, present := list[elementID]; present {
			delete(list, elementID)
			if len(list) == 0 {
				delete(idx.postings, term)
			}
		}
	}
	delete(idx.docLength, elementID)
	idx.totalLength -= length
	idx.docCount--
}

// Search scores every document containing at least one query term and
// returns the top limit results ordered by score descending, then
// element ID ascending to break ties deterministically.
func (idx *Index) Search(query string, limit int) []Result {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.docCount == 0 {
		return nil
	}
	avgdl := idx.totalLength / float64(idx.docCount)
	if avgdl == 0 {
		return nil
	}

	scores := map[string]float64{}
	for _, term := range Tokenize(query) {
		list, ok := idx.postings[term]
		if !ok {
			continue
		}
		df := float64(len(list))
		idf := math.Log(1 + (float64(idx.docCount)-df+0.5)/(df+0.5))
		for docID, wtf := range list {
			dl := idx.docLength[docID]
			norm := wtf * (k1 + 1)
			denom := wtf + k1*(1-b+b*(dl/avgdl))
			scores[docID] += idf * norm / denom
		}
	}

	results := make([]Result, 0, len(scores))
	for id, score := range scores {
		results = append(results, Result{ElementID: id, Score: score})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ElementID < results[j].ElementID
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// DocCount reports how many documents are currently indexed.
func (idx *Index) DocCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.docCount
}
