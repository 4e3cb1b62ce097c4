package parser

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	sitter "github.com/smacker/go-tree-sitter"
)

// queryCacheSize bounds the compiled-query cache. The default query
// set is one pattern per language, so this is generous headroom for
// user-supplied overrides.
const queryCacheSize = 64

type queryKey struct {
	lang Language
	hash uint64
}

// Provider supplies parsers, grammars, and compiled structural queries.
// Parser instances are created lazily and cached per language so
// repeated files of the same language reuse compiled state. All state
// is owned by the Provider instance; concurrent analysis runs each get
// their own Provider and do not interfere.
//
// A sitter.Parser is not safe for concurrent use, so a Provider should
// be confined to one goroutine; the internal caches are still guarded
// by a mutex so sharing a Provider fails safe rather than corrupting
// the caches.
type Provider struct {
	mu      sync.Mutex
	parsers map[Language]*sitter.Parser
	queries *lru.Cache[queryKey, *sitter.Query]
}

// NewProvider creates an empty provider.
func NewProvider() *Provider {
	queries, _ := lru.NewWithEvict(queryCacheSize, func(_ queryKey, q *sitter.Query) {
		q.Close()
	})
	return &Provider{
		parsers: make(map[Language]*sitter.Parser),
		queries: queries,
	}
}

// GetParser returns a parser configured for the given language,
// creating and caching it on first use.
func (p *Provider) GetParser(lang Language) (*sitter.Parser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if psr, ok := p.parsers[lang]; ok {
		return psr, nil
	}

	tsLang, err := GetTreeSitterLanguage(lang)
	if err != nil {
		return nil, err
	}

	psr := sitter.NewParser()
	psr.SetLanguage(tsLang)
	p.parsers[lang] = psr
	return psr, nil
}

// GetLanguage returns the grammar for the given language.
func (p *Provider) GetLanguage(lang Language) (*sitter.Language, error) {
	return GetTreeSitterLanguage(lang)
}

// CompileQuery compiles a structural query for the given language,
// caching the compiled form keyed by language and query source.
func (p *Provider) CompileQuery(lang Language, src []byte) (*sitter.Query, error) {
	key := queryKey{lang: lang, hash: xxhash.Sum64(src)}

	p.mu.Lock()
	defer p.mu.Unlock()

	if q, ok := p.queries.Get(key); ok {
		return q, nil
	}

	tsLang, err := GetTreeSitterLanguage(lang)
	if err != nil {
		return nil, err
	}

	q, err := sitter.NewQuery(src, tsLang)
	if err != nil {
		return nil, err
	}

	p.queries.Add(key, q)
	return q, nil
}

// Close releases all cached parsers and compiled queries.
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, psr := range p.parsers {
		psr.Close()
	}
	p.parsers = make(map[Language]*sitter.Parser)
	p.queries.Purge()
}
