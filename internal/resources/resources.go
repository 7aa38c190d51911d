// Package resources maps interview topics to curated study links for the
// final report roadmap.
package resources

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

const cacheSize = 32

// catalog is the static link table. Keys are topic IDs; lookups for tags fall
// through here too so renamed topics (language or framework swaps) still
// resolve.
var catalog = map[string][]string{
	"python_basics":          {"https://docs.python.org/3/tutorial/", "https://realpython.com/"},
	"oop_principles":         {"https://refactoring.guru/design-patterns", "https://en.wikipedia.org/wiki/SOLID"},
	"http_rest":              {"https://developer.mozilla.org/en-US/docs/Web/HTTP", "https://restfulapi.net/"},
	"db_sql_basics":          {"https://sqlbolt.com/", "https://use-the-index-luke.com/"},
	"git_basics":             {"https://git-scm.com/book/en/v2", "https://learngitbranching.js.org/"},
	"django_framework":       {"https://docs.djangoproject.com/en/stable/", "https://www.django-rest-framework.org/"},
	"debug_testing":          {"https://docs.pytest.org/en/stable/", "https://martinfowler.com/articles/practical-test-pyramid.html"},
	"system_design":          {"https://github.com/donnemartin/system-design-primer"},
	"system_design_advanced": {"https://github.com/donnemartin/system-design-primer", "https://dataintensive.net/"},
	"concurrency":            {"https://docs.python.org/3/library/asyncio.html"},
	"concurrency_deep":       {"https://docs.python.org/3/library/asyncio.html", "https://pymotw.com/3/threading/"},
	"performance":            {"https://docs.python.org/3/library/profile.html"},
	"caching":                {"https://redis.io/docs/latest/develop/"},
	"security":               {"https://owasp.org/www-project-top-ten/"},
	"ci_cd":                  {"https://docs.github.com/en/actions"},
	"reliability":            {"https://sre.google/sre-book/table-of-contents/"},
}

var defaultLinks = []string{"https://roadmap.sh/"}

// Library answers topic-to-links lookups with a small LRU in front of the
// catalog. The cache pays off when the final report resolves the same gap
// topics repeatedly across sections.
type Library struct {
	cache *lru.Cache[string, []string]
}

func NewLibrary() (*Library, error) {
	cache, err := lru.New[string, []string](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Library{cache: cache}, nil
}

// Lookup returns study links for a topic ID, falling back to a generic
// roadmap link when the topic is unknown.
func (l *Library) Lookup(topicID string) []string {
	if links, ok := l.cache.Get(topicID); ok {
		return links
	}

	links, ok := catalog[topicID]
	if !ok {
		links = defaultLinks
	}
	l.cache.Add(topicID, links)
	return links
}
