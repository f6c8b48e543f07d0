package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/mirror-makers/replica/internal/cache"
)

func TestAggregator_Links(t *testing.T) {
	doc := docFromHTML(t, `<html><head>
		<link rel="stylesheet" href="/main.css">
		<link rel="stylesheet" href="https://cdn.example.com/theme.css">
		<link rel="icon" href="/favicon.ico">
	</head><body></body></html>`)

	a := NewAggregator(nil, nil, nil)
	links := a.Links(doc, "https://example.com/page")

	want := []string{
		"https://example.com/main.css",
		"https://cdn.example.com/theme.css",
	}
	if !reflect.DeepEqual(links, want) {
		t.Errorf("Expected %v, got %v", want, links)
	}
}

func TestAggregator_AggregateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/linked.css":
			fmt.Fprint(w, ".linked { color: blue; }")
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	doc := docFromHTML(t, fmt.Sprintf(`<html><head>
		<style>.inline { color: green; }</style>
		<link rel="stylesheet" href="%s/linked.css">
	</head><body></body></html>`, server.URL))

	a := NewAggregator(server.Client(), nil, nil)
	corpus := a.Aggregate(context.Background(), doc, server.URL, ".fetched { color: red; }")

	want := ".fetched { color: red; }\n.inline { color: green; }\n.linked { color: blue; }"
	if corpus != want {
		t.Errorf("Expected corpus %q, got %q", want, corpus)
	}
}

func TestAggregator_SkipsFailedStylesheets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/good.css":
			fmt.Fprint(w, ".good { margin: 0; }")
		case "/forbidden.css":
			w.WriteHeader(http.StatusForbidden)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	doc := docFromHTML(t, fmt.Sprintf(`<html><head>
		<link rel="stylesheet" href="%s/forbidden.css">
		<link rel="stylesheet" href="%s/good.css">
	</head><body></body></html>`, server.URL, server.URL))

	a := NewAggregator(server.Client(), nil, nil)
	corpus := a.Aggregate(context.Background(), doc, server.URL, "")

	if corpus != ".good { margin: 0; }" {
		t.Errorf("Expected only the reachable stylesheet, got %q", corpus)
	}
}

func TestAggregator_CachesStylesheetBodies(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		fmt.Fprint(w, ".cached { padding: 0; }")
	}))
	defer server.Close()

	doc := docFromHTML(t, fmt.Sprintf(`<html><head>
		<link rel="stylesheet" href="%s/shared.css">
	</head><body></body></html>`, server.URL))

	c := cache.NewMemoryCache(0)
	defer c.Close()

	a := NewAggregator(server.Client(), nil, c)
	first := a.Aggregate(context.Background(), doc, server.URL, "")
	second := a.Aggregate(context.Background(), doc, server.URL, "")

	if first != second || first != ".cached { padding: 0; }" {
		t.Errorf("Expected identical corpora, got %q and %q", first, second)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("Expected one upstream fetch, got %d", n)
	}
}

func TestAggregator_EmptyPage(t *testing.T) {
	doc := docFromHTML(t, `<html><head></head><body></body></html>`)

	a := NewAggregator(nil, nil, nil)
	corpus := a.Aggregate(context.Background(), doc, "https://example.com", "")

	if corpus != "" {
		t.Errorf("Expected empty corpus, got %q", corpus)
	}
}
