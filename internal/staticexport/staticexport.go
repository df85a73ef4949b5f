// Package staticexport renders the public site into a directory of HTML
// files by crawling an in-process handler.
package staticexport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/louisbranch/toolatlas/internal/platform/i18n"
	"github.com/louisbranch/toolatlas/internal/platform/timeouts"
	"github.com/louisbranch/toolatlas/internal/services/web/routepath"
)

// defaultConcurrency bounds in-flight page renders when Config leaves it zero.
const defaultConcurrency = 4

// maxRedirects bounds how many redirect hops one seed may take.
const maxRedirects = 5

// Config describes one export.
type Config struct {
	// Handler must be composed in static-export mode.
	Handler http.Handler
	Locales i18n.Set
	OutDir  string
	// Overwrite clears a non-empty OutDir before writing.
	Overwrite   bool
	Concurrency int
	// ExtraFiles are root-level paths written verbatim, e.g. /robots.txt.
	ExtraFiles []string
	// Assets are copied under /static/.
	Assets fs.FS
}

// Result summarizes a finished export.
type Result struct {
	Pages  []string
	Files  int
	Assets int
}

// Run crawls every locale home page, follows same-site page links, and
// writes each page to <OutDir>/<path>/index.html.
func Run(ctx context.Context, cfg Config) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("context is required")
	}
	if cfg.Handler == nil {
		return Result{}, errors.New("handler is required")
	}
	if strings.TrimSpace(cfg.OutDir) == "" {
		return Result{}, errors.New("output directory is required")
	}
	if err := prepareOutDir(cfg.OutDir, cfg.Overwrite); err != nil {
		return Result{}, err
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	exp := &exporter{cfg: cfg, visited: make(map[string]struct{}), written: make(map[string]struct{})}
	var frontier []string
	for _, locale := range cfg.Locales.Locales() {
		frontier = append(frontier, exp.claim(routepath.Home(locale.Segment))...)
	}
	for len(frontier) > 0 {
		next, err := exp.crawl(ctx, frontier, concurrency)
		if err != nil {
			return Result{}, err
		}
		frontier = next
	}

	result := Result{Pages: exp.pages}
	sort.Strings(result.Pages)
	for _, name := range cfg.ExtraFiles {
		if err := exp.writeFile(ctx, name); err != nil {
			return Result{}, err
		}
		result.Files++
	}
	if cfg.Assets != nil {
		copied, err := copyAssets(cfg.Assets, filepath.Join(cfg.OutDir, filepath.FromSlash(strings.Trim(routepath.StaticPrefix, "/"))))
		if err != nil {
			return Result{}, err
		}
		result.Assets = copied
	}
	log.Printf("static export wrote pages=%d files=%d assets=%d out=%s", len(result.Pages), result.Files, result.Assets, cfg.OutDir)
	return result, nil
}

type exporter struct {
	cfg Config

	mu      sync.Mutex
	visited map[string]struct{}
	written map[string]struct{}
	pages   []string
}

// claim marks paths as visited and returns the ones seen for the first time.
func (e *exporter) claim(paths ...string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var fresh []string
	for _, p := range paths {
		if _, ok := e.visited[p]; ok {
			continue
		}
		e.visited[p] = struct{}{}
		fresh = append(fresh, p)
	}
	return fresh
}

// claimPage reserves the rendered path for writing. Several links may
// redirect to one page; only the first caller writes it.
func (e *exporter) claimPage(finalPath string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visited[finalPath] = struct{}{}
	if _, ok := e.written[finalPath]; ok {
		return false
	}
	e.written[finalPath] = struct{}{}
	e.pages = append(e.pages, finalPath)
	return true
}

// crawl renders one breadth level and returns the next.
func (e *exporter) crawl(ctx context.Context, frontier []string, concurrency int) ([]string, error) {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	var mu sync.Mutex
	var next []string
	for _, pagePath := range frontier {
		group.Go(func() error {
			links, err := e.exportPage(groupCtx, pagePath)
			if err != nil {
				return err
			}
			fresh := e.claim(links...)
			mu.Lock()
			next = append(next, fresh...)
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(next)
	return next, nil
}

func (e *exporter) exportPage(ctx context.Context, pagePath string) ([]string, error) {
	body, finalPath, err := e.fetch(ctx, pagePath)
	if err != nil {
		return nil, err
	}
	target, err := pageFile(e.cfg.OutDir, finalPath)
	if err != nil {
		return nil, err
	}
	if !e.claimPage(finalPath) {
		return nil, nil
	}
	if err := writeBytes(target, body); err != nil {
		return nil, err
	}

	links, err := extractLinks(finalPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", finalPath, err)
	}
	var out []string
	for _, link := range links {
		if e.isPage(link) {
			out = append(out, link)
		}
	}
	return out, nil
}

// fetch renders p, following same-site redirects.
func (e *exporter) fetch(ctx context.Context, p string) ([]byte, string, error) {
	for range maxRedirects {
		reqCtx, cancel := context.WithTimeout(ctx, timeouts.ExportPage)
		req := httptest.NewRequestWithContext(reqCtx, http.MethodGet, p, nil)
		rr := httptest.NewRecorder()
		e.cfg.Handler.ServeHTTP(rr, req)
		cancel()

		switch {
		case rr.Code == http.StatusOK:
			return rr.Body.Bytes(), p, nil
		case rr.Code >= 300 && rr.Code < 400:
			location, err := url.Parse(rr.Header().Get("Location"))
			if err != nil || location.Host != "" || location.RawQuery != "" {
				return nil, "", fmt.Errorf("export %s: redirect leaves the site: %q", p, rr.Header().Get("Location"))
			}
			p = location.Path
		default:
			return nil, "", fmt.Errorf("export %s: status %d", p, rr.Code)
		}
	}
	return nil, "", fmt.Errorf("export %s: too many redirects", p)
}

func (e *exporter) writeFile(ctx context.Context, name string) error {
	name = "/" + strings.TrimPrefix(strings.TrimSpace(name), "/")
	body, _, err := e.fetch(ctx, name)
	if err != nil {
		return err
	}
	target, err := safeJoin(e.cfg.OutDir, name)
	if err != nil {
		return err
	}
	return writeBytes(target, body)
}

// isPage reports whether link is a locale-led page worth exporting.
func (e *exporter) isPage(link string) bool {
	segment, _, _ := strings.Cut(strings.TrimPrefix(link, "/"), "/")
	_, ok := e.cfg.Locales.Lookup(segment)
	return ok
}

// extractLinks returns the same-site anchor targets in doc, resolved against
// pagePath. Links with a query string are skipped because files cannot vary
// by query.
func extractLinks(pagePath string, doc io.Reader) ([]string, error) {
	root, err := html.Parse(doc)
	if err != nil {
		return nil, err
	}
	base := &url.URL{Path: pagePath}
	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				if link, ok := sameSitePath(base, attr.Val); ok {
					links = append(links, link)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return links, nil
}

func sameSitePath(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil || ref.Scheme != "" || ref.Host != "" || ref.RawQuery != "" {
		return "", false
	}
	resolved := base.ResolveReference(ref)
	if resolved.Path == "" {
		return "", false
	}
	return resolved.Path, true
}

// pageFile maps a page path to its index.html file under outDir.
func pageFile(outDir, pagePath string) (string, error) {
	return safeJoin(outDir, path.Join(pagePath, "index.html"))
}

// safeJoin roots urlPath before cleaning so ".." cannot climb above outDir.
func safeJoin(outDir, urlPath string) (string, error) {
	clean := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if clean == "" {
		return "", fmt.Errorf("path %q names the output directory itself", urlPath)
	}
	return filepath.Join(outDir, filepath.FromSlash(clean)), nil
}

func writeBytes(target string, body []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", target, err)
	}
	if err := os.WriteFile(target, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}

func prepareOutDir(outDir string, overwrite bool) error {
	entries, err := os.ReadDir(outDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return os.MkdirAll(outDir, 0o755)
	case err != nil:
		return fmt.Errorf("read output directory: %w", err)
	case len(entries) == 0:
		return nil
	case !overwrite:
		return fmt.Errorf("output directory %s is not empty", outDir)
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(outDir, entry.Name())); err != nil {
			return fmt.Errorf("clear output directory: %w", err)
		}
	}
	return nil
}

func copyAssets(assets fs.FS, target string) (int, error) {
	copied := 0
	err := fs.WalkDir(assets, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		body, err := fs.ReadFile(assets, name)
		if err != nil {
			return err
		}
		if err := writeBytes(filepath.Join(target, filepath.FromSlash(name)), body); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("copy static assets: %w", err)
	}
	return copied, nil
}
