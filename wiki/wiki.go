// Package wiki reads election articles and their images from the MediaWiki API.
package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mapreel/mapreel/log"
	"github.com/mapreel/mapreel/where"
	"github.com/samber/lo"
)

// Endpoint is the English Wikipedia API.
const Endpoint = "https://en.wikipedia.org/w/api.php"

// DefaultThumbWidth is the thumbnail width requested for images.
const DefaultThumbWidth = 100

// ErrNotFound is returned when a page or its content does not exist.
var ErrNotFound = errors.New("not found")

// Fetcher reads a URL. *network.Gate satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Article is the introduction of an encyclopedia page.
type Article struct {
	Title string `json:"title"`
	HTML  string `json:"html"`
	Text  string `json:"text"`
}

// Image locates an image file.
type Image struct {
	File     string `json:"file"`
	URL      string `json:"url"`
	ThumbURL string `json:"thumb_url,omitempty"`
}

// Options configures a Client.
type Options struct {
	// Endpoint defaults to Endpoint.
	Endpoint string
	// ThumbWidth defaults to DefaultThumbWidth.
	ThumbWidth int
	// CacheDir holds response caches. Empty means where.Wiki(); caching is off when NoCache is set.
	CacheDir string
	NoCache  bool
}

// Client queries the API. It is safe for concurrent use.
type Client struct {
	fetcher    Fetcher
	endpoint   string
	thumbWidth int
	caches     *caches
}

// New returns a client reading through fetcher.
func New(fetcher Fetcher, opts Options) *Client {
	c := &Client{
		fetcher:    fetcher,
		endpoint:   lo.Ternary(opts.Endpoint == "", Endpoint, opts.Endpoint),
		thumbWidth: lo.Ternary(opts.ThumbWidth <= 0, DefaultThumbWidth, opts.ThumbWidth),
	}

	if !opts.NoCache {
		dir := opts.CacheDir
		if dir == "" {
			dir = where.Wiki()
		}
		c.caches = newCaches(dir)
	}

	return c
}

type imageRef struct {
	Title string `json:"title"`
}

type page struct {
	Title     string     `json:"title"`
	Missing   *string    `json:"missing"`
	Invalid   *string    `json:"invalid"`
	Extract   string     `json:"extract"`
	Images    []imageRef `json:"images"`
	ImageInfo []struct {
		URL      string `json:"url"`
		ThumbURL string `json:"thumburl"`
	} `json:"imageinfo"`
}

func (p page) exists() bool {
	return p.Missing == nil && p.Invalid == nil
}

type queryResponse struct {
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
	Query struct {
		Pages map[string]page `json:"pages"`
	} `json:"query"`
}

// Extract returns the introduction of the page titled title.
func (c *Client) Extract(ctx context.Context, title string) (*Article, error) {
	cacheKey := "extract:" + title
	if c.caches != nil {
		if article, ok := c.caches.articles.Get(title).Get(); ok {
			return article, nil
		}
		if c.failed(cacheKey) {
			return nil, fmt.Errorf("extract %s: recently failed", title)
		}
	}

	log.Infof("fetching extract of %s", title)
	pages, err := c.query(ctx, url.Values{
		"prop":   {"extracts"},
		"titles": {title},
	})
	if err != nil {
		c.fail(cacheKey, err)
		return nil, fmt.Errorf("extract %s: %w", title, err)
	}

	p, ok := firstPage(pages)
	if !ok || !p.exists() || p.Extract == "" {
		return nil, fmt.Errorf("extract %s: %w", title, ErrNotFound)
	}

	text, err := PlainText(p.Extract)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", title, err)
	}

	article := &Article{Title: p.Title, HTML: p.Extract, Text: text}
	c.remember(func() error { return c.caches.articles.Set(title, article) })

	return article, nil
}

// Images returns the file names of the images used by the page titled title, without the File: prefix.
func (c *Client) Images(ctx context.Context, title string) ([]string, error) {
	cacheKey := "images:" + title
	if c.caches != nil {
		if files, ok := c.caches.images.Get(title).Get(); ok {
			return files, nil
		}
		if c.failed(cacheKey) {
			return nil, fmt.Errorf("images of %s: recently failed", title)
		}
	}

	log.Infof("fetching images of %s", title)
	pages, err := c.query(ctx, url.Values{
		"prop":    {"images"},
		"imlimit": {"max"},
		"titles":  {title},
	})
	if err != nil {
		c.fail(cacheKey, err)
		return nil, fmt.Errorf("images of %s: %w", title, err)
	}

	p, ok := firstPage(pages)
	if !ok || !p.exists() {
		return nil, fmt.Errorf("images of %s: %w", title, ErrNotFound)
	}

	files := lo.Uniq(lo.FilterMap(p.Images, func(image imageRef, _ int) (string, bool) {
		file := stripNamespace(image.Title)
		return file, file != ""
	}))

	c.remember(func() error { return c.caches.images.Set(title, files) })
	return files, nil
}

// ImageURL resolves an image file name to its URL.
func (c *Client) ImageURL(ctx context.Context, file string) (string, error) {
	image, err := c.ImageInfo(ctx, file)
	if err != nil {
		return "", err
	}
	return image.URL, nil
}

// ImageInfo resolves an image file name to its URL and a thumbnail URL.
func (c *Client) ImageInfo(ctx context.Context, file string) (*Image, error) {
	file = stripNamespace(file)

	cacheKey := "imageinfo:" + file
	if c.caches != nil {
		if image, ok := c.caches.infos.Get(file).Get(); ok {
			return image, nil
		}
		if c.failed(cacheKey) {
			return nil, fmt.Errorf("image %s: recently failed", file)
		}
	}

	pages, err := c.query(ctx, url.Values{
		"prop":       {"imageinfo"},
		"iiprop":     {"url"},
		"iiurlwidth": {strconv.Itoa(c.thumbWidth)},
		"titles":     {"File:" + file},
	})
	if err != nil {
		c.fail(cacheKey, err)
		return nil, fmt.Errorf("image %s: %w", file, err)
	}

	p, ok := firstPage(pages)
	if !ok || len(p.ImageInfo) == 0 || p.ImageInfo[0].URL == "" {
		return nil, fmt.Errorf("image %s: %w", file, ErrNotFound)
	}

	image := &Image{File: file, URL: p.ImageInfo[0].URL, ThumbURL: p.ImageInfo[0].ThumbURL}
	c.remember(func() error { return c.caches.infos.Set(file, image) })

	return image, nil
}

func (c *Client) query(ctx context.Context, params url.Values) (map[string]page, error) {
	params.Set("action", "query")
	params.Set("format", "json")

	body, err := c.fetcher.Fetch(ctx, c.endpoint+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var response queryResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if response.Error != nil {
		return nil, fmt.Errorf("api error %s: %s", response.Error.Code, response.Error.Info)
	}

	return response.Query.Pages, nil
}

func (c *Client) failed(key string) bool {
	return c.caches.failures.Get(key).OrElse(false)
}

// fail records a transport failure. Cancellation is not a failure of the request.
func (c *Client) fail(key string, err error) {
	if c.caches == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}
	c.remember(func() error { return c.caches.failures.Set(key, true) })
}

func (c *Client) remember(set func() error) {
	if c.caches == nil {
		return
	}
	if err := set(); err != nil {
		log.Warnf("wiki cache: %s", err)
	}
}

// firstPage picks the page of a single-title query. Page ids order pages when there are several.
func firstPage(pages map[string]page) (page, bool) {
	if len(pages) == 0 {
		return page{}, false
	}

	ids := lo.Keys(pages)
	id := lo.MinBy(ids, func(a, b string) bool {
		ai, aerr := strconv.Atoi(a)
		bi, berr := strconv.Atoi(b)
		if aerr != nil || berr != nil {
			return a < b
		}
		return ai < bi
	})

	return pages[id], true
}

func stripNamespace(title string) string {
	for _, prefix := range []string{"File:", "Image:"} {
		if rest, ok := strings.CutPrefix(title, prefix); ok {
			return rest
		}
	}
	return title
}
