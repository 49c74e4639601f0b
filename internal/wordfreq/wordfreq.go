// Package wordfreq provisions familiar-word lists from the wordfreq dataset.
package wordfreq

import (
	"archive/zip"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/readability/internal/lexicon"
)

const (
	pypiEndpoint = "https://pypi.org/pypi/wordfreq/json"
	dataPrefix   = "wordfreq/data/"
)

// List sizes shipped in the wheel. Small lists hold the most frequent words.
const (
	ListSmall = "small"
	ListLarge = "large"
)

// Wheel describes a cached wordfreq wheel.
type Wheel struct {
	Version  string
	Path     string
	Filename string
	Cached   bool
}

// Client downloads wordfreq wheels.
type Client struct {
	HTTP     *http.Client
	Endpoint string
}

// NewClient returns a client for the PyPI JSON API.
func NewClient() *Client {
	return &Client{
		HTTP:     &http.Client{Timeout: 60 * time.Second},
		Endpoint: pypiEndpoint,
	}
}

type pypiRelease struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
	URLs []pypiFile `json:"urls"`
}

type pypiFile struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Packagetype string `json:"packagetype"`
}

// Download fetches the latest wordfreq wheel into cacheDir, reusing a cached
// copy of the same release.
func (c *Client) Download(ctx context.Context, cacheDir string) (Wheel, error) {
	if cacheDir == "" {
		return Wheel{}, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return Wheel{}, fmt.Errorf("failed to create cache dir: %w", err)
	}

	var release pypiRelease
	if err := c.getJSON(ctx, c.Endpoint, &release); err != nil {
		return Wheel{}, err
	}
	if release.Info.Version == "" {
		return Wheel{}, fmt.Errorf("missing version in pypi response")
	}
	file, ok := pickWheel(release.URLs)
	if !ok {
		return Wheel{}, fmt.Errorf("no suitable wordfreq wheel found")
	}

	wheel := Wheel{Version: release.Info.Version, Filename: file.Filename, Path: filepath.Join(cacheDir, file.Filename)}
	if _, err := os.Stat(wheel.Path); err == nil {
		wheel.Cached = true
		return wheel, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Wheel{}, fmt.Errorf("failed to stat cached wheel: %w", err)
	}
	if err := c.downloadFile(ctx, file.URL, wheel.Path); err != nil {
		return Wheel{}, err
	}
	return wheel, nil
}

func (c *Client) getJSON(ctx context.Context, url string, dst any) error {
	resp, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode pypi response: %w", err)
	}
	return nil
}

// downloadFile writes url to dest through a temp file in the same directory.
func (c *Client) downloadFile(ctx context.Context, url, dest string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(dest), "wordfreq-*.whl")
	if err != nil {
		return fmt.Errorf("failed to create temp wheel: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	resp, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return fmt.Errorf("failed to download wheel: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp wheel: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to move wheel into cache: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status for %s: %s", url, resp.Status)
	}
	return resp, nil
}

func pickWheel(files []pypiFile) (pypiFile, bool) {
	var fallback *pypiFile
	for i, f := range files {
		if f.Packagetype != "bdist_wheel" {
			continue
		}
		if strings.HasSuffix(f.Filename, "py3-none-any.whl") {
			return f, true
		}
		if fallback == nil {
			fallback = &files[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return pypiFile{}, false
}

// FamiliarWords returns the size most frequent words of lang, lowercased and
// filtered to what the tokenizer can produce. The small list is preferred
// when it holds enough words.
func FamiliarWords(wheelPath, lang string, size int) ([]string, error) {
	if wheelPath == "" {
		return nil, fmt.Errorf("wheel path is required")
	}
	lang = strings.ToLower(lang)
	if lang == "" {
		return nil, fmt.Errorf("language is required")
	}
	if size <= 0 {
		return nil, fmt.Errorf("size must be greater than 0")
	}

	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	files := dataFiles(reader.File, lang)
	if len(files) == 0 {
		return nil, fmt.Errorf("no frequency data for %q in wheel", lang)
	}
	var words []string
	for _, file := range files {
		buckets, err := readBuckets(file)
		if err != nil {
			return nil, err
		}
		words = topWords(buckets, lexicon.FilterForLang(lang), size)
		if len(words) >= size {
			break
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no words found for %s", lang)
	}
	return words, nil
}

// dataFiles returns the frequency files for lang, small list first.
func dataFiles(files []*zip.File, lang string) []*zip.File {
	var out []*zip.File
	for _, listType := range []string{ListSmall, ListLarge} {
		for _, f := range files {
			l, t := parseDataName(f.Name)
			if l == lang && t == listType {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

func readBuckets(file *zip.File) ([][]string, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file.Name, err)
	}
	defer func() {
		_ = rc.Close()
	}()

	var r io.Reader = rc
	if strings.HasSuffix(file.Name, ".gz") {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() {
			_ = gz.Close()
		}()
		r = gz
	}
	buckets, err := decodeCBPack(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
	}
	return buckets, nil
}

func topWords(buckets [][]string, keep lexicon.FilterFunc, size int) []string {
	seen := make(map[string]struct{})
	words := make([]string, 0, size)
	for _, bucket := range buckets {
		for _, w := range bucket {
			w = strings.ToLower(w)
			if _, ok := seen[w]; ok || !keep(w) {
				continue
			}
			seen[w] = struct{}{}
			words = append(words, w)
			if len(words) == size {
				return words
			}
		}
	}
	return words
}

// Languages lists language codes with frequency data in the wheel.
func Languages(wheelPath string) ([]string, error) {
	if wheelPath == "" {
		return nil, fmt.Errorf("wheel path is required")
	}
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	seen := make(map[string]struct{})
	for _, file := range reader.File {
		if lang, _ := parseDataName(file.Name); lang != "" {
			seen[lang] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("no languages found in wordfreq wheel")
	}
	langs := make([]string, 0, len(seen))
	for lang := range seen {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs, nil
}

// parseDataName maps "wordfreq/data/small_en.msgpack.gz" to ("en", "small").
func parseDataName(name string) (lang, listType string) {
	name = strings.ToLower(name)
	base, ok := strings.CutPrefix(name, dataPrefix)
	if !ok {
		return "", ""
	}
	base = strings.TrimSuffix(base, ".gz")
	base, ok = strings.CutSuffix(base, ".msgpack")
	if !ok {
		return "", ""
	}
	listType, lang, ok = strings.Cut(base, "_")
	if !ok || lang == "" || (listType != ListSmall && listType != ListLarge) {
		return "", ""
	}
	return lang, listType
}

// WriteList writes words one per line, headed by attribution comments.
func WriteList(path string, words []string, wheel Wheel) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create word list dir: %w", err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# Familiar words generated from wordfreq %s (%s).\n", wheel.Version, wheel.Filename)
	b.WriteString("# Source: https://github.com/rspeer/wordfreq\n")
	b.WriteString("# Data license: CC BY-SA 4.0 https://creativecommons.org/licenses/by-sa/4.0/\n")
	b.WriteString("# Changes: lowercased, filtered to tokenizer words, truncated to the requested size.\n")
	for _, w := range words {
		b.WriteString(w)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write word list: %w", err)
	}
	return nil
}

// WriteAttribution copies the wheel's license next to generated lists.
func WriteAttribution(wheelPath, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	licenseText, err := readWheelLicense(wheelPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "LICENSE.txt"), licenseText, 0o644); err != nil {
		return fmt.Errorf("failed to write license: %w", err)
	}
	attribution := "Familiar-word lists are derived from the wordfreq dataset (CC BY-SA 4.0).\n" +
		"See LICENSE.txt for the wordfreq code license.\n"
	if err := os.WriteFile(filepath.Join(outDir, "ATTRIBUTION.txt"), []byte(attribution), 0o644); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}
	return nil
}

func readWheelLicense(wheelPath string) ([]byte, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel for license: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	for _, file := range reader.File {
		if !strings.Contains(strings.ToLower(file.Name), "license") {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open license: %w", err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read license: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("license file not found in wheel")
}
