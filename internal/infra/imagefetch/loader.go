package imagefetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"github.com/wonny/influroi/internal/domain/scoring"
	svc "github.com/wonny/influroi/internal/service/scoring"
)

const (
	defaultTimeout = 10 * time.Second
	maxImageBytes  = 10 << 20 // 10MB
	userAgent      = "Mozilla/5.0 (compatible; influroi/1.0)"
)

// Loader 브랜드 이미지(로컬 업로드 파일)와 채널 썸네일(URL) 로더
type Loader struct {
	httpClient *http.Client
	uploadDir  string
}

// NewLoader uploadDir 밖의 경로는 읽지 않음
func NewLoader(uploadDir string, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Loader{
		httpClient: &http.Client{Timeout: timeout},
		uploadDir:  uploadDir,
	}
}

// LoadBrandImage 업로드된 브랜드 이미지 읽기
func (l *Loader) LoadBrandImage(_ context.Context, path string) (*scoring.Image, error) {
	clean, err := l.resolveUpload(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(clean)
	if err != nil {
		return nil, fmt.Errorf("open brand image: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read brand image: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("brand image exceeds %d bytes", maxImageBytes)
	}

	return &scoring.Image{
		Source:      clean,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

// resolveUpload 상대 경로는 uploadDir 기준
func (l *Loader) resolveUpload(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty brand image path")
	}
	if l.uploadDir == "" {
		return filepath.Clean(path), nil
	}

	base, err := filepath.Abs(l.uploadDir)
	if err != nil {
		return "", fmt.Errorf("resolve upload dir: %w", err)
	}

	target := path
	if !filepath.IsAbs(target) {
		target = filepath.Join(base, filepath.Base(path))
	}
	target = filepath.Clean(target)

	rel, err := filepath.Rel(base, target)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("brand image %s outside upload dir", path)
	}
	return target, nil
}

// LoadThumbnail 썸네일 다운로드. HTML 페이지가 오면 og:image 를 따라감
func (l *Loader) LoadThumbnail(ctx context.Context, url string) (*scoring.Image, error) {
	img, html, err := l.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if img != nil {
		return img, nil
	}

	ogImage, err := OGImage(html)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("page", url).Str("og_image", ogImage).Msg("Thumbnail resolved from page")

	img, _, err = l.fetch(ctx, ogImage)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("og:image %s is not an image", ogImage)
	}
	return img, nil
}

// fetch 이미지면 (img, nil), HTML 이면 (nil, body)
func (l *Loader) fetch(ctx context.Context, url string) (*scoring.Image, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, nil, fmt.Errorf("thumbnail exceeds %d bytes", maxImageBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	switch {
	case strings.HasPrefix(contentType, "image/"):
		return &scoring.Image{Source: url, ContentType: contentType, Data: data}, nil, nil
	case strings.HasPrefix(contentType, "text/html"):
		return nil, data, nil
	default:
		return nil, nil, fmt.Errorf("unsupported content type %q", contentType)
	}
}

// OGImage HTML 의 og:image (없으면 twitter:image)
func OGImage(html []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	for _, sel := range []string{`meta[property="og:image"]`, `meta[name="twitter:image"]`} {
		if content, ok := doc.Find(sel).First().Attr("content"); ok && content != "" {
			return content, nil
		}
	}
	return "", fmt.Errorf("no og:image in page")
}

var _ svc.ImageLoader = (*Loader)(nil)
