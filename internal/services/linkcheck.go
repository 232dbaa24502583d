package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/folio-backend/internal/platform/logger"
	"github.com/yungbote/folio-backend/internal/types"
)

// LinkValidator verifies outbound links in a generated layout and strips the
// dead ones. Hero CTA hrefs are the only link-bearing field in the schema.
type LinkValidator interface {
	Sanitize(ctx context.Context, layout *types.GeneratedLayout)
}

type linkValidator struct {
	log        *logger.Logger
	httpClient *http.Client
}

func NewLinkValidator(log *logger.Logger, timeout time.Duration) LinkValidator {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &linkValidator{
		log:        log.With("service", "LinkValidator"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Sanitize probes every extracted link concurrently, waits for all probes to
// finish, then drops the whole cta prop from any Hero whose href failed.
// Title and subtitle stay; other sections pass through untouched.
func (v *linkValidator) Sanitize(ctx context.Context, layout *types.GeneratedLayout) {
	if layout == nil {
		return
	}
	links := extractLinks(layout)
	if len(links) == 0 {
		return
	}

	valid := make([]bool, len(links))
	g, gctx := errgroup.WithContext(ctx)
	for i, link := range links {
		i, link := i, link
		g.Go(func() error {
			valid[i] = v.validateLink(gctx, link)
			return nil
		})
	}
	_ = g.Wait()

	invalid := map[string]bool{}
	for i, link := range links {
		if !valid[i] {
			invalid[link] = true
		}
	}
	if len(invalid) == 0 {
		return
	}

	for i := range layout.Sections {
		sec := &layout.Sections[i]
		if sec.Type != types.SectionHero {
			continue
		}
		if invalid[heroCTAHref(*sec)] {
			v.log.Debug("dropping dead hero cta", "href", heroCTAHref(*sec))
			delete(sec.Props, "cta")
		}
	}
}

// extractLinks collects every Hero section's cta.href.
func extractLinks(layout *types.GeneratedLayout) []string {
	var links []string
	for _, sec := range layout.Sections {
		if sec.Type != types.SectionHero {
			continue
		}
		if href := heroCTAHref(sec); href != "" {
			links = append(links, href)
		}
	}
	return links
}

func heroCTAHref(sec types.Section) string {
	cta, ok := sec.Props["cta"].(map[string]any)
	if !ok {
		return ""
	}
	href, _ := cta["href"].(string)
	return strings.TrimSpace(href)
}

// validateLink trusts mailto: URIs and site-relative paths; everything else
// gets exactly one HEAD probe. Any transport error or non-2xx status marks
// the link invalid.
func (v *linkValidator) validateLink(ctx context.Context, link string) bool {
	if strings.HasPrefix(link, "mailto:") || strings.HasPrefix(link, "/") {
		return true
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, link, nil)
	if err != nil {
		return false
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
