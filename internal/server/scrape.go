package server

import (
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixtape/internal/shared"
	"golang.org/x/time/rate"
)

// scrapeTimeout bounds each proxied fetch.
const scrapeTimeout = 10 * time.Second

// ScrapeHandler proxies GET requests to an allowlist of provider hosts so the
// frontend can fetch preview pages without hitting CORS walls. The allowlist
// is the SSRF guard; everything else is rejected before any outbound call.
// Implements the [Handler] interface.
type ScrapeHandler struct {
	allowedHosts map[string]bool
	limiter      *rate.Limiter
	httpClient   *http.Client
	logger       *log.Logger
}

// NewScrapeHandler creates a ScrapeHandler. Outbound fetches are throttled to
// ratePerSec requests per second across all callers.
func NewScrapeHandler(allowedHosts []string, ratePerSec float64, logger *log.Logger) *ScrapeHandler {
	hosts := make(map[string]bool, len(allowedHosts))
	for _, host := range allowedHosts {
		hosts[host] = true
	}

	if ratePerSec <= 0 {
		ratePerSec = 5.0
	}

	return &ScrapeHandler{
		allowedHosts: hosts,
		limiter:      rate.NewLimiter(rate.Limit(ratePerSec), 1),
		httpClient:   &http.Client{Timeout: scrapeTimeout},
		logger:       logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *ScrapeHandler) Routes() []string {
	return []string{"/scrape"}
}

// allowed validates a URL against the host allowlist.
func (h *ScrapeHandler) allowed(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return h.allowedHosts[parsed.Hostname()]
}

// ServeHTTP fetches the URL named in the Url header and relays the body.
func (h *ScrapeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	target := r.Header.Get("Url")
	if !h.allowed(target) {
		h.logger.Warn("blocked scrape attempt for disallowed URL", "url", target)
		writeDetail(w, http.StatusBadRequest, shared.ErrURLNotAllowed.Error())
		return
	}

	if err := h.limiter.Wait(r.Context()); err != nil {
		writeDetail(w, http.StatusServiceUnavailable, "scrape rate limit")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target, nil)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, shared.ErrURLNotAllowed.Error())
		return
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.logger.Error("error scraping URL", "url", target, "error", err)
		writeDetail(w, http.StatusBadGateway, "Failed to fetch URL")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		h.logger.Error("upstream returned error status", "url", target, "status", resp.StatusCode)
		writeDetail(w, http.StatusBadGateway, "Failed to fetch URL")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.Copy(w, resp.Body)
}
