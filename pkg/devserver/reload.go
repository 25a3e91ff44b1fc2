package devserver

import (
	"net/http"
	"strings"
	"sync"

	"github.com/starfederation/datastar-go/datastar"
)

// LivePath is the server-sent events endpoint previews subscribe to.
const LivePath = "/_live"

const datastarScript = `https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js`

// Reloader tells open preview pages to reload after a successful rebuild.
// It is safe for concurrent use.
type Reloader struct {
	mu      sync.Mutex
	waiters map[chan struct{}]struct{}
}

// NewReloader creates a Reloader with no subscribers.
func NewReloader() *Reloader {
	return &Reloader{waiters: make(map[chan struct{}]struct{})}
}

// Notify wakes every subscribed page.
func (rl *Reloader) Notify() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ch := range rl.waiters {
		close(ch)
		delete(rl.waiters, ch)
	}
}

// Subscribers returns the number of pages waiting for a reload.
func (rl *Reloader) Subscribers() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.waiters)
}

func (rl *Reloader) subscribe() chan struct{} {
	ch := make(chan struct{})
	rl.mu.Lock()
	rl.waiters[ch] = struct{}{}
	rl.mu.Unlock()
	return ch
}

func (rl *Reloader) unsubscribe(ch chan struct{}) {
	rl.mu.Lock()
	delete(rl.waiters, ch)
	rl.mu.Unlock()
}

// Handler holds the request open until the next Notify, then redirects the
// page given in the "page" query parameter to itself.
func (rl *Reloader) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if !strings.HasPrefix(page, "/") || strings.HasPrefix(page, "//") {
			page = "/"
		}

		ch := rl.subscribe()
		defer rl.unsubscribe(ch)

		sse := datastar.NewSSE(w, r)
		select {
		case <-r.Context().Done():
		case <-ch:
			_ = sse.Redirect(page)
		}
	}
}

// injectLiveReload adds the reload subscription before </body>, or at the
// end when the document has none.
func injectLiveReload(doc []byte, page string) []byte {
	snippet := `<script type="module" src="` + datastarScript + `"></script>` +
		`<div data-on-load="@get('` + LivePath + `?page=` + page + `')"></div>`

	s := string(doc)
	if i := strings.LastIndex(strings.ToLower(s), "</body>"); i >= 0 {
		return []byte(s[:i] + snippet + s[i:])
	}
	return []byte(s + snippet)
}
