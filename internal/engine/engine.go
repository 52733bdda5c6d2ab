package engine

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/homestage/designexplorer/internal/client"
	"github.com/homestage/designexplorer/internal/history"
	"github.com/homestage/designexplorer/internal/logging"
	"github.com/homestage/designexplorer/internal/registry"
	"github.com/homestage/designexplorer/internal/types"
)

// Remote is the slice of the persistence API the engine consumes. The
// production implementation is client.Client.
type Remote interface {
	Scrape(ctx context.Context, listingURL string) ([]client.ScrapedImage, error)
	CreateSession(ctx context.Context, listingURL string, seeds []client.ViewSeed) (*client.CreateSessionResult, error)
	FetchSessions(ctx context.Context, limit int) ([]client.SessionRecord, error)
	AppendChat(ctx context.Context, viewID string, entry client.ChatAppend) (*client.ChatAppendResult, error)
	UploadAsset(ctx context.Context, viewID string, upload client.AssetUpload) (*client.AssetUploadResult, error)
	UpdateViewImage(ctx context.Context, viewID string, gen client.GenerateRequest) (*client.GenerateResult, error)
	RevertViewImage(ctx context.Context, viewID string) (*client.RevertResult, error)
	DeleteAsset(ctx context.Context, viewID, assetID string) error
	DeleteView(ctx context.Context, viewID string) error
	DeleteSession(ctx context.Context, sessionID string) error
}

// Statically assert the production client satisfies the collaborator contract.
var _ Remote = (*client.Client)(nil)

const (
	timelineLimit   = 6
	timelineSnipLen = 36
	shortIDLen      = 6
	defaultFetchMax = 6
)

// Options configures engine construction.
type Options struct {
	Logger *logging.Logger
	// SavedSessionsLimit caps how many saved sessions a refresh fetches.
	SavedSessionsLimit int
	// SeedCards is the placeholder gallery shown before the first scrape
	// and restored on Reset.
	SeedCards []types.ImageCard
}

// Engine owns the live workspace state for its lifetime. The rendering
// layer reads derived projections and issues intents; it never writes.
type Engine struct {
	remote Remote
	log    *logging.Logger

	history *history.Store
	store   *registry.Store

	fetchLimit int
	seedCards  []types.ImageCard

	mu             sync.RWMutex
	mode           types.Mode
	status         string
	cards          []types.ImageCard
	selected       *types.ImageCard
	liveSessionID  string
	savedSessions  []types.SavedSession
	timeline       []string
	scraping       bool
	chatSubmitting bool
	reverting      bool
	loadingSaved   bool
}

// New creates an engine in onboarding mode showing the seed gallery.
func New(remote Remote, opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = logging.NewDefault()
	}
	limit := opts.SavedSessionsLimit
	if limit <= 0 {
		limit = defaultFetchMax
	}

	return &Engine{
		remote:     remote,
		log:        log,
		history:    history.NewStore(),
		store:      registry.NewStore(),
		fetchLimit: limit,
		seedCards:  cloneCards(opts.SeedCards),
		mode:       types.ModeOnboarding,
		cards:      cloneCards(opts.SeedCards),
	}
}

// Bootstrap performs the startup work: a best-effort load of the
// saved-sessions list.
func (e *Engine) Bootstrap(ctx context.Context) {
	e.RefreshSavedSessions(ctx)
}

// SelectCard makes a gallery card the current selection and enters the
// editor.
func (e *Engine) SelectCard(cardID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, card := range e.cards {
		if card.ID == cardID {
			selected := card.Clone()
			e.selected = &selected
			e.transitionLocked(types.ModeEditor)
			return nil
		}
	}
	return ErrUnknownCard
}

// BackToGallery leaves the editor without dropping the selection.
func (e *Engine) BackToGallery() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.transitionLocked(types.ModeGallery)
}

// Reset clears the whole workspace back to onboarding with the seed
// gallery. The saved-sessions cache survives.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.history.Reset()
	e.store.Reset()
	e.cards = cloneCards(e.seedCards)
	e.selected = nil
	e.liveSessionID = ""
	e.timeline = nil
	e.status = ""
	e.transitionLocked(types.ModeOnboarding)
}

// transitionLocked applies a mode change, logging (and refusing) anything
// outside the enumerated legal transitions. Callers hold e.mu.
func (e *Engine) transitionLocked(next types.Mode) {
	if !e.mode.CanTransition(next) {
		e.log.Warn("illegal mode transition refused",
			zap.String("from", string(e.mode)),
			zap.String("to", string(next)))
		return
	}
	e.mode = next
}

// capture prepends a timeline entry, keeping the most recent entries only.
func (e *Engine) captureLocked(entry string) {
	e.timeline = append([]string{entry}, e.timeline...)
	if len(e.timeline) > timelineLimit {
		e.timeline = e.timeline[:timelineLimit]
	}
}

// resolveViewID maps the current selection to its durable view id, falling
// back to the registry for cards minted before view ids were embedded. The
// selection is copied out under the lock: propagateActiveURL writes through
// the same pointer.
func (e *Engine) resolveViewID() string {
	e.mu.RLock()
	if e.selected == nil {
		e.mu.RUnlock()
		return ""
	}
	selected := *e.selected
	e.mu.RUnlock()

	viewID, ok := e.store.ViewFor(selected)
	if !ok {
		return ""
	}
	return viewID
}

// propagateActiveURL pushes a view's new active URL onto its gallery card
// and the current selection when they belong to that view.
func (e *Engine) propagateActiveURL(viewID, url string) {
	if viewID == "" || url == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.cards {
		if cardView, ok := e.store.ViewFor(e.cards[i]); ok && cardView == viewID {
			e.cards[i].ImageURL = url
		}
	}
	if e.selected != nil {
		if selView, ok := e.store.ViewFor(*e.selected); ok && selView == viewID {
			e.selected.ImageURL = url
		}
	}
}

func cloneCards(cards []types.ImageCard) []types.ImageCard {
	out := make([]types.ImageCard, 0, len(cards))
	for _, card := range cards {
		out = append(out, card.Clone())
	}
	return out
}

func snip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func shortID(s string) string {
	if len(s) <= shortIDLen {
		return s
	}
	return s[:shortIDLen]
}
