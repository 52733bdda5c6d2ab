package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/homestage/designexplorer/internal/chat"
	"github.com/homestage/designexplorer/internal/client"
	"github.com/homestage/designexplorer/internal/shared/id"
	"github.com/homestage/designexplorer/internal/types"
)

// User-facing status lines.
const (
	statusEmptyURL     = "Please paste a valid listing URL."
	statusConnecting   = "Fetching the listing imagery..."
	statusScrapeFailed = "Could not fetch the listing. Please try again."
	statusEmptySession = "Selected session has no reference imagery yet."
)

// StartScrape runs the cold-start path: scrape the listing, create a
// durable session with one view per candidate image, then zip the two
// result lists positionally into the registry, version sequences, and
// gallery. Failure of either network step leaves all state untouched.
func (e *Engine) StartScrape(ctx context.Context, listingURL string) error {
	trimmed := strings.TrimSpace(listingURL)
	if trimmed == "" {
		e.setStatus(statusEmptyURL)
		return ErrEmptyListingURL
	}

	e.mu.Lock()
	e.scraping = true
	e.status = statusConnecting
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.scraping = false
		e.mu.Unlock()
	}()

	scraped, err := e.remote.Scrape(ctx, trimmed)
	if err != nil {
		e.log.Error("scrape failed", zap.String("listing_url", trimmed), zap.Error(err))
		e.setStatus(statusScrapeFailed)
		return err
	}

	seeds := make([]client.ViewSeed, 0, len(scraped))
	for _, img := range scraped {
		seeds = append(seeds, client.ViewSeed{
			OriginalImage: img.PublicURL,
			EditedImages:  []string{},
			ChatHistory:   []map[string]any{},
		})
	}

	created, err := e.remote.CreateSession(ctx, trimmed, seeds)
	if err != nil {
		e.log.Error("create session failed", zap.String("listing_url", trimmed), zap.Error(err))
		e.setStatus(statusScrapeFailed)
		return err
	}

	// Candidate i maps to created view i.
	cards := make([]types.ImageCard, 0, len(scraped))
	type binding struct{ cardID, viewID, original string }
	bindings := make([]binding, 0, len(scraped))
	for i, img := range scraped {
		card := cardFromScrape(img, i)
		if i < len(created.Views) && created.Views[i].ID != "" {
			view := created.Views[i]
			original := view.OriginalImage
			if original == "" {
				original = img.PublicURL
			}
			card.ViewID = view.ID
			card.ImageURL = original
			bindings = append(bindings, binding{cardID: card.ID, viewID: view.ID, original: original})
		}
		cards = append(cards, card)
	}

	e.history.Reset()
	e.store.Reset()
	for _, b := range bindings {
		e.store.Bind(b.cardID, b.viewID)
		e.history.Track(b.viewID, b.original, nil)
	}

	e.mu.Lock()
	e.cards = cards
	e.selected = nil
	e.liveSessionID = created.SessionID
	e.status = ""
	e.transitionLocked(types.ModeGallery)
	e.mu.Unlock()

	e.log.Info("workspace started",
		zap.String("session_id", created.SessionID),
		zap.Int("views", len(bindings)))

	e.RefreshSavedSessions(ctx)
	return nil
}

// ResumeSession reconstructs the live workspace from a saved session
// snapshot already in the cache. No network calls are made. Supplying a
// target view id that matches a reconstructed card selects it and enters
// the editor; otherwise the gallery opens with no selection.
func (e *Engine) ResumeSession(sessionID, targetViewID string) error {
	e.mu.RLock()
	var session *types.SavedSession
	for i := range e.savedSessions {
		if e.savedSessions[i].ID == sessionID {
			session = &e.savedSessions[i]
			break
		}
	}
	e.mu.RUnlock()

	if session == nil {
		return ErrUnknownSession
	}

	type binding struct {
		viewID   string
		original string
		edited   []string
	}
	cards := make([]types.ImageCard, 0, len(session.Views))
	bindingsByCard := make(map[string]binding)

	for i, view := range session.Views {
		if view.OriginalImage == "" {
			continue
		}
		cardID := view.ID
		if cardID == "" {
			cardID = fmt.Sprintf("%s-view-%d", session.ID, i)
		}
		latest := view.OriginalImage
		if len(view.EditedImages) > 0 {
			latest = view.EditedImages[len(view.EditedImages)-1]
		}
		card := types.ImageCard{
			ID:          cardID,
			Title:       fmt.Sprintf("Session view %d", i+1),
			RoomType:    "Imported",
			Description: "Loaded from saved session",
			ImageURL:    latest,
			Tags:        []string{"saved"},
			ViewID:      view.ID,
		}
		cards = append(cards, card)
		if view.ID != "" {
			bindingsByCard[cardID] = binding{
				viewID:   view.ID,
				original: view.OriginalImage,
				edited:   view.EditedImages,
			}
		}
	}

	if len(cards) == 0 {
		e.setStatus(statusEmptySession)
		return nil
	}

	e.history.Reset()
	e.store.Reset()
	for cardID, b := range bindingsByCard {
		e.store.Bind(cardID, b.viewID)
		e.history.Track(b.viewID, b.original, b.edited)
	}
	// Transcripts and libraries exist for every persisted view, imagery or not.
	for _, view := range session.Views {
		if view.ID == "" {
			continue
		}
		e.store.SetTranscript(view.ID, view.ChatHistory)
		e.store.SetAssets(view.ID, view.Assets)
	}

	var target *types.ImageCard
	if targetViewID != "" {
		for i := range cards {
			viewID := cards[i].ViewID
			if viewID == "" {
				viewID = bindingsByCard[cards[i].ID].viewID
			}
			if viewID == targetViewID {
				selected := cards[i].Clone()
				target = &selected
				break
			}
		}
	}

	e.mu.Lock()
	e.cards = cards
	e.selected = target
	e.liveSessionID = session.ID
	e.timeline = nil
	e.status = ""
	if target != nil {
		e.transitionLocked(types.ModeEditor)
	} else {
		e.transitionLocked(types.ModeGallery)
	}
	e.mu.Unlock()

	e.log.Info("session resumed",
		zap.String("session_id", session.ID),
		zap.Int("views", len(cards)),
		zap.Bool("targeted", target != nil))
	return nil
}

// RefreshSavedSessions reloads the saved-sessions cache. Failures are
// logged and leave the cache unchanged; read aggregation never propagates
// errors to the caller.
func (e *Engine) RefreshSavedSessions(ctx context.Context) {
	e.mu.Lock()
	e.loadingSaved = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.loadingSaved = false
		e.mu.Unlock()
	}()

	records, err := e.remote.FetchSessions(ctx, e.fetchLimit)
	if err != nil {
		e.log.Warn("failed to load previous sessions", zap.Error(err))
		return
	}

	sessions := make([]types.SavedSession, 0, len(records))
	for _, rec := range records {
		sessions = append(sessions, normalizeSavedSession(rec))
	}

	e.mu.Lock()
	e.savedSessions = sessions
	e.mu.Unlock()
}

func (e *Engine) setStatus(status string) {
	e.mu.Lock()
	e.status = status
	e.mu.Unlock()
}

// cardFromScrape builds the gallery card for one scraped candidate. The
// storage path doubles as a stable card id when present.
func cardFromScrape(img client.ScrapedImage, index int) types.ImageCard {
	cardID := img.StoragePath
	if cardID == "" {
		cardID = id.NewCardID().String()
	}
	return types.ImageCard{
		ID:          cardID,
		Title:       fmt.Sprintf("Listing view %d", index+1),
		RoomType:    "Unknown",
		Description: img.SourceURL,
		ImageURL:    img.PublicURL,
		Tags:        []string{"scraped"},
	}
}

// normalizeSavedSession converts one persisted session record into the
// canonical snapshot shape, funneling chat entries through the normalizer.
func normalizeSavedSession(rec client.SessionRecord) types.SavedSession {
	views := make([]types.SavedSessionView, 0, len(rec.Views))
	for _, view := range rec.Views {
		assets := make([]types.AssetItem, 0, len(view.AssetLibrary))
		for _, asset := range view.AssetLibrary {
			assets = append(assets, types.AssetItem{
				ID:       asset.ID,
				Name:     asset.Name,
				ImageURL: asset.URL,
			})
		}
		views = append(views, types.SavedSessionView{
			ID:            view.ID,
			OriginalImage: view.OriginalImage,
			EditedImages:  append([]string(nil), view.EditedImages...),
			ChatHistory:   chat.NormalizeHistory(view.ChatHistory),
			Assets:        assets,
		})
	}
	return types.SavedSession{
		ID:       rec.ID,
		WorkDate: rec.WorkDate,
		Views:    views,
	}
}
