package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func TestScrape(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/images/scrape", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://listings.example/42", body["url"])

		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data": []map[string]string{
				{"source_url": "s1", "public_url": "p1", "storage_path": "path1"},
				{"source_url": "s2", "public_url": "p2", "storage_path": "path2"},
			},
		})
	}))

	images, err := c.Scrape(context.Background(), "https://listings.example/42")
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "p1", images[0].PublicURL)
	assert.Equal(t, "path2", images[1].StoragePath)
}

func TestScrapeEmptyResult(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "success", "data": []any{}})
	}))

	_, err := c.Scrape(context.Background(), "https://listings.example/42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no images returned")
}

func TestCreateSession(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sessions", r.URL.Path)

		var body struct {
			PropertyURL string     `json:"property_url"`
			Views       []ViewSeed `json:"views"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://listings.example/42", body.PropertyURL)
		require.Len(t, body.Views, 1)
		assert.Equal(t, "p1", body.Views[0].OriginalImage)

		json.NewEncoder(w).Encode(CreateSessionResult{
			SessionID: "sess-1",
			ViewCount: 1,
			Views:     []CreatedView{{ID: "view-1", OriginalImage: "p1"}},
		})
	}))

	res, err := c.CreateSession(context.Background(), "https://listings.example/42", []ViewSeed{
		{OriginalImage: "p1", EditedImages: []string{}, ChatHistory: []map[string]any{}},
	})
	require.NoError(t, err)
	assert.Equal(t, "sess-1", res.SessionID)
	require.Len(t, res.Views, 1)
	assert.Equal(t, "view-1", res.Views[0].ID)
}

func TestFetchSessions(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "6", r.URL.Query().Get("limit"))

		json.NewEncoder(w).Encode(map[string]any{
			"sessions": []map[string]any{
				{
					"id":        "sess-1",
					"work_date": "2026-02-14",
					"views": []map[string]any{
						{
							"id":             "view-1",
							"original_image": "orig.png",
							"edited_images":  []string{"e1.png"},
							"chat_history":   []map[string]any{{"id": "m1", "content": "hi"}},
							"asset_library":  []map[string]string{{"id": "a1", "name": "Lamp", "url": "lamp.png"}},
						},
					},
				},
			},
		})
	}))

	sessions, err := c.FetchSessions(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Len(t, sessions[0].Views, 1)
	view := sessions[0].Views[0]
	assert.Equal(t, "orig.png", view.OriginalImage)
	assert.Equal(t, []string{"e1.png"}, view.EditedImages)
	require.Len(t, view.AssetLibrary, 1)
	assert.Equal(t, "Lamp", view.AssetLibrary[0].Name)
}

func TestAppendChat(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/views/view-1/chat", r.URL.Path)

		var entry ChatAppend
		require.NoError(t, json.NewDecoder(r.Body).Decode(&entry))
		assert.Equal(t, "user", entry.Role)
		assert.Equal(t, "brighten the room", entry.Message)

		json.NewEncoder(w).Encode(ChatAppendResult{
			ViewID: "view-1",
			ChatHistory: []map[string]any{
				{"id": "m1", "role": "user", "content": "brighten the room"},
			},
		})
	}))

	res, err := c.AppendChat(context.Background(), "view-1", ChatAppend{Role: "user", Message: "brighten the room"})
	require.NoError(t, err)
	require.Len(t, res.ChatHistory, 1)
}

func TestUploadAssetMultipart(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/views/view-1/assets", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Lamp", r.FormValue("name"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "lamp.png", header.Filename)

		json.NewEncoder(w).Encode(AssetUploadResult{
			Asset:     AssetRecord{ID: "a1", Name: "Lamp", URL: "stored/lamp.png"},
			PublicURL: "https://cdn.example/lamp.png",
			ChatEntry: map[string]any{"id": "m1", "role": "asset", "content": "Uploaded Lamp"},
		})
	}))

	res, err := c.UploadAsset(context.Background(), "view-1", AssetUpload{
		Name:     "Lamp",
		Filename: "lamp.png",
		Content:  []byte{0x89, 'P', 'N', 'G'},
	})
	require.NoError(t, err)
	assert.Equal(t, "a1", res.Asset.ID)
	assert.Equal(t, "https://cdn.example/lamp.png", res.PublicURL)
	assert.NotNil(t, res.ChatEntry)
}

func TestUpdateViewImage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/images/generate", r.URL.Path)

		var gen GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gen))
		assert.Equal(t, "view-1", gen.ViewID)
		assert.Equal(t, "brighten the room", gen.Prompt)
		assert.Equal(t, "cur.png", gen.InputImage)
		assert.Equal(t, "lamp.png", gen.ReferenceImage)

		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data": GenerateResult{
				URL:          "new.png",
				ViewID:       "view-1",
				EditedImages: []string{"new.png"},
			},
		})
	}))

	res, err := c.UpdateViewImage(context.Background(), "view-1", GenerateRequest{
		Prompt:         "brighten the room",
		InputImage:     "cur.png",
		ReferenceImage: "lamp.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "new.png", res.URL)
}

func TestRevertViewImage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/views/view-1/revert", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data": map[string]any{
				"edited_images": []string{"e1.png"},
			},
		})
	}))

	res, err := c.RevertViewImage(context.Background(), "view-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"e1.png"}, res.EditedImages)
	assert.Nil(t, res.ChatHistory, "absent transcript stays nil")
}

func TestDeletes(t *testing.T) {
	var paths []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		paths = append(paths, r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	}))

	ctx := context.Background()
	require.NoError(t, c.DeleteAsset(ctx, "view-1", "a1"))
	require.NoError(t, c.DeleteView(ctx, "view-1"))
	require.NoError(t, c.DeleteSession(ctx, "sess-1"))
	assert.Equal(t, []string{
		"/views/view-1/assets/a1",
		"/views/view-1",
		"/sessions/sess-1",
	}, paths)
}

func TestRemoteFailureSurfacesBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "asset not found", http.StatusNotFound)
	}))

	err := c.DeleteAsset(context.Background(), "view-1", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "asset not found")
	assert.Contains(t, err.Error(), "404")
}
