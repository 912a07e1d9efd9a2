package api

import (
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nafsma/legis-tracker/app/state"
)

type Handler struct {
	store     *state.Store
	outputDir string
}

func NewHandler(store *state.Store, outputDir string) *Handler {
	return &Handler{store: store, outputDir: outputDir}
}

func (h *Handler) GetHealth(c *gin.Context) {
	snapshot := h.store.Load()

	health := map[string]interface{}{
		"timestamp":     time.Now().In(time.Local).Format(time.RFC3339),
		"tracked_items": snapshot.TrackedCount(),
	}
	if snapshot.LastRun != nil {
		health["last_run"] = *snapshot.LastRun
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetState(c *gin.Context) {
	snapshot := h.store.Load()

	stats := map[string]interface{}{
		"last_run":   snapshot.LastRun,
		"state_file": h.store.Path(),
		"total":      snapshot.TrackedCount(),
		"counts": map[string]int{
			"bills":                      len(snapshot.Bills),
			"federal_register_documents": len(snapshot.FederalRegisterDocuments),
			"committee_items":            len(snapshot.CommitteeItems),
			"committee_meetings":         len(snapshot.CommitteeMeetings),
			"disaster_declarations":      len(snapshot.DisasterDeclarations),
			"watchlist_bills":            len(snapshot.WatchlistBills),
		},
	}

	c.JSON(http.StatusOK, stats)
}

// GetLatestDigest serves the most recent saved digest as markdown.
// Digest filenames embed the date, so the latest file sorts last.
func (h *Handler) GetLatestDigest(c *gin.Context) {
	entries, err := os.ReadDir(h.outputDir)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No digests available"})
		return
	}

	var digests []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && strings.HasPrefix(name, "digest-") && strings.HasSuffix(name, ".md") {
			digests = append(digests, name)
		}
	}
	if len(digests) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No digests available"})
		return
	}

	sort.Strings(digests)
	latest := digests[len(digests)-1]

	content, err := os.ReadFile(filepath.Join(h.outputDir, latest))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read digest"})
		return
	}

	c.Header("Content-Type", "text/markdown; charset=utf-8")
	c.Header("X-Digest-File", latest)
	c.String(http.StatusOK, string(content))
}
