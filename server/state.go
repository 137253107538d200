package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/aegis/bookmarks"
	"github.com/poiesic/aegis/core"
	"github.com/poiesic/aegis/storage"
)

type bookmarkState struct {
	ResourceID string `json:"resourceId"`
	Bookmarked bool   `json:"bookmarked"`
	Changed    bool   `json:"changed"`
}

type historyRequest struct {
	Query string `json:"query" binding:"required"`
}

type presetRequest struct {
	Name    string             `json:"name" binding:"required"`
	Filters core.PresetFilters `json:"filters"`
}

func (s *Server) listBookmarks(c *gin.Context) {
	list, err := s.stores.Bookmarks.List(c.Request.Context())
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": list, "total": len(list)})
}

func (s *Server) addBookmark(c *gin.Context) {
	id := c.Param("id")
	if _, ok := s.catalog.ResourceByID(id); !ok {
		s.fail(c, http.StatusNotFound, fmt.Errorf("resource %q not found", id))
		return
	}
	added, err := s.stores.Bookmarks.Add(c.Request.Context(), id)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, bookmarkState{ResourceID: id, Bookmarked: true, Changed: added})
}

func (s *Server) removeBookmark(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	had, err := s.stores.Bookmarks.Has(ctx, id)
	if err == nil && had {
		err = s.stores.Bookmarks.Remove(ctx, id)
	}
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, bookmarkState{ResourceID: id, Bookmarked: false, Changed: had})
}

func (s *Server) clearBookmarks(c *gin.Context) {
	if err := s.stores.Bookmarks.Clear(c.Request.Context()); err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) exportBookmarks(c *gin.Context) {
	var catalog []core.Resource
	if c.Query("resources") == "true" {
		catalog = s.catalog.Resources()
	}
	export, err := bookmarks.NewExport(c.Request.Context(), s.stores.Bookmarks, catalog)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", bookmarks.FileName(time.Now())))
	c.JSON(http.StatusOK, export)
}

func (s *Server) importBookmarks(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	result, err := bookmarks.Import(c.Request.Context(), s.stores.Bookmarks, data)
	switch {
	case errors.Is(err, bookmarks.ErrStorageFailed):
		s.fail(c, http.StatusInternalServerError, err)
	case err != nil:
		s.fail(c, http.StatusBadRequest, err)
	default:
		c.JSON(http.StatusOK, result)
	}
}

func (s *Server) listHistory(c *gin.Context) {
	entries, err := s.stores.History.List(c.Request.Context())
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

func (s *Server) addHistory(c *gin.Context) {
	var req historyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	recorded, err := s.stores.History.Add(c.Request.Context(), req.Query)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recorded": recorded})
}

func (s *Server) clearHistory(c *gin.Context) {
	if err := s.stores.History.Clear(c.Request.Context()); err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) removeHistory(c *gin.Context) {
	if err := s.stores.History.Remove(c.Request.Context(), c.Param("query")); err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listPresets(c *gin.Context) {
	presets, err := s.stores.Presets.List(c.Request.Context())
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"presets": presets})
}

func (s *Server) savePreset(c *gin.Context) {
	var req presetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	preset, err := s.stores.Presets.Save(c.Request.Context(), req.Name, req.Filters)
	switch {
	case errors.Is(err, storage.ErrInvalidPresetName):
		s.fail(c, http.StatusBadRequest, err)
	case errors.Is(err, storage.ErrPresetLimitReached):
		s.fail(c, http.StatusConflict, err)
	case err != nil:
		s.fail(c, http.StatusInternalServerError, err)
	default:
		c.JSON(http.StatusOK, preset)
	}
}

func (s *Server) getPreset(c *gin.Context) {
	preset, err := s.stores.Presets.Load(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.fail(c, http.StatusNotFound, fmt.Errorf("preset %q not found", c.Param("id")))
	case err != nil:
		s.fail(c, http.StatusInternalServerError, err)
	default:
		c.JSON(http.StatusOK, preset)
	}
}

func (s *Server) deletePreset(c *gin.Context) {
	existed, err := s.stores.Presets.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case err != nil:
		s.fail(c, http.StatusInternalServerError, err)
	case !existed:
		s.fail(c, http.StatusNotFound, fmt.Errorf("preset %q not found", c.Param("id")))
	default:
		c.Status(http.StatusNoContent)
	}
}
