package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aghostraa/task-extractor-app/internal/core"
	"github.com/Aghostraa/task-extractor-app/internal/prefs"
)

const maxTextSize = 10 << 10 // 10KB

// respondError maps an operation error onto an HTTP status. Unclassified
// errors are treated as persistence failures.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrValidation), errors.Is(err, core.ErrInvalidStatus):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrNoExtractableJSON), errors.Is(err, core.ErrMalformedExtraction):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrUpstream):
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

// folderParam reads the optional folder query parameter as a nullable id.
func folderParam(c *gin.Context) *string {
	if folder := c.Query("folder"); folder != "" {
		return &folder
	}
	return nil
}

func (s *Server) handleExtract(c *gin.Context) {
	var req struct {
		Text     string  `json:"text"`
		FolderID *string `json:"folderId"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	if len(req.Text) > maxTextSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "text exceeds maximum size of 10KB",
		})
		return
	}

	tasks, err := s.engine.ExtractAndSave(c.Request.Context(), req.Text, req.FolderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"tasks":   tasks,
		"count":   len(tasks),
	})
}

func (s *Server) handleListTasks(c *gin.Context) {
	folderID := folderParam(c)

	var tasks []*core.Task
	var err error
	if view := c.Query("view"); view != "" {
		tasks, err = s.engine.ViewTasks(core.View(view), folderID)
	} else if folderID != nil {
		tasks, err = s.engine.ViewTasks(core.ViewAll, folderID)
	} else {
		tasks, err = s.engine.ListTasks()
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tasks":   tasks,
		"count":   len(tasks),
	})
}

func (s *Server) handleSaveTask(c *gin.Context) {
	var draft core.TaskDraft
	if err := c.BindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	creating := draft.ID == ""
	task, err := s.engine.CreateOrUpdate(draft)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if creating {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"success": true,
		"task":    task,
	})
}

func (s *Server) handleUpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	task, err := s.engine.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"task":    task,
	})
}

func (s *Server) handleToggleFlag(c *gin.Context) {
	task, err := s.engine.ToggleFlag(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"task":    task,
	})
}

func (s *Server) handleComplete(c *gin.Context) {
	task, err := s.engine.Complete(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"task":    task,
	})
}

func (s *Server) handleAssignFolder(c *gin.Context) {
	var req struct {
		FolderID *string `json:"folderId"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	task, err := s.engine.AssignFolder(c.Param("id"), req.FolderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"task":    task,
	})
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.engine.DeleteTask(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task deleted",
	})
}

func (s *Server) handleCounts(c *gin.Context) {
	counts, err := s.engine.ViewCounts()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"counts":  counts,
	})
}

func (s *Server) handleKanban(c *gin.Context) {
	board, err := s.engine.KanbanView(folderParam(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"board":   board,
	})
}

func (s *Server) handleListFolders(c *gin.Context) {
	folders, err := s.engine.ListFolders()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"folders": folders,
		"count":   len(folders),
	})
}

func (s *Server) handleCreateFolder(c *gin.Context) {
	var draft core.FolderDraft
	if err := c.BindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	folder, err := s.engine.CreateFolder(draft)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"folder":  folder,
	})
}

func (s *Server) handleUpdateFolder(c *gin.Context) {
	var draft core.FolderDraft
	if err := c.BindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	folder, err := s.engine.UpdateFolder(c.Param("id"), draft)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"folder":  folder,
	})
}

func (s *Server) handleDeleteFolder(c *gin.Context) {
	if err := s.engine.DeleteFolder(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Folder deleted",
	})
}

func (s *Server) handleGetPrefs(c *gin.Context) {
	p, err := s.prefs.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	// A saved folder may have been deleted since; hand back a cleared
	// selection rather than a dangling id.
	if p.FolderID != nil {
		if _, err := s.engine.GetFolder(*p.FolderID); err != nil {
			p.FolderID = nil
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"prefs":   p,
	})
}

func (s *Server) handleSetPrefs(c *gin.Context) {
	var p prefs.Prefs
	if err := c.BindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	if !core.ValidView(p.View) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "unknown view",
		})
		return
	}

	if err := s.prefs.Save(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"prefs":   p,
	})
}
