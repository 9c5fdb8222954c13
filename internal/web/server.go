package web

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Aghostraa/task-extractor-app/internal/core"
	"github.com/Aghostraa/task-extractor-app/internal/prefs"
)

// Engine is the operation surface the handlers call.
type Engine interface {
	ExtractAndSave(ctx context.Context, text string, folderID *string) ([]*core.Task, error)
	CreateOrUpdate(draft core.TaskDraft) (*core.Task, error)
	GetTask(id string) (*core.Task, error)
	ListTasks() ([]*core.Task, error)
	ViewTasks(view core.View, folderID *string) ([]*core.Task, error)
	ViewCounts() (core.CountSet, error)
	KanbanView(folderID *string) (core.KanbanBoard, error)
	UpdateStatus(id, status string) (*core.Task, error)
	ToggleFlag(id string) (*core.Task, error)
	Complete(id string) (*core.Task, error)
	AssignFolder(id string, folderID *string) (*core.Task, error)
	DeleteTask(id string) error
	CreateFolder(draft core.FolderDraft) (*core.Folder, error)
	GetFolder(id string) (*core.Folder, error)
	ListFolders() ([]*core.Folder, error)
	UpdateFolder(id string, draft core.FolderDraft) (*core.Folder, error)
	DeleteFolder(id string) error
}

// Server is the task API server
type Server struct {
	engine Engine
	prefs  *prefs.Store
	router *gin.Engine
}

// NewServer creates a new web server
func NewServer(engine Engine, prefStore *prefs.Store) *Server {
	router := gin.Default()

	s := &Server{
		engine: engine,
		prefs:  prefStore,
		router: router,
	}

	api := router.Group("/api")
	{
		api.POST("/tasks/extract", s.handleExtract)
		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleSaveTask)
		api.PUT("/tasks/:id/status", s.handleUpdateStatus)
		api.POST("/tasks/:id/flag", s.handleToggleFlag)
		api.POST("/tasks/:id/complete", s.handleComplete)
		api.PUT("/tasks/:id/folder", s.handleAssignFolder)
		api.DELETE("/tasks/:id", s.handleDeleteTask)

		api.GET("/counts", s.handleCounts)
		api.GET("/kanban", s.handleKanban)

		api.GET("/folders", s.handleListFolders)
		api.POST("/folders", s.handleCreateFolder)
		api.PUT("/folders/:id", s.handleUpdateFolder)
		api.DELETE("/folders/:id", s.handleDeleteFolder)

		api.GET("/prefs", s.handleGetPrefs)
		api.PUT("/prefs", s.handleSetPrefs)
	}

	return s
}

// Handler exposes the router so callers can wrap it with middleware and
// their own http.Server.
func (s *Server) Handler() *gin.Engine {
	return s.router
}

// Run starts the web server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
