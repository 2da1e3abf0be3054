package bootstrap

import (
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/pageforge/pageforge-backend/internal/api/http"
	"github.com/pageforge/pageforge-backend/internal/api/http/middleware"
	"github.com/pageforge/pageforge-backend/internal/exports"
	"github.com/pageforge/pageforge-backend/internal/projects/cache"
	projecthttp "github.com/pageforge/pageforge-backend/internal/projects/http"
	"github.com/pageforge/pageforge-backend/internal/projects/repository"
	"github.com/pageforge/pageforge-backend/internal/projects/service"
)

type RouterDeps struct {
	ServiceName  string
	Version      string
	DB           *sql.DB
	Redis        *redis.Client // nil disables list caching
	ListTTL      time.Duration
	ExportDir    string
	ExportPrefix string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	var listCache service.ListCache
	if dep.Redis != nil {
		listCache = cache.NewListCache(dep.Redis, dep.ListTTL)
	}

	repo := repository.NewProjectRepository(dep.DB)
	svc := service.NewProjectService(repo, listCache)

	projectsGroup := r.Group("/projects")
	projecthttp.New(svc).Register(projectsGroup)

	exporter := exports.NewExporter(dep.ExportDir, dep.ExportPrefix)
	exports.NewHandler(exporter).Register(r)

	return r
}
