package api

import (
	"github.com/gin-gonic/gin"
	"github.com/wonny/influroi/internal/api/handlers"
	"github.com/wonny/influroi/internal/api/middleware"
	"github.com/wonny/influroi/internal/pkg/config"
	"github.com/wonny/influroi/internal/pkg/logger"
	"github.com/wonny/influroi/internal/pkg/metrics"
)

// maxUploadMemory multipart 메모리 버퍼 (초과분은 임시 파일)
const maxUploadMemory = 10 << 20

// Handlers 라우터가 노출하는 핸들러 묶음
type Handlers struct {
	Health   *handlers.HealthHandler
	Project  *handlers.ProjectHandler
	Analysis *handlers.AnalysisHandler
	Compare  *handlers.CompareHandler
	Youtuber *handlers.YoutuberHandler
	Home     *handlers.HomeHandler
}

// Router gin 엔진 + 설정
type Router struct {
	engine   *gin.Engine
	config   *config.Config
	handlers Handlers
}

// NewRouter 미들웨어와 라우트가 구성된 라우터
func NewRouter(cfg *config.Config, h Handlers) *Router {
	gin.SetMode(cfg.Server.Mode)

	engine := gin.New()
	engine.MaxMultipartMemory = maxUploadMemory

	r := &Router{
		engine:   engine,
		config:   cfg,
		handlers: h,
	}

	r.setupMiddlewares()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddlewares() {
	// Recovery 가 가장 바깥
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	logCfg := middleware.LoggingConfig{
		SkipPaths: []string{"/health", "/health/ready", "/metrics"},
	}
	if r.config.Logging.FileEnabled {
		accessLogger := logger.NewAccessLogger(
			r.config.Logging.FilePath,
			r.config.Logging.RotationSize,
			r.config.Logging.RetentionDays,
		)
		logCfg.AccessLogger = &accessLogger
	}
	r.engine.Use(middleware.Logging(logCfg))

	if r.config.Server.Mode == gin.DebugMode {
		r.engine.Use(middleware.CORS(middleware.DevelopmentCORSConfig()))
	} else {
		r.engine.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	}
}

func (r *Router) setupRoutes() {
	h := r.handlers

	r.engine.GET("/health", h.Health.Health)
	r.engine.GET("/health/ready", h.Health.Ready)
	r.engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.engine.Group("/api")
	{
		api.GET("/health/detailed", h.Health.Detailed)

		project := api.Group("/project")
		{
			project.POST("/create", h.Project.Create)
			project.GET("/list", h.Project.List)
			project.GET("/youtubers/:project_id", h.Project.Youtubers)
			project.GET("/status/:project_id", h.Project.Status)
			project.POST("/rescore/:project_id", h.Project.Rescore)
			project.DELETE("/:project_id", h.Project.Delete)
		}

		analysis := api.Group("/analysis")
		{
			analysis.GET("/brand-match/:project_id/:channel_id", h.Analysis.BrandMatch)
			analysis.GET("/sentiment/:project_id/:channel_id", h.Analysis.Sentiment)
			analysis.GET("/roi-estimate/:project_id/:channel_id", h.Analysis.ROIEstimate)
			analysis.GET("/total-score/:project_id/:channel_id", h.Analysis.TotalScore)
		}

		compare := api.Group("/compare")
		{
			compare.POST("/channels", h.Compare.Channels)
			compare.POST("/weights", h.Compare.Weights)
		}

		youtuber := api.Group("/youtuber")
		{
			youtuber.GET("/:channel_id/profile", h.Youtuber.Profile)
			youtuber.GET("/:channel_id/videos", h.Youtuber.Videos)
			youtuber.GET("/:channel_id/stats", h.Youtuber.Stats)
		}

		home := api.Group("/home")
		{
			home.GET("/youtubers", h.Home.Youtubers)
			home.GET("/youtubers/sorted", h.Home.Sorted)
			home.GET("/popular", h.Home.Popular)
		}
	}
}

// Engine gin 엔진 (http.Server Handler)
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
