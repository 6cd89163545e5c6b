package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/appdotbuilder/unimus-dataset-repo/internal/appcontext"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/apperrors"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/http/middleware"
)

type APIService struct {
	engine  *gin.Engine
	context *appcontext.Context
}

func NewHTTPService(ctx *appcontext.Context) *APIService {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORSMiddleware())

	service := &APIService{
		engine:  engine,
		context: ctx,
	}
	service.setupRoutes()
	return service
}

func (h *APIService) Engine() *gin.Engine {
	return h.engine
}

func (h *APIService) setupRoutes() {
	v1 := h.engine.Group("/api/v1")
	h.setupAuthRoutes(v1)
	h.setupUserRoutes(v1)
	h.setupProfileRoutes(v1)
	h.setupDatasetRoutes(v1)
	h.setupFileRoutes(v1)
	h.setupReviewRoutes(v1)
	h.setupReportRoutes(v1)
	h.setupDashboardRoutes(v1)
}

func (h *APIService) setupAuthRoutes(group *gin.RouterGroup) {
	auth := group.Group("/auth")

	auth.POST("/login", Login(h.context))
}

func (h *APIService) setupUserRoutes(group *gin.RouterGroup) {
	users := group.Group("/users")

	users.POST("", CreateUser(h.context))

	protected := users.Group("")
	protected.Use(middleware.JWTAuthMiddleware(h.context.JWTSecret))
	protected.GET("", ListUsers(h.context))
	protected.PATCH("/:userID", UpdateUser(h.context))
	protected.GET("/:userID/profile", GetProfileByUserID(h.context))
	protected.GET("/:userID/datasets", GetDatasetsByContributor(h.context))
}

func (h *APIService) setupProfileRoutes(group *gin.RouterGroup) {
	profiles := group.Group("/profiles")
	profiles.Use(middleware.JWTAuthMiddleware(h.context.JWTSecret))

	profiles.POST("", CreateProfile(h.context))
	profiles.GET("", ListProfiles(h.context))
}

func (h *APIService) setupDatasetRoutes(group *gin.RouterGroup) {
	datasets := group.Group("/datasets")
	datasets.Use(middleware.JWTAuthMiddleware(h.context.JWTSecret))

	datasets.POST("", CreateDataset(h.context))
	datasets.GET("", SearchDatasets(h.context))
	datasets.GET("/:datasetID", GetDataset(h.context))
	datasets.PATCH("/:datasetID", UpdateDataset(h.context))
	datasets.GET("/:datasetID/citation", GetCitation(h.context))
	datasets.POST("/:datasetID/files", UploadDatasetFile(h.context))
	datasets.GET("/:datasetID/files", GetDatasetFiles(h.context))
}

func (h *APIService) setupFileRoutes(group *gin.RouterGroup) {
	files := group.Group("/files")
	files.Use(middleware.JWTAuthMiddleware(h.context.JWTSecret))

	files.GET("/:fileID/preview", PreviewDatasetFile(h.context))
}

func (h *APIService) setupReviewRoutes(group *gin.RouterGroup) {
	reviews := group.Group("/reviews")
	reviews.Use(middleware.JWTAuthMiddleware(h.context.JWTSecret))

	reviews.POST("", CreateReview(h.context))
	reviews.GET("", ListReviews(h.context))
}

func (h *APIService) setupReportRoutes(group *gin.RouterGroup) {
	reports := group.Group("/reports")
	reports.Use(middleware.JWTAuthMiddleware(h.context.JWTSecret))

	reports.GET("", GetReport(h.context))
	reports.GET("/export", ExportReport(h.context))
}

func (h *APIService) setupDashboardRoutes(group *gin.RouterGroup) {
	dashboard := group.Group("/dashboard")
	dashboard.Use(middleware.JWTAuthMiddleware(h.context.JWTSecret))

	dashboard.GET("", GetDashboardStatistics(h.context))
}

// respondError logs the failure and maps the domain error to its
// client-visible status code.
func respondError(ctx *appcontext.Context, c *gin.Context, err error, message string) {
	ctx.Logger.Error(message, zap.Error(err))
	c.JSON(apperrors.HTTPStatus(err), gin.H{"error": message})
}
