package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/appdotbuilder/unimus-dataset-repo/internal/appcontext"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/apperrors"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/entity"
)

func setupContext(t *testing.T) *appcontext.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Profile{}, &entity.Dataset{}, &entity.DatasetFile{}, &entity.CurationReview{},
	))

	return &appcontext.Context{
		DB:        db,
		Logger:    zap.NewNop(),
		JWTSecret: "test-secret",
	}
}

func setupRouter(ctx *appcontext.Context) *gin.Engine {
	engine := gin.New()
	engine.POST("/profiles", CreateProfile(ctx))
	engine.GET("/users/:userID/profile", GetProfileByUserID(ctx))
	engine.GET("/datasets/:datasetID", GetDataset(ctx))
	engine.GET("/reports/export", ExportReport(ctx))
	return engine
}

func seedHandlerUser(t *testing.T, db *gorm.DB, role entity.UserRole) *entity.User {
	t.Helper()
	user := entity.User{
		Email:    fmt.Sprintf("%s@example.edu", uuid.NewString()),
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func performJSON(router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCreateProfileSecondProfileConflict(t *testing.T) {
	ctx := setupContext(t)
	router := setupRouter(ctx)
	user := seedHandlerUser(t, ctx.DB, entity.RoleContributor)

	first := performJSON(router, "POST", "/profiles", gin.H{
		"user_id":     user.ID,
		"type":        "lecturer",
		"institution": "Unimus",
		"department":  "Informatics",
	})
	assert.Equal(t, http.StatusCreated, first.Code)

	second := performJSON(router, "POST", "/profiles", gin.H{
		"user_id":     user.ID,
		"type":        "student",
		"institution": "Unimus",
		"department":  "Mathematics",
	})
	assert.Equal(t, http.StatusConflict, second.Code)

	var count int64
	require.NoError(t, ctx.DB.Model(&entity.Profile{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestProfileUniqueIndexDuplicateKey(t *testing.T) {
	ctx := setupContext(t)
	user := seedHandlerUser(t, ctx.DB, entity.RoleContributor)

	require.NoError(t, ctx.DB.Create(&entity.Profile{
		UserID:      user.ID,
		Type:        entity.ProfileLecturer,
		Institution: "Unimus",
		Department:  "Informatics",
	}).Error)

	err := ctx.DB.Create(&entity.Profile{
		UserID:      user.ID,
		Type:        entity.ProfileStudent,
		Institution: "Unimus",
		Department:  "Mathematics",
	}).Error
	require.Error(t, err)
	assert.ErrorIs(t, apperrors.Translate(err), apperrors.ErrConflict)
}

func TestExportReportFormatCaseInsensitive(t *testing.T) {
	ctx := setupContext(t)
	router := setupRouter(ctx)

	recorder := performJSON(router, "GET", "/reports/export?format=EXCEL", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/vnd.ms-excel", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=report.xls", recorder.Header().Get("Content-Disposition"))

	recorder = performJSON(router, "GET", "/reports/export", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/csv", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=report.csv", recorder.Header().Get("Content-Disposition"))
}

func TestGetDatasetAbsentVersusFailure(t *testing.T) {
	ctx := setupContext(t)
	router := setupRouter(ctx)

	recorder := performJSON(router, "GET", "/datasets/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Dataset *entity.Dataset `json:"dataset"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Nil(t, response.Dataset)

	sqlDB, err := ctx.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	recorder = performJSON(router, "GET", "/datasets/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestGetProfileByUserIDAbsentVersusFailure(t *testing.T) {
	ctx := setupContext(t)
	router := setupRouter(ctx)

	recorder := performJSON(router, "GET", "/users/"+uuid.NewString()+"/profile", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Profile *entity.Profile `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Nil(t, response.Profile)

	sqlDB, err := ctx.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	recorder = performJSON(router, "GET", "/users/"+uuid.NewString()+"/profile", nil)
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
