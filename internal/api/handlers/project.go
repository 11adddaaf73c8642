package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/wonny/influroi/internal/api/response"
	"github.com/wonny/influroi/internal/domain/scoring"
	svc "github.com/wonny/influroi/internal/service/scoring"
)

// ProjectService 프로젝트 생성/조회/순위
type ProjectService interface {
	CreateProject(ctx context.Context, in svc.ProjectInput) (*scoring.Project, *svc.Task, error)
	ListProjects(ctx context.Context) ([]*scoring.ProjectSummary, error)
	DeleteProject(ctx context.Context, projectID string) error
	Rankings(ctx context.Context, projectID, policy string) (*scoring.ProjectRanking, error)
	Rescore(ctx context.Context, projectID string) (*svc.Task, error)
	ScoringStatus(ctx context.Context, projectID string) (*svc.ScoringStatus, error)
}

// ProjectHandler /api/project
type ProjectHandler struct {
	service   ProjectService
	uploadDir string
}

// NewProjectHandler 생성
func NewProjectHandler(service ProjectService, uploadDir string) *ProjectHandler {
	return &ProjectHandler{service: service, uploadDir: uploadDir}
}

// CreateProjectResponse 생성 응답. 채점은 백그라운드에서 진행된다
type CreateProjectResponse struct {
	ProjectID string           `json:"project_id"`
	Status    string           `json:"status"`
	Project   *scoring.Project `json:"project"`
}

// Create POST /api/project/create (multipart/form-data)
func (h *ProjectHandler) Create(c *gin.Context) {
	in := svc.ProjectInput{
		ProjectID:       svc.NewProjectID(),
		CompanyName:     c.PostForm("company_name"),
		BrandCategories: c.PostForm("brand_categories"),
		BrandTone:       scoring.BrandTone(c.PostForm("brand_tone")),
		CampaignGoal:    c.PostForm("campaign_goal"),
	}

	if err := in.Validate(); err != nil {
		response.FromError(c, err)
		return
	}

	if file, err := c.FormFile("brand_image"); err == nil {
		name := sanitizeFilename(file.Filename)
		if name == "" {
			response.BadRequest(c, "brand_image has no usable filename")
			return
		}
		if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
			response.InternalError(c, fmt.Errorf("create upload dir: %w", err))
			return
		}
		dst := filepath.Join(h.uploadDir, in.ProjectID+"_"+name)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			response.InternalError(c, fmt.Errorf("save brand image: %w", err))
			return
		}
		in.BrandImagePath = dst
	}

	project, _, err := h.service.CreateProject(c.Request.Context(), in)
	if err != nil {
		if in.BrandImagePath != "" {
			if rmErr := os.Remove(in.BrandImagePath); rmErr != nil {
				log.Warn().Err(rmErr).Str("path", in.BrandImagePath).Msg("Failed to remove orphan brand image")
			}
		}
		response.FromError(c, err)
		return
	}

	response.Accepted(c, CreateProjectResponse{
		ProjectID: project.ProjectID,
		Status:    svc.StatusScoring,
		Project:   project,
	}, "Project created, scoring started")
}

// List GET /api/project/list
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.service.ListProjects(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	if projects == nil {
		projects = []*scoring.ProjectSummary{}
	}
	response.SuccessList(c, projects, len(projects))
}

// Youtubers GET /api/project/youtubers/:project_id?policy=curve|percentile|absolute
func (h *ProjectHandler) Youtubers(c *gin.Context) {
	ranking, err := h.service.Rankings(c.Request.Context(), c.Param("project_id"), c.Query("policy"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, ranking)
}

// Delete DELETE /api/project/:project_id
func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID := c.Param("project_id")
	if err := h.service.DeleteProject(c.Request.Context(), projectID); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMessage(c, gin.H{"project_id": projectID}, "Project deleted")
}

// Rescore POST /api/project/rescore/:project_id
// 실행 중인 배치가 있으면 그 작업에 합류한다
func (h *ProjectHandler) Rescore(c *gin.Context) {
	projectID := c.Param("project_id")
	if _, err := h.service.Rescore(c.Request.Context(), projectID); err != nil {
		response.FromError(c, err)
		return
	}
	response.Accepted(c, gin.H{"project_id": projectID, "status": svc.StatusScoring}, "Rescoring started")
}

// Status GET /api/project/status/:project_id
func (h *ProjectHandler) Status(c *gin.Context) {
	status, err := h.service.ScoringStatus(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, status)
}

// sanitizeFilename 경로 구성요소를 제거한 파일명
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}
