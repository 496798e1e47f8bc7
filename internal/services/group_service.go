package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"wtsplinks/internal/embedding"
	"wtsplinks/internal/models/db_models"
	"wtsplinks/internal/models/request_models"
	"wtsplinks/internal/models/response_models"
	"wtsplinks/internal/repositories"
	"wtsplinks/pkg/utils"
)

const reindexBatchSize = 100

type GroupServiceInterface interface {
	ListGroups(ctx context.Context, categoryID *uuid.UUID, page, pageSize int) ([]response_models.GroupResponse, error)
	GetGroup(ctx context.Context, id uuid.UUID) (*response_models.GroupResponse, error)
	CreateGroup(ctx context.Context, request request_models.CreateGroupRequest) (*response_models.GroupResponse, error)
	UpdateGroup(ctx context.Context, id uuid.UUID, request request_models.UpdateGroupRequest) (*response_models.GroupResponse, error)
	DeleteGroup(ctx context.Context, id uuid.UUID) error
	SearchGroups(ctx context.Context, query string, limit int) ([]response_models.GroupResponse, error)
	Reindex(ctx context.Context) (*response_models.ReindexResponse, error)
}

type GroupService struct {
	groupRepo     repositories.GroupRepository
	categoryRepo  repositories.CategoryRepositoryInterface
	embeddingRepo repositories.IGroupEmbeddingRepository
	embedder      embedding.Embedder
	logger        *zap.Logger
}

// NewGroupService wires the group service. embedder may be nil, in which case search falls
// back to substring matching and Reindex is unavailable.
func NewGroupService(
	groupRepo repositories.GroupRepository,
	categoryRepo repositories.CategoryRepositoryInterface,
	embeddingRepo repositories.IGroupEmbeddingRepository,
	embedder embedding.Embedder,
	logger *zap.Logger,
) GroupServiceInterface {
	return &GroupService{
		groupRepo:     groupRepo,
		categoryRepo:  categoryRepo,
		embeddingRepo: embeddingRepo,
		embedder:      embedder,
		logger:        logger.Named("group"),
	}
}

func (s *GroupService) ListGroups(ctx context.Context, categoryID *uuid.UUID, page, pageSize int) ([]response_models.GroupResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 200 {
		return nil, utils.ErrInvalidPageSize
	}

	if categoryID != nil {
		category, err := s.categoryRepo.GetCategoryByID(ctx, *categoryID)
		if err != nil {
			s.logger.Error("get category", zap.Error(err))
			return nil, utils.ErrDatabaseError
		}
		if category == nil {
			return nil, utils.ErrCategoryNotFound
		}
	}

	groups, err := s.groupRepo.List(ctx, categoryID, page, pageSize)
	if err != nil {
		s.logger.Error("list groups", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return toGroupResponses(groups), nil
}

func (s *GroupService) GetGroup(ctx context.Context, id uuid.UUID) (*response_models.GroupResponse, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("get group", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if group == nil {
		return nil, utils.ErrGroupNotFound
	}
	resp := toGroupResponse(group)
	return &resp, nil
}

func (s *GroupService) CreateGroup(ctx context.Context, request request_models.CreateGroupRequest) (*response_models.GroupResponse, error) {
	category, err := s.requireCategory(ctx, request.CategoryID)
	if err != nil {
		return nil, err
	}

	group := &db_models.Group{
		Name:        strings.TrimSpace(request.Name),
		Description: strings.TrimSpace(request.Description),
		Link:        strings.TrimSpace(request.Link),
		CategoryID:  category.ID,
	}
	if _, err := s.groupRepo.CreateGroup(ctx, group); err != nil {
		s.logger.Error("create group", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	group.Category = *category

	s.indexGroup(ctx, group)

	resp := toGroupResponse(group)
	return &resp, nil
}

func (s *GroupService) UpdateGroup(ctx context.Context, id uuid.UUID, request request_models.UpdateGroupRequest) (*response_models.GroupResponse, error) {
	category, err := s.requireCategory(ctx, request.CategoryID)
	if err != nil {
		return nil, err
	}

	group := &db_models.Group{
		BaseModel:   db_models.BaseModel{ID: id},
		Name:        strings.TrimSpace(request.Name),
		Description: strings.TrimSpace(request.Description),
		Link:        strings.TrimSpace(request.Link),
		CategoryID:  category.ID,
	}
	if err := s.groupRepo.UpdateGroup(ctx, group); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrGroupNotFound
		}
		s.logger.Error("update group", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	group.Category = *category

	s.indexGroup(ctx, group)

	resp := toGroupResponse(group)
	return &resp, nil
}

func (s *GroupService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	if err := s.groupRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrGroupNotFound
		}
		s.logger.Error("delete group", zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

// SearchGroups ranks groups by embedding similarity when an embedder is configured. When
// there is none, or the provider call fails, it falls back to substring matching.
func (s *GroupService) SearchGroups(ctx context.Context, query string, limit int) ([]response_models.GroupResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []response_models.GroupResponse{}, nil
	}

	if s.embedder != nil {
		results, err := s.searchSemantic(ctx, query, limit)
		if err == nil {
			return results, nil
		}
		if errors.Is(err, utils.ErrDatabaseError) {
			return nil, err
		}
		s.logger.Warn("semantic search failed, using text search", zap.Error(err))
	}

	groups, err := s.groupRepo.SearchText(ctx, query, limit)
	if err != nil {
		s.logger.Error("search groups", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return toGroupResponses(groups), nil
}

func (s *GroupService) searchSemantic(ctx context.Context, query string, limit int) ([]response_models.GroupResponse, error) {
	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	matches, err := s.embeddingRepo.SearchByVector(ctx, pgvector.NewVector(vec), s.embedder.Model(), limit)
	if err != nil {
		s.logger.Error("search by vector", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.GroupResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, response_models.GroupResponse{
			ID:           m.ID.String(),
			Name:         m.Name,
			Description:  m.Description,
			Link:         m.Link,
			CategoryID:   m.CategoryID.String(),
			CategoryName: m.CategoryName,
			Similarity:   m.Similarity,
		})
	}
	return out, nil
}

// Reindex embeds every group that has no vector for the active model. Groups the provider
// keeps rejecting are counted as failed and left for the next run.
func (s *GroupService) Reindex(ctx context.Context) (*response_models.ReindexResponse, error) {
	if s.embedder == nil {
		return nil, utils.ErrSearchUnavailable
	}

	resp := &response_models.ReindexResponse{Model: s.embedder.Model()}
	for {
		groups, err := s.groupRepo.ListWithoutEmbedding(ctx, s.embedder.Model(), reindexBatchSize)
		if err != nil {
			s.logger.Error("list groups without embedding", zap.Error(err))
			return nil, utils.ErrDatabaseError
		}

		indexed := 0
		for i := range groups {
			if err := s.embedGroup(ctx, &groups[i]); err != nil {
				resp.Failed++
				s.logger.Warn("embed group", zap.String("group_id", groups[i].ID.String()), zap.Error(err))
				continue
			}
			indexed++
		}
		resp.Indexed += indexed

		// A short batch is the last one, and a batch with no progress would repeat forever.
		if len(groups) < reindexBatchSize || indexed == 0 {
			break
		}
	}

	s.logger.Info("reindex finished",
		zap.String("model", resp.Model),
		zap.Int("indexed", resp.Indexed),
		zap.Int("failed", resp.Failed))
	return resp, nil
}

// indexGroup embeds a freshly written group. Failures are logged and left for Reindex.
func (s *GroupService) indexGroup(ctx context.Context, group *db_models.Group) {
	if s.embedder == nil {
		return
	}
	if err := s.embedGroup(ctx, group); err != nil {
		s.logger.Warn("embed group", zap.String("group_id", group.ID.String()), zap.Error(err))
	}
}

func (s *GroupService) embedGroup(ctx context.Context, group *db_models.Group) error {
	text := embedding.GroupText(group.Name, group.Description, group.Category.Name)
	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return err
	}
	return s.embeddingRepo.Upsert(ctx, &db_models.GroupEmbedding{
		GroupID:   group.ID,
		Model:     s.embedder.Model(),
		Embedding: pgvector.NewVector(vec),
	})
}

func (s *GroupService) requireCategory(ctx context.Context, rawID string) (*db_models.Category, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return nil, utils.ErrCategoryNotFound
	}
	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		s.logger.Error("get category", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if category == nil {
		return nil, utils.ErrCategoryNotFound
	}
	return category, nil
}

func toGroupResponse(g *db_models.Group) response_models.GroupResponse {
	return response_models.GroupResponse{
		ID:           g.ID.String(),
		Name:         g.Name,
		Description:  g.Description,
		Link:         g.Link,
		CategoryID:   g.CategoryID.String(),
		CategoryName: g.Category.Name,
	}
}

func toGroupResponses(groups []db_models.Group) []response_models.GroupResponse {
	out := make([]response_models.GroupResponse, 0, len(groups))
	for i := range groups {
		out = append(out, toGroupResponse(&groups[i]))
	}
	return out
}
