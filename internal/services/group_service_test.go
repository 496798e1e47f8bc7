package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"wtsplinks/internal/models/db_models"
	"wtsplinks/internal/models/request_models"
	"wtsplinks/internal/repositories"
	"wtsplinks/internal/services"
	"wtsplinks/pkg/utils"
)

type groupFixture struct {
	groups     *MockGroupRepository
	categories *MockCategoryRepository
	embeddings *MockGroupEmbeddingRepository
	embedder   *MockEmbedder
}

func newGroupFixture() *groupFixture {
	return &groupFixture{
		groups:     new(MockGroupRepository),
		categories: new(MockCategoryRepository),
		embeddings: new(MockGroupEmbeddingRepository),
		embedder:   new(MockEmbedder),
	}
}

func (f *groupFixture) service(withEmbedder bool) services.GroupServiceInterface {
	if withEmbedder {
		return services.NewGroupService(f.groups, f.categories, f.embeddings, f.embedder, zap.NewNop())
	}
	return services.NewGroupService(f.groups, f.categories, f.embeddings, nil, zap.NewNop())
}

func techCategory() *db_models.Category {
	return &db_models.Category{BaseModel: db_models.BaseModel{ID: uuid.New()}, Name: "Tech"}
}

func TestCreateGroup_UnknownCategory(t *testing.T) {
	f := newGroupFixture()
	ctx := context.Background()
	missing := uuid.New()
	f.categories.On("GetCategoryByID", ctx, missing).Return(nil, nil)

	_, err := f.service(false).CreateGroup(ctx, request_models.CreateGroupRequest{
		Name: "Go", Description: "d", Link: "https://chat.whatsapp.com/x", CategoryID: missing.String(),
	})

	assert.ErrorIs(t, err, utils.ErrCategoryNotFound)
	f.groups.AssertNotCalled(t, "CreateGroup", mock.Anything, mock.Anything)
}

func TestCreateGroup_EmbedsWhenConfigured(t *testing.T) {
	f := newGroupFixture()
	ctx := context.Background()
	cat := techCategory()
	f.categories.On("GetCategoryByID", ctx, cat.ID).Return(cat, nil)
	f.groups.On("CreateGroup", ctx, mock.AnythingOfType("*db_models.Group")).
		Run(func(args mock.Arguments) { args.Get(1).(*db_models.Group).ID = uuid.New() }).
		Return(uuid.New(), nil)
	f.embedder.On("Embed", ctx, "Go Devs\nCategory: Tech\nGophers").Return([]float32{0.1, 0.2}, nil)
	f.embeddings.On("Upsert", ctx, mock.MatchedBy(func(e *db_models.GroupEmbedding) bool {
		return e.Model == "test/model" && len(e.Embedding.Slice()) == 2
	})).Return(nil)

	out, err := f.service(true).CreateGroup(ctx, request_models.CreateGroupRequest{
		Name: " Go Devs ", Description: "Gophers", Link: "https://chat.whatsapp.com/x", CategoryID: cat.ID.String(),
	})

	require.NoError(t, err)
	assert.Equal(t, "Tech", out.CategoryName)
	f.embeddings.AssertExpectations(t)
}

func TestCreateGroup_EmbeddingFailureDoesNotFailCreate(t *testing.T) {
	f := newGroupFixture()
	ctx := context.Background()
	cat := techCategory()
	f.categories.On("GetCategoryByID", ctx, cat.ID).Return(cat, nil)
	f.groups.On("CreateGroup", ctx, mock.Anything).Return(uuid.New(), nil)
	f.embedder.On("Embed", ctx, mock.Anything).Return(nil, errors.New("quota exceeded"))

	_, err := f.service(true).CreateGroup(ctx, request_models.CreateGroupRequest{
		Name: "Go", Description: "d", Link: "https://chat.whatsapp.com/x", CategoryID: cat.ID.String(),
	})

	require.NoError(t, err)
	f.embeddings.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpdateGroup_NotFound(t *testing.T) {
	f := newGroupFixture()
	ctx := context.Background()
	cat := techCategory()
	f.categories.On("GetCategoryByID", ctx, cat.ID).Return(cat, nil)
	f.groups.On("UpdateGroup", ctx, mock.Anything).Return(gorm.ErrRecordNotFound)

	_, err := f.service(false).UpdateGroup(ctx, uuid.New(), request_models.UpdateGroupRequest{
		Name: "Go", Description: "d", Link: "https://chat.whatsapp.com/x", CategoryID: cat.ID.String(),
	})
	assert.ErrorIs(t, err, utils.ErrGroupNotFound)
}

func TestDeleteGroup_NotFound(t *testing.T) {
	f := newGroupFixture()
	ctx := context.Background()
	id := uuid.New()
	f.groups.On("Delete", ctx, id).Return(gorm.ErrRecordNotFound)

	assert.ErrorIs(t, f.service(false).DeleteGroup(ctx, id), utils.ErrGroupNotFound)
}

func TestListGroups(t *testing.T) {
	f := newGroupFixture()
	ctx := context.Background()
	cat := techCategory()
	f.categories.On("GetCategoryByID", ctx, cat.ID).Return(cat, nil)
	f.groups.On("List", ctx, &cat.ID, 1, 50).Return([]db_models.Group{
		{Name: "A", CategoryID: cat.ID, Category: *cat},
		{Name: "B", CategoryID: cat.ID, Category: *cat},
	}, nil)

	out, err := f.service(false).ListGroups(ctx, &cat.ID, 1, 50)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Tech", out[1].CategoryName)

	missing := uuid.New()
	f.categories.On("GetCategoryByID", ctx, missing).Return(nil, nil)
	_, err = f.service(false).ListGroups(ctx, &missing, 1, 50)
	assert.ErrorIs(t, err, utils.ErrCategoryNotFound)

	_, err = f.service(false).ListGroups(ctx, nil, 0, 50)
	assert.ErrorIs(t, err, utils.ErrInvalidPage)
}

func TestSearchGroups_TextWithoutEmbedder(t *testing.T) {
	f := newGroupFixture()
	ctx := context.Background()
	f.groups.On("SearchText", ctx, "golang", 15).Return([]db_models.Group{{Name: "Golang BR"}}, nil)

	out, err := f.service(false).SearchGroups(ctx, " golang ", 15)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Golang BR", out[0].Name)
}

func TestSearchGroups_Semantic(t *testing.T) {
	f := newGroupFixture()
	ctx := context.Background()
	f.embedder.On("Embed", ctx, "golang").Return([]float32{1, 0}, nil)
	f.embeddings.On("SearchByVector", ctx, mock.Anything, "test/model", 5).Return([]repositories.GroupMatch{
		{ID: uuid.New(), Name: "Gophers", CategoryName: "Tech", Similarity: 0.91},
	}, nil)

	out, err := f.service(true).SearchGroups(ctx, "golang", 5)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.InDelta(t, 0.91, out[0].Similarity, 1e-9)
	f.groups.AssertNotCalled(t, "SearchText", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchGroups_ProviderFailureFallsBackToText(t *testing.T) {
	f := newGroupFixture()
	ctx := context.Background()
	f.embedder.On("Embed", ctx, "golang").Return(nil, errors.New("provider down"))
	f.groups.On("SearchText", ctx, "golang", 5).Return([]db_models.Group{{Name: "Golang BR"}}, nil)

	out, err := f.service(true).SearchGroups(ctx, "golang", 5)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestSearchGroups_EmptyQuery(t *testing.T) {
	f := newGroupFixture()
	out, err := f.service(true).SearchGroups(context.Background(), "   ", 5)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestReindex(t *testing.T) {
	f := newGroupFixture()
	ctx := context.Background()
	ok := db_models.Group{BaseModel: db_models.BaseModel{ID: uuid.New()}, Name: "ok"}
	bad := db_models.Group{BaseModel: db_models.BaseModel{ID: uuid.New()}, Name: "bad"}

	f.groups.On("ListWithoutEmbedding", ctx, "test/model", 100).Return([]db_models.Group{ok, bad}, nil)
	f.embedder.On("Embed", ctx, "ok").Return([]float32{1}, nil)
	f.embedder.On("Embed", ctx, "bad").Return(nil, errors.New("rejected"))
	f.embeddings.On("Upsert", ctx, mock.Anything).Return(nil)

	out, err := f.service(true).Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Indexed)
	assert.Equal(t, 1, out.Failed)
	assert.Equal(t, "test/model", out.Model)
	f.groups.AssertNumberOfCalls(t, "ListWithoutEmbedding", 1)
}

func TestReindex_WithoutEmbedder(t *testing.T) {
	f := newGroupFixture()
	_, err := f.service(false).Reindex(context.Background())
	assert.ErrorIs(t, err, utils.ErrSearchUnavailable)
}
