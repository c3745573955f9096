package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vue-estate/internal/storage"
)

type MockTemplateStorage struct {
	mock.Mock
}

func (m *MockTemplateStorage) ListTemplates(ctx context.Context) ([]*storage.ExpenseTemplate, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	templates, ok := args.Get(0).([]*storage.ExpenseTemplate)
	if !ok {
		return nil, fmt.Errorf("expected []*storage.ExpenseTemplate, got %T", args.Get(0))
	}

	return templates, args.Error(1)
}

func (m *MockTemplateStorage) GetTemplate(ctx context.Context, id int64) (*storage.ExpenseTemplate, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	tmpl, ok := args.Get(0).(*storage.ExpenseTemplate)
	if !ok {
		return nil, fmt.Errorf("expected *storage.ExpenseTemplate, got %T", args.Get(0))
	}

	return tmpl, args.Error(1)
}

func (m *MockTemplateStorage) InsertTemplate(ctx context.Context, tmpl storage.ExpenseTemplate) (int64, error) {
	args := m.Called(ctx, tmpl)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTemplateStorage) UpdateTemplate(ctx context.Context, id int64, update storage.TemplateUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockTemplateStorage) DeleteTemplate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTemplateStorage) CountLineItemsByTemplate(ctx context.Context, templateID int64) (int64, error) {
	args := m.Called(ctx, templateID)
	return args.Get(0).(int64), args.Error(1)
}

func existingTemplates() []*storage.ExpenseTemplate {
	return []*storage.ExpenseTemplate{
		{ID: 1, Name: "Paint", Kind: storage.KindStandard},
		{ID: 2, Name: "Locks", Kind: storage.KindStandard},
	}
}

func TestCreate_TrimsAndInserts(t *testing.T) {
	mockStorage := new(MockTemplateStorage)
	mockStorage.On("ListTemplates", mock.Anything).Return(existingTemplates(), nil)
	mockStorage.On("InsertTemplate", mock.Anything, mock.MatchedBy(func(tmpl storage.ExpenseTemplate) bool {
		return tmpl.Name == "Flooring" && tmpl.Description == "Per room" && tmpl.Kind == storage.KindStandard
	})).Return(int64(3), nil)

	service := NewCatalogService(mockStorage)

	id, err := service.Create(context.Background(), storage.ExpenseTemplate{
		Name:        "  Flooring  ",
		Description: " Per room ",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	mockStorage.AssertExpectations(t)
}

func TestCreate_DuplicateName(t *testing.T) {
	mockStorage := new(MockTemplateStorage)
	mockStorage.On("ListTemplates", mock.Anything).Return(existingTemplates(), nil)

	service := NewCatalogService(mockStorage)

	_, err := service.Create(context.Background(), storage.ExpenseTemplate{Name: " Paint "})

	var ve *storage.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)
	mockStorage.AssertNotCalled(t, "InsertTemplate", mock.Anything, mock.Anything)
}

func TestCreate_NameValidation(t *testing.T) {
	mockStorage := new(MockTemplateStorage)

	service := NewCatalogService(mockStorage)

	_, err := service.Create(context.Background(), storage.ExpenseTemplate{Name: "   "})
	assert.True(t, storage.IsValidation(err), "empty name rejected")

	_, err = service.Create(context.Background(), storage.ExpenseTemplate{Name: "a name of twenty-one c"})
	assert.True(t, storage.IsValidation(err), "over-long name rejected")

	mockStorage.AssertNotCalled(t, "InsertTemplate", mock.Anything, mock.Anything)
}

func TestCreate_KindValidation(t *testing.T) {
	mockStorage := new(MockTemplateStorage)
	mockStorage.On("ListTemplates", mock.Anything).Return(existingTemplates(), nil)
	mockStorage.On("InsertTemplate", mock.Anything, mock.MatchedBy(func(tmpl storage.ExpenseTemplate) bool {
		return tmpl.Kind == storage.KindStandard
	})).Return(int64(3), nil)

	service := NewCatalogService(mockStorage)

	_, err := service.Create(context.Background(), storage.ExpenseTemplate{
		Name: "Flooring",
		Kind: storage.TemplateKind("percentage"),
	})
	var ve *storage.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "kind", ve.Field)

	// An omitted kind defaults to standard rather than being rejected.
	id, err := service.Create(context.Background(), storage.ExpenseTemplate{Name: "Flooring"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	mockStorage.AssertExpectations(t)
}

func TestUpdate_RejectsUnknownKind(t *testing.T) {
	mockStorage := new(MockTemplateStorage)
	mockStorage.On("GetTemplate", mock.Anything, int64(1)).Return(existingTemplates()[0], nil)

	service := NewCatalogService(mockStorage)

	bogus := storage.TemplateKind("percentage")
	err := service.Update(context.Background(), 1, storage.TemplateUpdate{Kind: &bogus})
	var ve *storage.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "kind", ve.Field)

	// Unlike create, an explicit empty kind on update is a client mistake.
	empty := storage.TemplateKind("")
	err = service.Update(context.Background(), 1, storage.TemplateUpdate{Kind: &empty})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "kind", ve.Field)

	mockStorage.AssertNotCalled(t, "UpdateTemplate", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_DuplicateNameExcludesSelf(t *testing.T) {
	mockStorage := new(MockTemplateStorage)
	mockStorage.On("GetTemplate", mock.Anything, int64(1)).Return(existingTemplates()[0], nil)
	mockStorage.On("ListTemplates", mock.Anything).Return(existingTemplates(), nil)
	mockStorage.On("UpdateTemplate", mock.Anything, int64(1), mock.Anything).Return(nil)

	service := NewCatalogService(mockStorage)

	// Renaming a template to its own name is fine.
	name := "Paint"
	err := service.Update(context.Background(), 1, storage.TemplateUpdate{Name: &name})
	require.NoError(t, err)

	// Renaming it to another template's name is not.
	taken := "Locks"
	err = service.Update(context.Background(), 1, storage.TemplateUpdate{Name: &taken})
	var ve *storage.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)
}

func TestUpdate_NotFound(t *testing.T) {
	mockStorage := new(MockTemplateStorage)
	mockStorage.On("GetTemplate", mock.Anything, int64(99)).Return(nil, fmt.Errorf("template 99: %w", storage.ErrNotFound))

	service := NewCatalogService(mockStorage)

	name := "Anything"
	err := service.Update(context.Background(), 99, storage.TemplateUpdate{Name: &name})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDelete_ReferencedTemplate(t *testing.T) {
	mockStorage := new(MockTemplateStorage)
	mockStorage.On("GetTemplate", mock.Anything, int64(1)).Return(existingTemplates()[0], nil)
	mockStorage.On("CountLineItemsByTemplate", mock.Anything, int64(1)).Return(int64(3), nil)

	service := NewCatalogService(mockStorage)

	err := service.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, storage.ErrConflict)
	mockStorage.AssertNotCalled(t, "DeleteTemplate", mock.Anything, mock.Anything)
}

func TestDelete_UnreferencedTemplate(t *testing.T) {
	mockStorage := new(MockTemplateStorage)
	mockStorage.On("GetTemplate", mock.Anything, int64(2)).Return(existingTemplates()[1], nil)
	mockStorage.On("CountLineItemsByTemplate", mock.Anything, int64(2)).Return(int64(0), nil)
	mockStorage.On("DeleteTemplate", mock.Anything, int64(2)).Return(nil)

	service := NewCatalogService(mockStorage)

	err := service.Delete(context.Background(), 2)
	require.NoError(t, err)
	mockStorage.AssertExpectations(t)
}
