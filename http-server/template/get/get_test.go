package get

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vue-estate/internal/storage"
)

type MockTemplateProvider struct {
	mock.Mock
}

func (m *MockTemplateProvider) List(ctx context.Context) ([]*storage.ExpenseTemplate, error) {
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

func (m *MockTemplateProvider) Get(ctx context.Context, id int64) (*storage.ExpenseTemplate, error) {
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

func TestGetTemplates_Success(t *testing.T) {
	mockProvider := new(MockTemplateProvider)
	mockProvider.On("List", mock.Anything).Return([]*storage.ExpenseTemplate{
		{ID: 1, Name: "Locks", Kind: storage.KindStandard},
		{ID: 2, Name: "Paint", Kind: storage.KindStandard},
	}, nil)

	handler := GetTemplates(slog.Default(), mockProvider)

	req := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp ResponseTemplates
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Templates, 2)
	assert.Equal(t, "Locks", resp.Templates[0].Name)
}

func TestGetTemplate_NotFound(t *testing.T) {
	mockProvider := new(MockTemplateProvider)
	mockProvider.On("Get", mock.Anything, int64(42)).
		Return(nil, fmt.Errorf("template 42: %w", storage.ErrNotFound))

	handler := GetTemplate(slog.Default(), mockProvider)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "42")

	req := httptest.NewRequest(http.MethodGet, "/api/templates/42", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetTemplate_BadID(t *testing.T) {
	mockProvider := new(MockTemplateProvider)

	handler := GetTemplate(slog.Default(), mockProvider)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "abc")

	req := httptest.NewRequest(http.MethodGet, "/api/templates/abc", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockProvider.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}
