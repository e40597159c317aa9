package catalog_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/foodorder/pkg/file"
	"github.com/dmitrymomot/foodorder/svc/catalog"
)

// MockStorage is a mock implementation of catalog.Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) ListFoods(ctx context.Context, offset, limit int) ([]*catalog.Food, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Food), args.Error(1)
}

func (m *MockStorage) GetFood(ctx context.Context, id string) (*catalog.Food, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Food), args.Error(1)
}

func (m *MockStorage) GetFoodByName(ctx context.Context, name string) (*catalog.Food, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Food), args.Error(1)
}

func (m *MockStorage) CreateFood(ctx context.Context, food *catalog.Food) error {
	args := m.Called(ctx, food)
	return args.Error(0)
}

func (m *MockStorage) UpdateFood(ctx context.Context, id string, upd catalog.FoodUpdate) (*catalog.Food, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Food), args.Error(1)
}

func (m *MockStorage) DeleteFood(ctx context.Context, id string) (*catalog.Food, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Food), args.Error(1)
}

func (m *MockStorage) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Category), args.Error(1)
}

func (m *MockStorage) GetCategory(ctx context.Context, id string) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockStorage) CreateCategory(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockStorage) RenameCategory(ctx context.Context, id, name string) (*catalog.Category, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockStorage) DeleteCategory(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFiles is a mock implementation of file.Storage.
type MockFiles struct {
	mock.Mock
}

func (m *MockFiles) Save(ctx context.Context, fh *multipart.FileHeader, key string) (*file.File, error) {
	args := m.Called(ctx, fh, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*file.File), args.Error(1)
}

func (m *MockFiles) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockFiles) Exists(ctx context.Context, key string) bool {
	args := m.Called(ctx, key)
	return args.Bool(0)
}

func (m *MockFiles) URL(key string) string {
	return "/uploads/" + key
}

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

// upload builds a multipart file header the way net/http parses one.
func upload(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}
