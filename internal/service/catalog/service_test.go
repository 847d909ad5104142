package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	"github.com/SyahmiDin/app-raya-studio/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeCatalogRepo struct {
	services []*domain.Service
	err      error
}

func (f *fakeCatalogRepo) List(_ context.Context) ([]*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.services, nil
}

func TestList_MapsServices(t *testing.T) {
	repo := &fakeCatalogRepo{services: []*domain.Service{
		{
			ID:              "svc-raya",
			Name:            "Raya Family Session",
			Description:     ptr.Ptr("30 minit, 1 latar"),
			DurationMinutes: 30,
			Price:           250,
			SortOrder:       1,
		},
		{
			ID:              "svc-solo",
			Name:            "Solo Portrait",
			DurationMinutes: 15,
			Price:           120,
			SortOrder:       2,
		},
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Services, 2)

	assert.Equal(t, "svc-raya", resp.Services[0].ID)
	assert.Equal(t, 250.0, resp.Services[0].Price)
	require.NotNil(t, resp.Services[0].Description)
	assert.Nil(t, resp.Services[1].Description)
}

func TestList_WrapsRepositoryError(t *testing.T) {
	repo := &fakeCatalogRepo{err: errors.New("connection refused")}
	svc := NewService(repo, nopLogger{})

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
