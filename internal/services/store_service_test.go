package services

import (
	"strings"
	"testing"

	"github.com/pedeai/pedeai-backend/internal/apperr"
	"github.com/pedeai/pedeai-backend/internal/dto"
	"github.com/pedeai/pedeai-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStore(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db)
	user := seedFreeUser(t, db)

	store, err := svc.Create(&dto.CreateStoreRequest{
		Name:           "Pizzaria do Zé",
		City:           "São Paulo",
		PaymentMethods: []string{"pix", "dinheiro"},
	}, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "pizzaria-do-ze", store.Slug)
	assert.Equal(t, models.StoreStatusActive, store.Status)

	// one store per user
	_, err = svc.Create(&dto.CreateStoreRequest{Name: "Filial"}, user.ID)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateStore_SlugCollision(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db)

	first := seedFreeUser(t, db)
	second := seedFreeUser(t, db)

	a, err := svc.Create(&dto.CreateStoreRequest{Name: "Cantina Central"}, first.ID)
	require.NoError(t, err)
	b, err := svc.Create(&dto.CreateStoreRequest{Name: "Cantina Central"}, second.ID)
	require.NoError(t, err)

	assert.Equal(t, "cantina-central", a.Slug)
	assert.NotEqual(t, a.Slug, b.Slug)
	assert.True(t, strings.HasPrefix(b.Slug, "cantina-central-"))
}

func TestStoreUpdate_PartialFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db)
	user := seedFreeUser(t, db)

	store, err := svc.Create(&dto.CreateStoreRequest{Name: "Cantina Central", City: "Campinas"}, user.ID)
	require.NoError(t, err)

	city := "São Paulo"
	updated, err := svc.Update(&dto.UpdateStoreRequest{City: &city}, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "São Paulo", updated.City)
	assert.Equal(t, store.Name, updated.Name)
	assert.Equal(t, store.Slug, updated.Slug)
}

func TestStoreStatusToggleAndPublicLookup(t *testing.T) {
	db := newTestDB(t)
	svc := NewStoreService(db)
	user := seedFreeUser(t, db)

	store, err := svc.Create(&dto.CreateStoreRequest{Name: "Cantina Central"}, user.ID)
	require.NoError(t, err)

	found, err := svc.GetBySlug(store.Slug)
	require.NoError(t, err)
	assert.Equal(t, store.ID, found.ID)

	_, err = svc.SetStatus("paused", user.ID)
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.SetStatus(models.StoreStatusInactive, user.ID)
	require.NoError(t, err)

	// inactive stores disappear from the storefront
	_, err = svc.GetBySlug(store.Slug)
	assert.True(t, apperr.IsNotFound(err))
}
