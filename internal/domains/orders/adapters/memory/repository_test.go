package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartinix/order-service/internal/domains/orders/domain"
	"github.com/smartinix/order-service/internal/domains/orders/ports"
	"github.com/smartinix/order-service/internal/platform/auth"
)

func ctxAs(subject string) context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{Subject: subject})
}

func TestSave_InsertAssignsIDOwnerAndVersion(t *testing.T) {
	repo := NewRepository()

	saved, err := repo.Save(ctxAs("bjorn"), domain.BuildRejectedOrder("0000000000", 1))
	require.NoError(t, err)

	assert.Equal(t, int64(1), saved.ID)
	assert.Equal(t, int64(0), saved.Version)
	assert.Equal(t, "bjorn", saved.CreatedBy)
	assert.Equal(t, "bjorn", saved.LastModifiedBy)
	assert.False(t, saved.CreatedDate.IsZero())
}

func TestSave_UpdateIncrementsVersionAndKeepsAudit(t *testing.T) {
	repo := NewRepository()
	saved, err := repo.Save(ctxAs("bjorn"), domain.BuildRejectedOrder("0000000000", 1))
	require.NoError(t, err)

	updated, err := repo.Save(ctxAs("dispatcher"), saved.Dispatched())
	require.NoError(t, err)

	assert.Equal(t, int64(1), updated.Version)
	assert.Equal(t, domain.StatusDispatched, updated.Status)
	assert.Equal(t, "bjorn", updated.CreatedBy)
	assert.Equal(t, "dispatcher", updated.LastModifiedBy)
}

func TestSave_StaleVersionRejected(t *testing.T) {
	repo := NewRepository()
	saved, err := repo.Save(ctxAs("bjorn"), domain.BuildRejectedOrder("0000000000", 1))
	require.NoError(t, err)

	_, err = repo.Save(ctxAs("bjorn"), saved.Dispatched())
	require.NoError(t, err)

	// Second writer still holds the original version.
	_, err = repo.Save(ctxAs("bjorn"), saved.Dispatched())
	require.ErrorIs(t, err, ports.ErrVersionConflict)
}

func TestSave_UpdateUnknownIDRejected(t *testing.T) {
	repo := NewRepository()
	order := domain.BuildRejectedOrder("0000000000", 1)
	order.ID = 99
	_, err := repo.Save(ctxAs("bjorn"), order)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestFindAllByCreatedBy_FiltersOwner(t *testing.T) {
	repo := NewRepository()
	_, err := repo.Save(ctxAs("bjorn"), domain.BuildRejectedOrder("1", 1))
	require.NoError(t, err)
	_, err = repo.Save(ctxAs("isabelle"), domain.BuildRejectedOrder("2", 1))
	require.NoError(t, err)
	_, err = repo.Save(ctxAs("bjorn"), domain.BuildRejectedOrder("3", 1))
	require.NoError(t, err)

	orders, err := repo.FindAllByCreatedBy(context.Background(), "bjorn")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "1", orders[0].BookISBN)
	assert.Equal(t, "3", orders[1].BookISBN)
}

func TestFindByID_Missing(t *testing.T) {
	repo := NewRepository()
	_, err := repo.FindByID(context.Background(), 404)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
