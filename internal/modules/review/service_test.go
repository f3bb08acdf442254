package review

import (
	"context"
	"io"
	"testing"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/chesterOps/ecommerce-backend/internal/modules/auth"
	"github.com/chesterOps/ecommerce-backend/internal/modules/user"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	reviews map[string]*Review
}

func newFakeRepo(reviews ...*Review) *fakeRepo {
	r := &fakeRepo{reviews: map[string]*Review{}}
	for _, rv := range reviews {
		r.reviews[rv.ID.String()] = rv
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, rv *Review) error {
	for _, existing := range r.reviews {
		if existing.UserID == rv.UserID && existing.ProductID == rv.ProductID {
			return apperr.Conflict("you have already reviewed this product")
		}
	}
	r.reviews[rv.ID.String()] = rv
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, apperr.NotFound("review not found")
	}
	return rv, nil
}

func (r *fakeRepo) ListByProduct(_ context.Context, productID string) ([]*Review, error) {
	var out []*Review
	for _, rv := range r.reviews {
		if rv.ProductID.String() == productID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, rv *Review) error {
	r.reviews[rv.ID.String()] = rv
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	delete(r.reviews, id)
	return nil
}

func (r *fakeRepo) Aggregate(_ context.Context, productID string) (float64, int, error) {
	var sum, count int
	for _, rv := range r.reviews {
		if rv.ProductID.String() == productID {
			sum += rv.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

type fakeCatalog struct {
	known   map[string]bool
	ratings map[string][2]float64 // value, count
	cleared map[string]bool
}

func newFakeCatalog(ids ...string) *fakeCatalog {
	c := &fakeCatalog{known: map[string]bool{}, ratings: map[string][2]float64{}, cleared: map[string]bool{}}
	for _, id := range ids {
		c.known[id] = true
	}
	return c
}

func (c *fakeCatalog) ProductExists(_ context.Context, id string) (bool, error) {
	return c.known[id], nil
}

func (c *fakeCatalog) SetProductRating(_ context.Context, id string, value float64, count int) error {
	c.ratings[id] = [2]float64{value, float64(count)}
	delete(c.cleared, id)
	return nil
}

func (c *fakeCatalog) ClearProductRating(_ context.Context, id string) error {
	delete(c.ratings, id)
	c.cleared[id] = true
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestCreate(t *testing.T) {
	product := uuid.New()
	reviewer := auth.Principal{UserID: uuid.New(), Role: user.RoleCustomer}

	t.Run("creates and recalculates the rating", func(t *testing.T) {
		catalog := newFakeCatalog(product.String())
		svc := NewService(newFakeRepo(), catalog, quietLogger())

		rv, err := svc.Create(context.Background(), ReviewInput{
			ProductID: product.String(),
			Content:   "Solid build",
			Rating:    4,
		}, reviewer)
		require.NoError(t, err)
		assert.Equal(t, reviewer.UserID, rv.UserID)
		assert.Equal(t, [2]float64{4, 1}, catalog.ratings[product.String()])
	})

	t.Run("unknown product", func(t *testing.T) {
		svc := NewService(newFakeRepo(), newFakeCatalog(), quietLogger())
		_, err := svc.Create(context.Background(), ReviewInput{
			ProductID: uuid.New().String(),
			Content:   "x",
			Rating:    3,
		}, reviewer)
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("second review of the same product conflicts", func(t *testing.T) {
		catalog := newFakeCatalog(product.String())
		svc := NewService(newFakeRepo(), catalog, quietLogger())

		in := ReviewInput{ProductID: product.String(), Content: "x", Rating: 5}
		_, err := svc.Create(context.Background(), in, reviewer)
		require.NoError(t, err)
		_, err = svc.Create(context.Background(), in, reviewer)
		require.Error(t, err)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})
}

func TestUpdateOwnership(t *testing.T) {
	product := uuid.New()
	owner := uuid.New()
	rv := &Review{ID: uuid.New(), ProductID: product, UserID: owner, Content: "ok", Rating: 3}

	in := ReviewInput{ProductID: product.String(), Content: "better than ok", Rating: 4}

	t.Run("owner can edit", func(t *testing.T) {
		catalog := newFakeCatalog(product.String())
		svc := NewService(newFakeRepo(rv), catalog, quietLogger())
		got, err := svc.Update(context.Background(), rv.ID.String(), in, auth.Principal{UserID: owner, Role: user.RoleCustomer})
		require.NoError(t, err)
		assert.Equal(t, 4, got.Rating)
		assert.Equal(t, [2]float64{4, 1}, catalog.ratings[product.String()])
	})

	t.Run("admin can edit", func(t *testing.T) {
		svc := NewService(newFakeRepo(rv), newFakeCatalog(product.String()), quietLogger())
		_, err := svc.Update(context.Background(), rv.ID.String(), in, auth.Principal{UserID: uuid.New(), Role: user.RoleAdmin})
		assert.NoError(t, err)
	})

	t.Run("others are forbidden", func(t *testing.T) {
		svc := NewService(newFakeRepo(rv), newFakeCatalog(product.String()), quietLogger())
		_, err := svc.Update(context.Background(), rv.ID.String(), in, auth.Principal{UserID: uuid.New(), Role: user.RoleCustomer})
		require.Error(t, err)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})
}

func TestDeleteClearsRating(t *testing.T) {
	product := uuid.New()
	owner := uuid.New()
	rv := &Review{ID: uuid.New(), ProductID: product, UserID: owner, Content: "ok", Rating: 3}

	catalog := newFakeCatalog(product.String())
	svc := NewService(newFakeRepo(rv), catalog, quietLogger())

	err := svc.Delete(context.Background(), rv.ID.String(), auth.Principal{UserID: owner, Role: user.RoleCustomer})
	require.NoError(t, err)
	assert.True(t, catalog.cleared[product.String()])
	assert.NotContains(t, catalog.ratings, product.String())
}
