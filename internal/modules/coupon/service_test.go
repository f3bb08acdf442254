package coupon

import (
	"context"
	"testing"
	"time"

	"github.com/chesterOps/ecommerce-backend/internal/apperr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	byCode map[string]*Coupon
	byID   map[string]*Coupon
}

func newFakeRepo(coupons ...*Coupon) *fakeRepo {
	r := &fakeRepo{byCode: map[string]*Coupon{}, byID: map[string]*Coupon{}}
	for _, c := range coupons {
		r.byCode[c.Code] = c
		r.byID[c.ID.String()] = c
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, c *Coupon) error {
	if _, ok := r.byCode[c.Code]; ok {
		return apperr.Conflict("a coupon with this code already exists")
	}
	r.byCode[c.Code] = c
	r.byID[c.ID.String()] = c
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Coupon, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("coupon not found")
	}
	return c, nil
}

func (r *fakeRepo) GetActiveByCode(_ context.Context, code string) (*Coupon, error) {
	c, ok := r.byCode[code]
	if !ok || !c.Active {
		return nil, apperr.NotFound("invalid coupon")
	}
	return c, nil
}

func (r *fakeRepo) List(_ context.Context) ([]*Coupon, error) {
	var out []*Coupon
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, c *Coupon) error {
	r.byID[c.ID.String()] = c
	r.byCode[c.Code] = c
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	c, ok := r.byID[id]
	if !ok {
		return apperr.NotFound("coupon not found")
	}
	delete(r.byCode, c.Code)
	delete(r.byID, id)
	return nil
}

func testCoupon(code string, discount float64, start, end time.Time) *Coupon {
	return &Coupon{
		ID:       uuid.New(),
		Code:     code,
		Discount: discount,
		Start:    start,
		End:      end,
		Active:   true,
	}
}

func TestApply(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	inWindow := testCoupon("SUMMER20", 20, now.Add(-time.Hour), now.Add(time.Hour))

	newService := func(coupons ...*Coupon) *service {
		return &service{repo: newFakeRepo(coupons...), now: func() time.Time { return now }}
	}

	t.Run("discount applied within window", func(t *testing.T) {
		svc := newService(inWindow)
		res, err := svc.Apply(context.Background(), ApplyRequest{Code: "SUMMER20", CartTotal: 100})
		require.NoError(t, err)
		assert.Equal(t, 80.0, res.FinalTotal)
		assert.Equal(t, inWindow.ID, res.Coupon.ID)
	})

	t.Run("code matching is case-insensitive", func(t *testing.T) {
		svc := newService(inWindow)
		res, err := svc.Apply(context.Background(), ApplyRequest{Code: "  summer20 ", CartTotal: 100})
		require.NoError(t, err)
		assert.Equal(t, 80.0, res.FinalTotal)
	})

	t.Run("result is rounded to two decimals", func(t *testing.T) {
		svc := newService(testCoupon("ODD", 33, now.Add(-time.Hour), now.Add(time.Hour)))
		res, err := svc.Apply(context.Background(), ApplyRequest{Code: "ODD", CartTotal: 99.99})
		require.NoError(t, err)
		assert.Equal(t, 66.99, res.FinalTotal)
	})

	t.Run("not active yet", func(t *testing.T) {
		svc := newService(testCoupon("SOON", 10, now.Add(time.Hour), now.Add(2*time.Hour)))
		_, err := svc.Apply(context.Background(), ApplyRequest{Code: "SOON", CartTotal: 50})
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Contains(t, err.Error(), "not active yet")
	})

	t.Run("expired", func(t *testing.T) {
		svc := newService(testCoupon("OLD", 10, now.Add(-2*time.Hour), now.Add(-time.Hour)))
		_, err := svc.Apply(context.Background(), ApplyRequest{Code: "OLD", CartTotal: 50})
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("unknown code", func(t *testing.T) {
		svc := newService(inWindow)
		_, err := svc.Apply(context.Background(), ApplyRequest{Code: "NOPE", CartTotal: 50})
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("deactivated coupon behaves like an unknown code", func(t *testing.T) {
		off := testCoupon("OFF", 10, now.Add(-time.Hour), now.Add(time.Hour))
		off.Active = false
		svc := newService(off)
		_, err := svc.Apply(context.Background(), ApplyRequest{Code: "OFF", CartTotal: 50})
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestCreateUppercasesCode(t *testing.T) {
	svc := NewService(newFakeRepo())
	c, err := svc.Create(context.Background(), CouponInput{
		Code:     "black friday ",
		Discount: 25,
		Start:    time.Now(),
		End:      time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "BLACK FRIDAY", c.Code)
	assert.True(t, c.Active)
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{10.004, 10.0},
		{80.0, 80.0},
		{66.9933, 66.99},
		{0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, round2(tc.in))
	}
}
