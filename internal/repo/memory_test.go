package repo

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-shop/internal/domain"
)

func TestMemoryRepoCreateAndFind(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryProductRepo()

	in := domain.Product{
		Name:        "myproduct",
		Description: "mydescription",
		Category:    "mycategory",
		Price:       decimal.NewFromFloat(99),
		SalePrice:   decimal.NewFromFloat(11),
		Img:         "myimage",
		Inventory:   22,
	}
	p := in
	require.NoError(t, r.Create(ctx, &p))
	require.NotEmpty(t, p.ID)

	byID, err := r.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, *byID)

	byName, err := r.FindByName(ctx, "myproduct")
	require.NoError(t, err)
	assert.Equal(t, p.ID, byName.ID)
	assert.Equal(t, in.Description, byName.Description)
}

func TestMemoryRepoDuplicateNameKeepsOriginal(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryCategoryRepo()

	first := domain.Category{Name: "mycategory"}
	require.NoError(t, r.Create(ctx, &first))

	second := domain.Category{Name: "mycategory"}
	err := r.Create(ctx, &second)
	require.ErrorIs(t, err, domain.ErrDuplicateName)
	assert.EqualError(t, err, "A category with this name already exists")

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, first.ID, all[0].ID)
}

func TestMemoryRepoDelete(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryCategoryRepo()

	c := domain.Category{Name: "gone"}
	require.NoError(t, r.Create(ctx, &c))
	require.NoError(t, r.Delete(ctx, c.ID))

	_, err := r.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.FindByName(ctx, "gone")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, c.ID), domain.ErrNotFound)
}

func TestMemoryRepoListReturnsSeeded(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryCategoryRepo()
	names := []string{"shoes", "bags", "hats", "coats"}
	for _, n := range names {
		c := domain.Category{Name: n}
		require.NoError(t, r.Create(ctx, &c))
	}

	all, err := r.List(ctx)
	require.NoError(t, err)
	got := make([]string, 0, len(all))
	for _, c := range all {
		got = append(got, c.Name)
	}
	sort.Strings(got)
	want := append([]string(nil), names...)
	sort.Strings(want)
	assert.Equal(t, want, got)
}

func TestMemoryRepoConcurrentCreateSameName(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryCategoryRepo()

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := domain.Category{Name: "race"}
			errs <- r.Create(ctx, &c)
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, domain.ErrDuplicateName)
		}
	}
	assert.Equal(t, 1, ok)
}
