package application

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newProductFixture(t *testing.T) (*ProductService, *memProductRepo, *memUserRepo) {
	t.Helper()
	users := newMemUserRepo()
	products := newMemProductRepo(users)
	svc := NewProductService(products, nil, "", nil, "", testLogger())
	return svc, products, users
}

func TestProductCreateThenGet(t *testing.T) {
	svc, _, _ := newProductFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user_1", CreateProductInput{
		Title:       "A",
		Description: "B",
		ImageURL:    "C",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "user_1", created.UserID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "A", got.Title)
	require.Equal(t, "B", got.Description)
	require.Equal(t, "C", got.ImageURL)
	require.Equal(t, "user_1", got.UserID)
	require.NotNil(t, got.Comments)
	require.Empty(t, got.Comments)
}

func TestProductGetMissing(t *testing.T) {
	svc, _, _ := newProductFixture(t)

	_, err := svc.Get(context.Background(), "00000000-0000-0000-0000-000000000099")
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductListNewestFirst(t *testing.T) {
	svc, _, _ := newProductFixture(t)
	ctx := context.Background()

	ids := make([]string, 0, 3)
	for _, title := range []string{"p1", "p2", "p3"} {
		p, err := svc.Create(ctx, "user_1", CreateProductInput{Title: title, Description: "d", ImageURL: "i"})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	// [pN, ..., p1]
	require.Equal(t, ids[2], list[0].ID)
	require.Equal(t, ids[1], list[1].ID)
	require.Equal(t, ids[0], list[2].ID)
}

func TestProductListMineFilters(t *testing.T) {
	svc, _, _ := newProductFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "user_1", CreateProductInput{Title: "mine", Description: "d", ImageURL: "i"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "user_2", CreateProductInput{Title: "theirs", Description: "d", ImageURL: "i"})
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "mine", mine[0].Title)
}

func TestProductUpdatePartial(t *testing.T) {
	svc, _, _ := newProductFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user_1", CreateProductInput{Title: "old", Description: "keep", ImageURL: "keep.jpg"})
	require.NoError(t, err)

	title := "new"
	updated, err := svc.Update(ctx, created.ID, "user_1", UpdateProductInput{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "new", updated.Title)
	require.Equal(t, "keep", updated.Description, "unsupplied fields keep their value")
	require.Equal(t, "keep.jpg", updated.ImageURL)
}

func TestProductUpdateNonOwnerForbidden(t *testing.T) {
	svc, products, _ := newProductFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user_1", CreateProductInput{Title: "A", Description: "B", ImageURL: "C"})
	require.NoError(t, err)

	title := "hijacked"
	_, err = svc.Update(ctx, created.ID, "user_2", UpdateProductInput{Title: &title})
	require.ErrorIs(t, err, ErrNotOwner)

	stored := products.products[created.ID]
	require.Equal(t, "A", stored.Title, "forbidden update must leave the record unchanged")
}

func TestProductUpdateMissing(t *testing.T) {
	svc, _, _ := newProductFixture(t)

	title := "x"
	_, err := svc.Update(context.Background(), "00000000-0000-0000-0000-000000000099", "user_1", UpdateProductInput{Title: &title})
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductDeleteNonOwnerForbidden(t *testing.T) {
	svc, products, _ := newProductFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user_1", CreateProductInput{Title: "A", Description: "B", ImageURL: "C"})
	require.NoError(t, err)

	err = svc.Delete(ctx, created.ID, "user_2")
	require.ErrorIs(t, err, ErrNotOwner)
	require.Contains(t, products.products, created.ID)

	require.NoError(t, svc.Delete(ctx, created.ID, "user_1"))
	require.NotContains(t, products.products, created.ID)

	err = svc.Delete(ctx, created.ID, "user_1")
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductSearchWithoutES(t *testing.T) {
	svc, _, _ := newProductFixture(t)

	hits, err := svc.Search(context.Background(), "keyboard", 10)
	require.NoError(t, err)
	require.NotNil(t, hits)
	require.Empty(t, hits)
}

func TestProductUploadImageWithoutGCS(t *testing.T) {
	svc, _, _ := newProductFixture(t)

	_, err := svc.UploadImage(context.Background(), "user_1", nil, "a.jpg", "image/jpeg")
	require.Error(t, err)
}
