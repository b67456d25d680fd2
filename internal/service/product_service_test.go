package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/online-catalog/backend/internal/catalog"
	"github.com/online-catalog/backend/internal/models"
	"github.com/online-catalog/backend/internal/repository"
	"github.com/online-catalog/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeImageStore records saves and deletes instead of touching disk.
type fakeImageStore struct {
	saved   []string
	deleted []string
}

func (f *fakeImageStore) Save(ctx context.Context, r io.Reader, originalName string) (string, error) {
	url := "/media/fake_" + originalName
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeImageStore) Delete(ctx context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

func newProductService(t *testing.T, products []models.Product, options []models.Option) (*ProductService, *fakeImageStore) {
	t.Helper()
	images := &fakeImageStore{}
	svc := NewProductService(
		repository.NewInMemoryProductRepository(products...),
		repository.NewInMemoryOptionRepository(options...),
		images,
		logger.New("error"),
	)
	return svc, images
}

func TestListProducts_JoinsOptionGroups(t *testing.T) {
	svc, _ := newProductService(t,
		[]models.Product{{ID: "p1", Name: "Steering Wheel", Price: "$320", OptionIDs: []string{"o1"}}},
		[]models.Option{{ID: "o1", Name: "material", Values: []string{"leather", "alcantara"}}},
	)

	got, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Options, 1)
	assert.Equal(t, "material", got[0].Options[0].Name)
	assert.Equal(t, []string{"leather", "alcantara"}, got[0].Options[0].Values)
}

func TestListProducts_SkipsDanglingOptionReferences(t *testing.T) {
	svc, _ := newProductService(t,
		[]models.Product{{ID: "p1", Name: "Headlight", Price: "$420", OptionIDs: []string{"gone", "o1"}}},
		[]models.Option{{ID: "o1", Name: "color", Values: []string{"red"}}},
	)

	got, err := svc.ListProducts(context.Background())
	require.NoError(t, err, "a dangling reference is a warning, not a failure")
	require.Len(t, got, 1)
	require.Len(t, got[0].Options, 1, "the product renders with the smaller option set")
	assert.Equal(t, "color", got[0].Options[0].Name)
}

func TestListVisible_AppliesFilterSpec(t *testing.T) {
	svc, _ := newProductService(t, []models.Product{
		{ID: "p1", Name: "Air Filter", Brand: "Ford", Model: "Mustang", Category: "Engine", Price: "$65"},
		{ID: "p2", Name: "Shock Absorber", Brand: "Mercedes-Benz", Model: "G-Class", Category: "Suspension", Price: "$280"},
	}, nil)

	got, err := svc.ListVisible(context.Background(), catalog.Spec{PriceRange: catalog.Price50To200})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func TestCreateProduct_StoresUploadedImage(t *testing.T) {
	svc, images := newProductService(t, nil, nil)

	in := models.ProductInput{Name: "Brake Pads", Price: "$150"}
	p, err := svc.CreateProduct(context.Background(), in, strings.NewReader("png-bytes"), "pads.png")
	require.NoError(t, err)

	require.Len(t, images.saved, 1)
	assert.Equal(t, images.saved[0], p.Image)
}

func TestCreateProduct_RejectsMissingFields(t *testing.T) {
	svc, _ := newProductService(t, nil, nil)

	_, err := svc.CreateProduct(context.Background(), models.ProductInput{Name: " ", Price: "$10"}, nil, "")
	assert.ErrorIs(t, err, ErrInvalidProduct)

	_, err = svc.CreateProduct(context.Background(), models.ProductInput{Name: "Pads"}, nil, "")
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestUpdateProduct_ReplacesImageObject(t *testing.T) {
	svc, images := newProductService(t,
		[]models.Product{{ID: "p1", Name: "Pads", Price: "$150", Image: "/media/old.png"}},
		nil,
	)

	in := models.ProductInput{Name: "Pads", Price: "$160"}
	p, err := svc.UpdateProduct(context.Background(), "p1", in, strings.NewReader("new-bytes"), "new.png")
	require.NoError(t, err)

	assert.Equal(t, []string{"/media/old.png"}, images.deleted)
	require.Len(t, images.saved, 1)
	assert.Equal(t, images.saved[0], p.Image)
}

func TestUpdateProduct_KeepsImageWithoutUpload(t *testing.T) {
	svc, images := newProductService(t,
		[]models.Product{{ID: "p1", Name: "Pads", Price: "$150", Image: "/media/old.png"}},
		nil,
	)

	p, err := svc.UpdateProduct(context.Background(), "p1", models.ProductInput{Name: "Pads", Price: "$150"}, nil, "")
	require.NoError(t, err)

	assert.Empty(t, images.deleted)
	assert.Equal(t, "/media/old.png", p.Image)
}

func TestDeleteProduct_RemovesImageObject(t *testing.T) {
	svc, images := newProductService(t,
		[]models.Product{{ID: "p1", Name: "Pads", Price: "$150", Image: "/media/pads.png"}},
		nil,
	)

	require.NoError(t, svc.DeleteProduct(context.Background(), "p1"))
	assert.Equal(t, []string{"/media/pads.png"}, images.deleted)

	_, err := svc.GetProduct(context.Background(), "p1")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}
