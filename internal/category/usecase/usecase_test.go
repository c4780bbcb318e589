package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-pos-service/internal/apperror"
	"github.com/fekuna/omnipos-pos-service/internal/category/dto"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
)

type memRepo struct {
	categories map[string]*model.Category
	products   map[string]int
	deleted    []string
}

func newMemRepo() *memRepo {
	return &memRepo{categories: map[string]*model.Category{}, products: map[string]int{}}
}

func (r *memRepo) Create(_ context.Context, c *model.Category) error {
	for _, existing := range r.categories {
		if existing.Name == c.Name {
			return apperror.Conflict("category %q already exists", c.Name)
		}
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memRepo) FindAll(context.Context) ([]model.Category, error) {
	out := []model.Category{}
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memRepo) Update(_ context.Context, c *model.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	delete(r.categories, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *memRepo) CountProducts(_ context.Context, id string) (int, error) {
	return r.products[id], nil
}

func TestCreateCategory(t *testing.T) {
	repo := newMemRepo()
	uc := NewCategoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	cat, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "  Burgers "})
	if err != nil {
		t.Fatal(err)
	}
	if cat.Name != "Burgers" || cat.ID == "" {
		t.Errorf("category = %+v", cat)
	}

	if _, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "Burgers"}); !apperror.Is(err, apperror.KindConflict) {
		t.Errorf("duplicate err = %v, want conflict", err)
	}
	if _, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: " "}); !apperror.Is(err, apperror.KindValidation) {
		t.Errorf("blank err = %v, want validation", err)
	}
}

func TestUpdateCategoryKeepsImage(t *testing.T) {
	repo := newMemRepo()
	uc := NewCategoryUseCase(repo, logger.NewNop())
	ctx := context.Background()

	cat, err := uc.CreateCategory(ctx, &dto.CreateCategoryInput{Name: "Drinks", ImageURL: "drinks.png"})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: cat.ID, Name: "Beverages"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Beverages" || updated.ImageURL != "drinks.png" {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: "missing", Name: "x"}); !apperror.Is(err, apperror.KindNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestDeleteCategory(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		products int
		wantErr  bool
		want     apperror.Kind
	}{
		{name: "empty category", id: "c1"},
		{name: "has products", id: "c1", products: 2, wantErr: true, want: apperror.KindConflict},
		{name: "unknown", id: "nope", wantErr: true, want: apperror.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo()
			repo.categories["c1"] = &model.Category{BaseModel: model.BaseModel{ID: "c1"}, Name: "Sides"}
			repo.products["c1"] = tt.products
			uc := NewCategoryUseCase(repo, logger.NewNop())

			err := uc.DeleteCategory(context.Background(), tt.id)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(repo.deleted) != 1 {
					t.Errorf("deleted = %v", repo.deleted)
				}
				return
			}
			if !apperror.Is(err, tt.want) {
				t.Errorf("err = %v, want %s", err, tt.want)
			}
			if len(repo.deleted) != 0 {
				t.Errorf("deleted = %v, want none", repo.deleted)
			}
		})
	}
}
