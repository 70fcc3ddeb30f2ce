package handlers

import (
	"context"
	"io"

	"aukra/models"
	"aukra/repository"
	"aukra/storage"
)

// MenuStore reads the rows the public menu is built from.
type MenuStore interface {
	Sections(ctx context.Context) ([]models.Section, error)
	SectionItems(ctx context.Context) ([]models.SectionItem, error)
	Prices(ctx context.Context) ([]models.PriceOption, error)
}

type DishStore interface {
	Dish(ctx context.Context, id int64) (models.Dish, error)
	CreateDish(ctx context.Context, in repository.DishInput) (models.Dish, error)
	UpdateDish(ctx context.Context, id int64, in repository.DishInput) (models.Dish, error)
	DeleteDish(ctx context.Context, id int64) (string, error)
}

type SectionStore interface {
	Sections(ctx context.Context) ([]models.Section, error)
	CreateSection(ctx context.Context, sec models.Section) (models.Section, error)
	UpdateSection(ctx context.Context, sec models.Section) (models.Section, error)
	DeleteSection(ctx context.Context, id int64) error
}

type IntroStore interface {
	Intros(ctx context.Context, activeOnly bool) ([]models.IntroBlock, error)
	CreateIntro(ctx context.Context, b models.IntroBlock) (models.IntroBlock, error)
	UpdateIntro(ctx context.Context, b models.IntroBlock) (models.IntroBlock, error)
	DeleteIntro(ctx context.Context, id int64) error
	ReorderIntros(ctx context.Context, order []repository.IntroOrder) error
}

type RestaurantStore interface {
	Restaurant(ctx context.Context) (models.RestaurantInfo, error)
	SaveRestaurant(ctx context.Context, r models.RestaurantInfo) error
	Intros(ctx context.Context, activeOnly bool) ([]models.IntroBlock, error)
}

// ImageStorage is the object store dish images are uploaded to.
type ImageStorage interface {
	Upload(ctx context.Context, bucket, path, contentType string, body io.Reader) (string, error)
	Remove(ctx context.Context, bucket string, paths []string) error
	ListBuckets(ctx context.Context) ([]storage.Bucket, error)
	ObjectPath(bucket, publicURL string) (string, bool)
}

type Pinger interface {
	Ping(ctx context.Context) error
}
