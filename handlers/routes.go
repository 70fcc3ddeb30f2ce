package handlers

import "net/http"

// Deps are the backends the routes are served from. Images may be nil when
// object storage is not configured; a nil Admin leaves admin routes open.
type Deps struct {
	Menu       MenuStore
	Dishes     DishStore
	Sections   SectionStore
	Intros     IntroStore
	Restaurant RestaurantStore
	Health     Pinger
	Images     ImageStorage
	Bucket     string
	Admin      func(http.Handler) http.Handler
}

// Register mounts the public and admin routes on mux.
func Register(mux *http.ServeMux, d Deps) {
	admin := func(h http.HandlerFunc) http.Handler {
		if d.Admin == nil {
			return h
		}
		return d.Admin(h)
	}

	mux.HandleFunc("GET /healthz", HealthHandler(d.Health))

	mux.HandleFunc("GET /api/dishes", ListDishesHandler(d.Menu))
	mux.HandleFunc("GET /api/dishes/{id}", GetDishHandler(d.Dishes))
	mux.HandleFunc("GET /api/categories", ListCategoriesHandler(d.Sections))
	mux.HandleFunc("GET /api/restaurant", GetRestaurantHandler(d.Restaurant))

	mux.Handle("POST /api/dishes", admin(CreateDishHandler(d.Dishes)))
	mux.Handle("PUT /api/dishes/{id}", admin(UpdateDishHandler(d.Dishes)))
	mux.Handle("DELETE /api/dishes/{id}", admin(DeleteDishHandler(d.Dishes, d.Images, d.Bucket)))

	mux.Handle("POST /api/categories", admin(CreateCategoryHandler(d.Sections)))
	mux.Handle("PUT /api/categories/{id}", admin(UpdateCategoryHandler(d.Sections)))
	mux.Handle("DELETE /api/categories/{id}", admin(DeleteCategoryHandler(d.Sections)))

	mux.Handle("GET /api/restaurant/intros", admin(ListIntrosHandler(d.Intros)))
	mux.Handle("POST /api/restaurant/intros", admin(CreateIntroHandler(d.Intros)))
	mux.Handle("PUT /api/restaurant/intros/reorder", admin(ReorderIntrosHandler(d.Intros)))
	mux.Handle("PUT /api/restaurant/intros/{id}", admin(UpdateIntroHandler(d.Intros)))
	mux.Handle("DELETE /api/restaurant/intros/{id}", admin(DeleteIntroHandler(d.Intros)))
	mux.Handle("PUT /api/restaurant", admin(UpdateRestaurantHandler(d.Restaurant)))

	mux.Handle("POST /api/images", admin(UploadImageHandler(d.Images, d.Bucket)))
	mux.Handle("GET /api/storage/buckets", admin(ListBucketsHandler(d.Images)))
}
