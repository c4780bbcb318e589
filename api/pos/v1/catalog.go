package posv1

import (
	"context"

	"google.golang.org/grpc"
)

const CatalogServiceName = "pos.v1.CatalogService"

type IDRequest struct {
	ID string `json:"id"`
}

type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CategoryInput struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

type CreateCategoryRequest struct {
	Category *CategoryInput `json:"category"`
}

type UpdateCategoryRequest struct {
	ID       string         `json:"id"`
	Category *CategoryInput `json:"category"`
}

type CategoryResponse struct {
	Category *Category `json:"category"`
}

type ListCategoriesResponse struct {
	Categories []*Category `json:"categories"`
}

type Ingredient struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type IngredientInput struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

type CreateIngredientRequest struct {
	Ingredient *IngredientInput `json:"ingredient"`
}

type UpdateIngredientRequest struct {
	ID         string           `json:"id"`
	Ingredient *IngredientInput `json:"ingredient"`
}

type IngredientResponse struct {
	Ingredient *Ingredient `json:"ingredient"`
}

type ListIngredientsResponse struct {
	Ingredients []*Ingredient `json:"ingredients"`
}

type RecipeLine struct {
	IngredientID string  `json:"ingredient_id"`
	Name         string  `json:"name,omitempty"`
	Quantity     float64 `json:"quantity"`
}

type Product struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	CategoryID  string       `json:"category_id"`
	Cost        string       `json:"cost"`
	Price       string       `json:"price"`
	ImageURL    string       `json:"image_url,omitempty"`
	Deleted     bool         `json:"deleted"`
	Ingredients []RecipeLine `json:"ingredients"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
}

type ProductInput struct {
	Name        string       `json:"name"`
	CategoryID  string       `json:"category_id"`
	Cost        string       `json:"cost"`
	Price       string       `json:"price"`
	ImageURL    string       `json:"image_url,omitempty"`
	Ingredients []RecipeLine `json:"ingredients"`
}

type CreateProductRequest struct {
	Product *ProductInput `json:"product"`
}

type UpdateProductRequest struct {
	ID      string        `json:"id"`
	Product *ProductInput `json:"product"`
}

type ProductResponse struct {
	Product *Product `json:"product"`
}

type ListProductsRequest struct {
	CategoryID string `json:"category_id,omitempty"`
	Search     string `json:"search,omitempty"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}

type ListProductsResponse struct {
	Products []*Product `json:"products"`
	Total    int        `json:"total"`
}

type Deal struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Price     string        `json:"price"`
	ImageURL  string        `json:"image_url,omitempty"`
	Deleted   bool          `json:"deleted"`
	Products  []ProductLine `json:"products"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}

type DealInput struct {
	Name     string        `json:"name"`
	Price    string        `json:"price"`
	ImageURL string        `json:"image_url,omitempty"`
	Products []ProductLine `json:"products"`
}

type CreateDealRequest struct {
	Deal *DealInput `json:"deal"`
}

type UpdateDealRequest struct {
	ID   string     `json:"id"`
	Deal *DealInput `json:"deal"`
}

type DealResponse struct {
	Deal *Deal `json:"deal"`
}

type ListDealsResponse struct {
	Deals []*Deal `json:"deals"`
}

type CatalogServiceServer interface {
	CreateCategory(context.Context, *CreateCategoryRequest) (*CategoryResponse, error)
	GetCategory(context.Context, *IDRequest) (*CategoryResponse, error)
	ListCategories(context.Context, *Empty) (*ListCategoriesResponse, error)
	UpdateCategory(context.Context, *UpdateCategoryRequest) (*CategoryResponse, error)
	DeleteCategory(context.Context, *IDRequest) (*Empty, error)

	CreateIngredient(context.Context, *CreateIngredientRequest) (*IngredientResponse, error)
	GetIngredient(context.Context, *IDRequest) (*IngredientResponse, error)
	ListIngredients(context.Context, *Empty) (*ListIngredientsResponse, error)
	UpdateIngredient(context.Context, *UpdateIngredientRequest) (*IngredientResponse, error)
	DeleteIngredient(context.Context, *IDRequest) (*Empty, error)

	CreateProduct(context.Context, *CreateProductRequest) (*ProductResponse, error)
	GetProduct(context.Context, *IDRequest) (*ProductResponse, error)
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
	UpdateProduct(context.Context, *UpdateProductRequest) (*ProductResponse, error)
	DeleteProduct(context.Context, *IDRequest) (*Empty, error)

	CreateDeal(context.Context, *CreateDealRequest) (*DealResponse, error)
	GetDeal(context.Context, *IDRequest) (*DealResponse, error)
	ListDeals(context.Context, *Empty) (*ListDealsResponse, error)
	UpdateDeal(context.Context, *UpdateDealRequest) (*DealResponse, error)
	DeleteDeal(context.Context, *IDRequest) (*Empty, error)
}

var CatalogService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(CatalogServiceName, "CreateCategory", CatalogServiceServer.CreateCategory),
		unary(CatalogServiceName, "GetCategory", CatalogServiceServer.GetCategory),
		unary(CatalogServiceName, "ListCategories", CatalogServiceServer.ListCategories),
		unary(CatalogServiceName, "UpdateCategory", CatalogServiceServer.UpdateCategory),
		unary(CatalogServiceName, "DeleteCategory", CatalogServiceServer.DeleteCategory),
		unary(CatalogServiceName, "CreateIngredient", CatalogServiceServer.CreateIngredient),
		unary(CatalogServiceName, "GetIngredient", CatalogServiceServer.GetIngredient),
		unary(CatalogServiceName, "ListIngredients", CatalogServiceServer.ListIngredients),
		unary(CatalogServiceName, "UpdateIngredient", CatalogServiceServer.UpdateIngredient),
		unary(CatalogServiceName, "DeleteIngredient", CatalogServiceServer.DeleteIngredient),
		unary(CatalogServiceName, "CreateProduct", CatalogServiceServer.CreateProduct),
		unary(CatalogServiceName, "GetProduct", CatalogServiceServer.GetProduct),
		unary(CatalogServiceName, "ListProducts", CatalogServiceServer.ListProducts),
		unary(CatalogServiceName, "UpdateProduct", CatalogServiceServer.UpdateProduct),
		unary(CatalogServiceName, "DeleteProduct", CatalogServiceServer.DeleteProduct),
		unary(CatalogServiceName, "CreateDeal", CatalogServiceServer.CreateDeal),
		unary(CatalogServiceName, "GetDeal", CatalogServiceServer.GetDeal),
		unary(CatalogServiceName, "ListDeals", CatalogServiceServer.ListDeals),
		unary(CatalogServiceName, "UpdateDeal", CatalogServiceServer.UpdateDeal),
		unary(CatalogServiceName, "DeleteDeal", CatalogServiceServer.DeleteDeal),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pos/v1/catalog.proto",
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogService_ServiceDesc, srv)
}

type CatalogServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogServiceClient(cc grpc.ClientConnInterface) *CatalogServiceClient {
	return &CatalogServiceClient{cc: cc}
}

func (c *CatalogServiceClient) CreateCategory(ctx context.Context, in *CreateCategoryRequest, opts ...grpc.CallOption) (*CategoryResponse, error) {
	return invoke[CategoryResponse](ctx, c.cc, CatalogServiceName, "CreateCategory", in, opts...)
}

func (c *CatalogServiceClient) ListCategories(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListCategoriesResponse, error) {
	return invoke[ListCategoriesResponse](ctx, c.cc, CatalogServiceName, "ListCategories", in, opts...)
}

func (c *CatalogServiceClient) CreateIngredient(ctx context.Context, in *CreateIngredientRequest, opts ...grpc.CallOption) (*IngredientResponse, error) {
	return invoke[IngredientResponse](ctx, c.cc, CatalogServiceName, "CreateIngredient", in, opts...)
}

func (c *CatalogServiceClient) CreateProduct(ctx context.Context, in *CreateProductRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	return invoke[ProductResponse](ctx, c.cc, CatalogServiceName, "CreateProduct", in, opts...)
}

func (c *CatalogServiceClient) GetProduct(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	return invoke[ProductResponse](ctx, c.cc, CatalogServiceName, "GetProduct", in, opts...)
}

func (c *CatalogServiceClient) CreateDeal(ctx context.Context, in *CreateDealRequest, opts ...grpc.CallOption) (*DealResponse, error) {
	return invoke[DealResponse](ctx, c.cc, CatalogServiceName, "CreateDeal", in, opts...)
}

func (c *CatalogServiceClient) GetDeal(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*DealResponse, error) {
	return invoke[DealResponse](ctx, c.cc, CatalogServiceName, "GetDeal", in, opts...)
}
