package posv1

import (
	"context"

	"google.golang.org/grpc"
)

const InventoryServiceName = "pos.v1.InventoryService"

type StockEntry struct {
	IngredientID string  `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

type InventoryItem struct {
	Tier           string  `json:"tier"`
	IngredientID   string  `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name,omitempty"`
	Unit           string  `json:"unit,omitempty"`
	Quantity       float64 `json:"quantity"`
	UpdatedAt      string  `json:"updated_at"`
}

type Movement struct {
	ID             string  `json:"id"`
	Tier           string  `json:"tier"`
	IngredientID   string  `json:"ingredient_id"`
	MovementType   string  `json:"movement_type"`
	QuantityChange float64 `json:"quantity_change"`
	QuantityBefore float64 `json:"quantity_before"`
	QuantityAfter  float64 `json:"quantity_after"`
	Reference      string  `json:"reference,omitempty"`
	CreatedBy      string  `json:"created_by,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

type AddItemsRequest struct {
	Tier  string       `json:"tier"`
	Items []StockEntry `json:"items"`
}

type TransferRequest struct {
	Items []StockEntry `json:"items"`
}

type SetQuantityRequest struct {
	IngredientID string  `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

type ListItemsRequest struct {
	Tier string `json:"tier"`
}

type InventoryItemsResponse struct {
	Items []*InventoryItem `json:"items"`
}

type InventoryItemResponse struct {
	Item *InventoryItem `json:"item"`
}

type ListMovementsRequest struct {
	Tier         string `json:"tier,omitempty"`
	IngredientID string `json:"ingredient_id,omitempty"`
	Page         int    `json:"page"`
	PageSize     int    `json:"page_size"`
}

type ListMovementsResponse struct {
	Movements []*Movement `json:"movements"`
	Total     int         `json:"total"`
}

type InventoryServiceServer interface {
	AddItems(context.Context, *AddItemsRequest) (*InventoryItemsResponse, error)
	TransferToKitchen(context.Context, *TransferRequest) (*InventoryItemsResponse, error)
	TransferToMain(context.Context, *TransferRequest) (*InventoryItemsResponse, error)
	SetMainQuantity(context.Context, *SetQuantityRequest) (*InventoryItemResponse, error)
	ListItems(context.Context, *ListItemsRequest) (*InventoryItemsResponse, error)
	ListMovements(context.Context, *ListMovementsRequest) (*ListMovementsResponse, error)
}

var InventoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: InventoryServiceName,
	HandlerType: (*InventoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(InventoryServiceName, "AddItems", InventoryServiceServer.AddItems),
		unary(InventoryServiceName, "TransferToKitchen", InventoryServiceServer.TransferToKitchen),
		unary(InventoryServiceName, "TransferToMain", InventoryServiceServer.TransferToMain),
		unary(InventoryServiceName, "SetMainQuantity", InventoryServiceServer.SetMainQuantity),
		unary(InventoryServiceName, "ListItems", InventoryServiceServer.ListItems),
		unary(InventoryServiceName, "ListMovements", InventoryServiceServer.ListMovements),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pos/v1/inventory.proto",
}

func RegisterInventoryServiceServer(s grpc.ServiceRegistrar, srv InventoryServiceServer) {
	s.RegisterService(&InventoryService_ServiceDesc, srv)
}

type InventoryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewInventoryServiceClient(cc grpc.ClientConnInterface) *InventoryServiceClient {
	return &InventoryServiceClient{cc: cc}
}

func (c *InventoryServiceClient) AddItems(ctx context.Context, in *AddItemsRequest, opts ...grpc.CallOption) (*InventoryItemsResponse, error) {
	return invoke[InventoryItemsResponse](ctx, c.cc, InventoryServiceName, "AddItems", in, opts...)
}

func (c *InventoryServiceClient) TransferToKitchen(ctx context.Context, in *TransferRequest, opts ...grpc.CallOption) (*InventoryItemsResponse, error) {
	return invoke[InventoryItemsResponse](ctx, c.cc, InventoryServiceName, "TransferToKitchen", in, opts...)
}

func (c *InventoryServiceClient) TransferToMain(ctx context.Context, in *TransferRequest, opts ...grpc.CallOption) (*InventoryItemsResponse, error) {
	return invoke[InventoryItemsResponse](ctx, c.cc, InventoryServiceName, "TransferToMain", in, opts...)
}

func (c *InventoryServiceClient) SetMainQuantity(ctx context.Context, in *SetQuantityRequest, opts ...grpc.CallOption) (*InventoryItemResponse, error) {
	return invoke[InventoryItemResponse](ctx, c.cc, InventoryServiceName, "SetMainQuantity", in, opts...)
}

func (c *InventoryServiceClient) ListItems(ctx context.Context, in *ListItemsRequest, opts ...grpc.CallOption) (*InventoryItemsResponse, error) {
	return invoke[InventoryItemsResponse](ctx, c.cc, InventoryServiceName, "ListItems", in, opts...)
}

func (c *InventoryServiceClient) ListMovements(ctx context.Context, in *ListMovementsRequest, opts ...grpc.CallOption) (*ListMovementsResponse, error) {
	return invoke[ListMovementsResponse](ctx, c.cc, InventoryServiceName, "ListMovements", in, opts...)
}
