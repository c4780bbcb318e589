package posv1

import (
	"context"

	"google.golang.org/grpc"
)

const OrderServiceName = "pos.v1.OrderService"

type ProductLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type DealLine struct {
	DealID   string `json:"deal_id"`
	Quantity int    `json:"quantity"`
}

type OrderInput struct {
	Type         string        `json:"type"`
	TableNumber  *int          `json:"table_number,omitempty"`
	CustomerName *string       `json:"customer_name,omitempty"`
	PhoneNumber  *string       `json:"phone_number,omitempty"`
	Address      *string       `json:"address,omitempty"`
	Products     []ProductLine `json:"products"`
	Deals        []DealLine    `json:"deals"`
	// Total is a decimal string; the client computes it.
	Total string `json:"total"`
}

type Order struct {
	ID           string        `json:"id"`
	OrderCode    string        `json:"order_code"`
	Type         string        `json:"type"`
	TableNumber  *int          `json:"table_number,omitempty"`
	CustomerName *string       `json:"customer_name,omitempty"`
	PhoneNumber  *string       `json:"phone_number,omitempty"`
	Address      *string       `json:"address,omitempty"`
	Status       string        `json:"status"`
	Total        string        `json:"total"`
	Products     []ProductLine `json:"products"`
	Deals        []DealLine    `json:"deals"`
	CreatedAt    string        `json:"created_at"`
	UpdatedAt    string        `json:"updated_at"`
}

type CreateOrderRequest struct {
	Order *OrderInput `json:"order"`
}

type UpdateOrderRequest struct {
	OrderCode string      `json:"order_code"`
	Order     *OrderInput `json:"order"`
}

type OrderCodeRequest struct {
	OrderCode string `json:"order_code"`
}

type OrderResponse struct {
	Order *Order `json:"order"`
}

type ListOrdersRequest struct {
	Days       int  `json:"days"`
	ActiveOnly bool `json:"active_only"`
}

type ListOrdersResponse struct {
	Orders []*Order `json:"orders"`
}

type OrderServiceServer interface {
	CreateOrder(context.Context, *CreateOrderRequest) (*OrderResponse, error)
	UpdateOrder(context.Context, *UpdateOrderRequest) (*OrderResponse, error)
	CancelOrder(context.Context, *OrderCodeRequest) (*Empty, error)
	Invoice(context.Context, *OrderCodeRequest) (*OrderResponse, error)
	GetOrder(context.Context, *OrderCodeRequest) (*OrderResponse, error)
	ListOrders(context.Context, *ListOrdersRequest) (*ListOrdersResponse, error)
}

var OrderService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: OrderServiceName,
	HandlerType: (*OrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(OrderServiceName, "CreateOrder", OrderServiceServer.CreateOrder),
		unary(OrderServiceName, "UpdateOrder", OrderServiceServer.UpdateOrder),
		unary(OrderServiceName, "CancelOrder", OrderServiceServer.CancelOrder),
		unary(OrderServiceName, "Invoice", OrderServiceServer.Invoice),
		unary(OrderServiceName, "GetOrder", OrderServiceServer.GetOrder),
		unary(OrderServiceName, "ListOrders", OrderServiceServer.ListOrders),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pos/v1/order.proto",
}

func RegisterOrderServiceServer(s grpc.ServiceRegistrar, srv OrderServiceServer) {
	s.RegisterService(&OrderService_ServiceDesc, srv)
}

type OrderServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewOrderServiceClient(cc grpc.ClientConnInterface) *OrderServiceClient {
	return &OrderServiceClient{cc: cc}
}

func (c *OrderServiceClient) CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return invoke[OrderResponse](ctx, c.cc, OrderServiceName, "CreateOrder", in, opts...)
}

func (c *OrderServiceClient) UpdateOrder(ctx context.Context, in *UpdateOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return invoke[OrderResponse](ctx, c.cc, OrderServiceName, "UpdateOrder", in, opts...)
}

func (c *OrderServiceClient) CancelOrder(ctx context.Context, in *OrderCodeRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, OrderServiceName, "CancelOrder", in, opts...)
}

func (c *OrderServiceClient) Invoice(ctx context.Context, in *OrderCodeRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return invoke[OrderResponse](ctx, c.cc, OrderServiceName, "Invoice", in, opts...)
}

func (c *OrderServiceClient) GetOrder(ctx context.Context, in *OrderCodeRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	return invoke[OrderResponse](ctx, c.cc, OrderServiceName, "GetOrder", in, opts...)
}

func (c *OrderServiceClient) ListOrders(ctx context.Context, in *ListOrdersRequest, opts ...grpc.CallOption) (*ListOrdersResponse, error) {
	return invoke[ListOrdersResponse](ctx, c.cc, OrderServiceName, "ListOrders", in, opts...)
}
