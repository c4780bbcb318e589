package posv1

import (
	"context"

	"google.golang.org/grpc"
)

const TableServiceName = "pos.v1.TableService"

type Table struct {
	ID         string `json:"id"`
	Number     int    `json:"number"`
	IsReserved bool   `json:"is_reserved"`
}

type TableResponse struct {
	Table *Table `json:"table"`
}

type ListTablesResponse struct {
	Tables []*Table `json:"tables"`
}

type TableNumberRequest struct {
	Number int `json:"number"`
}

type TableServiceServer interface {
	CreateTable(context.Context, *Empty) (*TableResponse, error)
	ListTables(context.Context, *Empty) (*ListTablesResponse, error)
	ReleaseTable(context.Context, *TableNumberRequest) (*TableResponse, error)
}

var TableService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: TableServiceName,
	HandlerType: (*TableServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(TableServiceName, "CreateTable", TableServiceServer.CreateTable),
		unary(TableServiceName, "ListTables", TableServiceServer.ListTables),
		unary(TableServiceName, "ReleaseTable", TableServiceServer.ReleaseTable),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pos/v1/table.proto",
}

func RegisterTableServiceServer(s grpc.ServiceRegistrar, srv TableServiceServer) {
	s.RegisterService(&TableService_ServiceDesc, srv)
}

type TableServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTableServiceClient(cc grpc.ClientConnInterface) *TableServiceClient {
	return &TableServiceClient{cc: cc}
}

func (c *TableServiceClient) CreateTable(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*TableResponse, error) {
	return invoke[TableResponse](ctx, c.cc, TableServiceName, "CreateTable", in, opts...)
}

func (c *TableServiceClient) ListTables(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListTablesResponse, error) {
	return invoke[ListTablesResponse](ctx, c.cc, TableServiceName, "ListTables", in, opts...)
}

func (c *TableServiceClient) ReleaseTable(ctx context.Context, in *TableNumberRequest, opts ...grpc.CallOption) (*TableResponse, error) {
	return invoke[TableResponse](ctx, c.cc, TableServiceName, "ReleaseTable", in, opts...)
}
