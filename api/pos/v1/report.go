package posv1

import (
	"context"

	"google.golang.org/grpc"
)

const ReportServiceName = "pos.v1.ReportService"

type DailyReportRequest struct {
	Days int `json:"days"`
}

type DailyReport struct {
	Date   string `json:"date"`
	Sales  string `json:"sales"`
	Profit string `json:"profit"`
}

type DailyReportResponse struct {
	TotalSales  string         `json:"total_sales"`
	TotalProfit string         `json:"total_profit"`
	TotalOrders int            `json:"total_orders"`
	Days        []*DailyReport `json:"days"`
}

type ReportServiceServer interface {
	DailyReport(context.Context, *DailyReportRequest) (*DailyReportResponse, error)
}

var ReportService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ReportServiceName,
	HandlerType: (*ReportServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(ReportServiceName, "DailyReport", ReportServiceServer.DailyReport),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pos/v1/report.proto",
}

func RegisterReportServiceServer(s grpc.ServiceRegistrar, srv ReportServiceServer) {
	s.RegisterService(&ReportService_ServiceDesc, srv)
}

type ReportServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewReportServiceClient(cc grpc.ClientConnInterface) *ReportServiceClient {
	return &ReportServiceClient{cc: cc}
}

func (c *ReportServiceClient) DailyReport(ctx context.Context, in *DailyReportRequest, opts ...grpc.CallOption) (*DailyReportResponse, error) {
	return invoke[DailyReportResponse](ctx, c.cc, ReportServiceName, "DailyReport", in, opts...)
}
