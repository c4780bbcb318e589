package posv1

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type stubOrders struct {
	OrderServiceServer
	lastCode string
}

func (s *stubOrders) GetOrder(_ context.Context, req *OrderCodeRequest) (*OrderResponse, error) {
	s.lastCode = req.OrderCode
	if req.OrderCode == "ord-404" {
		return nil, status.Error(codes.NotFound, "order ord-404 was not found")
	}
	table := 4
	return &OrderResponse{Order: &Order{
		OrderCode:   req.OrderCode,
		Type:        "dine_in",
		TableNumber: &table,
		Status:      "processing",
		Total:       "18.75",
		Products:    []ProductLine{{ProductID: "burger", Quantity: 2}},
	}}, nil
}

func dial(t *testing.T, register func(*grpc.Server), opts ...grpc.ServerOption) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(opts...)
	register(srv)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestCodecRegistered(t *testing.T) {
	if c := encoding.GetCodec(CodecName); c == nil {
		t.Fatal("json codec is not registered")
	}
}

func TestOrderServiceRoundTrip(t *testing.T) {
	stub := &stubOrders{}
	conn := dial(t, func(s *grpc.Server) { RegisterOrderServiceServer(s, stub) })
	client := NewOrderServiceClient(conn)

	resp, err := client.GetOrder(context.Background(), &OrderCodeRequest{OrderCode: "ord-7"})
	if err != nil {
		t.Fatal(err)
	}
	if stub.lastCode != "ord-7" {
		t.Errorf("server saw %q", stub.lastCode)
	}
	o := resp.Order
	if o.OrderCode != "ord-7" || o.Total != "18.75" || *o.TableNumber != 4 || o.Products[0].Quantity != 2 {
		t.Errorf("order = %+v", o)
	}
}

func TestOrderServiceStatusPropagates(t *testing.T) {
	conn := dial(t, func(s *grpc.Server) { RegisterOrderServiceServer(s, &stubOrders{}) })

	_, err := NewOrderServiceClient(conn).GetOrder(context.Background(), &OrderCodeRequest{OrderCode: "ord-404"})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("code = %v, want NotFound", status.Code(err))
	}
}

func TestUnaryRunsInterceptorWithFullMethod(t *testing.T) {
	var seen string
	interceptor := func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		seen = info.FullMethod
		return handler(ctx, req)
	}
	conn := dial(t, func(s *grpc.Server) { RegisterOrderServiceServer(s, &stubOrders{}) }, grpc.UnaryInterceptor(interceptor))

	if _, err := NewOrderServiceClient(conn).GetOrder(context.Background(), &OrderCodeRequest{OrderCode: "ord-1"}); err != nil {
		t.Fatal(err)
	}
	if seen != "/pos.v1.OrderService/GetOrder" {
		t.Errorf("FullMethod = %q", seen)
	}
}

func TestServiceDescsAreComplete(t *testing.T) {
	descs := map[*grpc.ServiceDesc]int{
		&OrderService_ServiceDesc:     6,
		&ReportService_ServiceDesc:    1,
		&InventoryService_ServiceDesc: 6,
		&TableService_ServiceDesc:     3,
		&CatalogService_ServiceDesc:   20,
	}
	for d, want := range descs {
		if got := len(d.Methods); got != want {
			t.Errorf("%s has %d methods, want %d", d.ServiceName, got, want)
		}
		seen := map[string]bool{}
		for _, m := range d.Methods {
			if seen[m.MethodName] {
				t.Errorf("%s: duplicate method %s", d.ServiceName, m.MethodName)
			}
			seen[m.MethodName] = true
		}
	}
}
