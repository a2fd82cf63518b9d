package repairv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "bikerepair.v1.AppointmentsService"

const (
	AppointmentsService_CreateAppointment_FullMethodName        = "/" + ServiceName + "/CreateAppointment"
	AppointmentsService_UpdateAppointmentStatus_FullMethodName  = "/" + ServiceName + "/UpdateAppointmentStatus"
	AppointmentsService_DeleteAppointment_FullMethodName        = "/" + ServiceName + "/DeleteAppointment"
	AppointmentsService_ListUpcomingAppointments_FullMethodName = "/" + ServiceName + "/ListUpcomingAppointments"
	AppointmentsService_ListPastAppointments_FullMethodName     = "/" + ServiceName + "/ListPastAppointments"
	AppointmentsService_ListTimeSlots_FullMethodName            = "/" + ServiceName + "/ListTimeSlots"
	AppointmentsService_ListProblems_FullMethodName             = "/" + ServiceName + "/ListProblems"
)

type AppointmentsServiceServer interface {
	CreateAppointment(context.Context, *CreateAppointmentRequest) (*CreateAppointmentResponse, error)
	UpdateAppointmentStatus(context.Context, *UpdateAppointmentStatusRequest) (*UpdateAppointmentStatusResponse, error)
	DeleteAppointment(context.Context, *DeleteAppointmentRequest) (*DeleteAppointmentResponse, error)
	ListUpcomingAppointments(context.Context, *ListUpcomingAppointmentsRequest) (*ListAppointmentsResponse, error)
	ListPastAppointments(context.Context, *ListPastAppointmentsRequest) (*ListAppointmentsResponse, error)
	ListTimeSlots(context.Context, *ListTimeSlotsRequest) (*ListTimeSlotsResponse, error)
	ListProblems(context.Context, *ListProblemsRequest) (*ListProblemsResponse, error)
}

// UnimplementedAppointmentsServiceServer can be embedded to keep servers
// compiling when methods are added.
type UnimplementedAppointmentsServiceServer struct{}

func (UnimplementedAppointmentsServiceServer) CreateAppointment(context.Context, *CreateAppointmentRequest) (*CreateAppointmentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateAppointment not implemented")
}
func (UnimplementedAppointmentsServiceServer) UpdateAppointmentStatus(context.Context, *UpdateAppointmentStatusRequest) (*UpdateAppointmentStatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateAppointmentStatus not implemented")
}
func (UnimplementedAppointmentsServiceServer) DeleteAppointment(context.Context, *DeleteAppointmentRequest) (*DeleteAppointmentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteAppointment not implemented")
}
func (UnimplementedAppointmentsServiceServer) ListUpcomingAppointments(context.Context, *ListUpcomingAppointmentsRequest) (*ListAppointmentsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListUpcomingAppointments not implemented")
}
func (UnimplementedAppointmentsServiceServer) ListPastAppointments(context.Context, *ListPastAppointmentsRequest) (*ListAppointmentsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListPastAppointments not implemented")
}
func (UnimplementedAppointmentsServiceServer) ListTimeSlots(context.Context, *ListTimeSlotsRequest) (*ListTimeSlotsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTimeSlots not implemented")
}
func (UnimplementedAppointmentsServiceServer) ListProblems(context.Context, *ListProblemsRequest) (*ListProblemsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListProblems not implemented")
}

func RegisterAppointmentsServiceServer(s grpc.ServiceRegistrar, srv AppointmentsServiceServer) {
	s.RegisterService(&AppointmentsService_ServiceDesc, srv)
}

// unaryHandler adapts a typed method into a grpc.MethodDesc handler.
func unaryHandler[Req any, Resp any](fullMethod string, call func(AppointmentsServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AppointmentsServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AppointmentsServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var AppointmentsService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AppointmentsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateAppointment",
			Handler:    unaryHandler(AppointmentsService_CreateAppointment_FullMethodName, AppointmentsServiceServer.CreateAppointment),
		},
		{
			MethodName: "UpdateAppointmentStatus",
			Handler:    unaryHandler(AppointmentsService_UpdateAppointmentStatus_FullMethodName, AppointmentsServiceServer.UpdateAppointmentStatus),
		},
		{
			MethodName: "DeleteAppointment",
			Handler:    unaryHandler(AppointmentsService_DeleteAppointment_FullMethodName, AppointmentsServiceServer.DeleteAppointment),
		},
		{
			MethodName: "ListUpcomingAppointments",
			Handler:    unaryHandler(AppointmentsService_ListUpcomingAppointments_FullMethodName, AppointmentsServiceServer.ListUpcomingAppointments),
		},
		{
			MethodName: "ListPastAppointments",
			Handler:    unaryHandler(AppointmentsService_ListPastAppointments_FullMethodName, AppointmentsServiceServer.ListPastAppointments),
		},
		{
			MethodName: "ListTimeSlots",
			Handler:    unaryHandler(AppointmentsService_ListTimeSlots_FullMethodName, AppointmentsServiceServer.ListTimeSlots),
		},
		{
			MethodName: "ListProblems",
			Handler:    unaryHandler(AppointmentsService_ListProblems_FullMethodName, AppointmentsServiceServer.ListProblems),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bikerepair/v1/appointments.json",
}

type AppointmentsServiceClient interface {
	CreateAppointment(ctx context.Context, in *CreateAppointmentRequest, opts ...grpc.CallOption) (*CreateAppointmentResponse, error)
	UpdateAppointmentStatus(ctx context.Context, in *UpdateAppointmentStatusRequest, opts ...grpc.CallOption) (*UpdateAppointmentStatusResponse, error)
	DeleteAppointment(ctx context.Context, in *DeleteAppointmentRequest, opts ...grpc.CallOption) (*DeleteAppointmentResponse, error)
	ListUpcomingAppointments(ctx context.Context, in *ListUpcomingAppointmentsRequest, opts ...grpc.CallOption) (*ListAppointmentsResponse, error)
	ListPastAppointments(ctx context.Context, in *ListPastAppointmentsRequest, opts ...grpc.CallOption) (*ListAppointmentsResponse, error)
	ListTimeSlots(ctx context.Context, in *ListTimeSlotsRequest, opts ...grpc.CallOption) (*ListTimeSlotsResponse, error)
	ListProblems(ctx context.Context, in *ListProblemsRequest, opts ...grpc.CallOption) (*ListProblemsResponse, error)
}

type appointmentsServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAppointmentsServiceClient(cc grpc.ClientConnInterface) AppointmentsServiceClient {
	return &appointmentsServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *appointmentsServiceClient) CreateAppointment(ctx context.Context, in *CreateAppointmentRequest, opts ...grpc.CallOption) (*CreateAppointmentResponse, error) {
	return invoke[CreateAppointmentResponse](ctx, c.cc, AppointmentsService_CreateAppointment_FullMethodName, in, opts)
}

func (c *appointmentsServiceClient) UpdateAppointmentStatus(ctx context.Context, in *UpdateAppointmentStatusRequest, opts ...grpc.CallOption) (*UpdateAppointmentStatusResponse, error) {
	return invoke[UpdateAppointmentStatusResponse](ctx, c.cc, AppointmentsService_UpdateAppointmentStatus_FullMethodName, in, opts)
}

func (c *appointmentsServiceClient) DeleteAppointment(ctx context.Context, in *DeleteAppointmentRequest, opts ...grpc.CallOption) (*DeleteAppointmentResponse, error) {
	return invoke[DeleteAppointmentResponse](ctx, c.cc, AppointmentsService_DeleteAppointment_FullMethodName, in, opts)
}

func (c *appointmentsServiceClient) ListUpcomingAppointments(ctx context.Context, in *ListUpcomingAppointmentsRequest, opts ...grpc.CallOption) (*ListAppointmentsResponse, error) {
	return invoke[ListAppointmentsResponse](ctx, c.cc, AppointmentsService_ListUpcomingAppointments_FullMethodName, in, opts)
}

func (c *appointmentsServiceClient) ListPastAppointments(ctx context.Context, in *ListPastAppointmentsRequest, opts ...grpc.CallOption) (*ListAppointmentsResponse, error) {
	return invoke[ListAppointmentsResponse](ctx, c.cc, AppointmentsService_ListPastAppointments_FullMethodName, in, opts)
}

func (c *appointmentsServiceClient) ListTimeSlots(ctx context.Context, in *ListTimeSlotsRequest, opts ...grpc.CallOption) (*ListTimeSlotsResponse, error) {
	return invoke[ListTimeSlotsResponse](ctx, c.cc, AppointmentsService_ListTimeSlots_FullMethodName, in, opts)
}

func (c *appointmentsServiceClient) ListProblems(ctx context.Context, in *ListProblemsRequest, opts ...grpc.CallOption) (*ListProblemsResponse, error) {
	return invoke[ListProblemsResponse](ctx, c.cc, AppointmentsService_ListProblems_FullMethodName, in, opts)
}
