package cluster

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const deliverMethod = "/vispipe.cluster.MailboxService/Deliver"

// mailboxService receives frames sent by other ranks
type mailboxService interface {
	Deliver(ctx context.Context, req *wrapperspb.BytesValue) (*emptypb.Empty, error)
}

type mailboxServer struct {
	box *mailbox
	log *logrus.Entry
}

// createMailboxServer creates a new mailboxServer
func createMailboxServer(box *mailbox, log *logrus.Entry) *mailboxServer {
	return &mailboxServer{box: box, log: log}
}

// Deliver decodes a frame and queues it for Receive
func (s *mailboxServer) Deliver(ctx context.Context, req *wrapperspb.BytesValue) (*emptypb.Empty, error) {
	f, err := decodeFrame(req.GetValue())
	if err != nil {
		s.log.WithError(err).Error("dropping corrupt frame")
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"source": f.source, "tag": f.tag, "count": len(f.values)}).Trace("received frame")
	s.box.deliver(f)
	return &emptypb.Empty{}, nil
}

func deliverHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(mailboxService).Deliver(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: deliverMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(mailboxService).Deliver(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

var mailboxServiceDesc = grpc.ServiceDesc{
	ServiceName: "vispipe.cluster.MailboxService",
	HandlerType: (*mailboxService)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Deliver", Handler: deliverHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vispipe/cluster/mailbox",
}

func registerMailboxServer(s *grpc.Server, srv mailboxService) {
	s.RegisterService(&mailboxServiceDesc, srv)
}
