// Package natsrpc binds the auth orchestrator to NATS request/reply. Each
// operation name is a subject; replies carry either the operation result or
// the flat {status, message} failure shape.
package natsrpc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"

	auth "github.com/goliatone/go-airline-auth"
	"github.com/goliatone/go-airline-auth/dto"
)

// DefaultQueueGroup load-balances replicas of this service.
const DefaultQueueGroup = "auth-service"

// DefaultHandlerTimeout bounds a single request; hashing and signing are
// fixed-cost, so anything slower is a stuck store.
const DefaultHandlerTimeout = 5 * time.Second

// Server subscribes the orchestrator's operations on a NATS connection.
type Server struct {
	conn    *nats.Conn
	orch    *auth.Orchestrator
	logger  auth.Logger
	queue   string
	timeout time.Duration
	subs    []*nats.Subscription
}

type Option func(*Server)

func WithLogger(logger auth.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithQueueGroup(queue string) Option {
	return func(s *Server) {
		if queue != "" {
			s.queue = queue
		}
	}
}

func WithHandlerTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// NewServer creates a Server over an established connection.
func NewServer(conn *nats.Conn, orch *auth.Orchestrator, opts ...Option) *Server {
	s := &Server{
		conn:    conn,
		orch:    orch,
		logger:  defLogger{},
		queue:   DefaultQueueGroup,
		timeout: DefaultHandlerTimeout,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// Start subscribes every operation subject in the service queue group.
func (s *Server) Start() error {
	for _, subject := range auth.Operations() {
		sub, err := s.conn.QueueSubscribe(subject, s.queue, s.handle)
		if err != nil {
			return err
		}
		s.subs = append(s.subs, sub)
		s.logger.Info("natsrpc subscribed", "subject", subject, "queue", s.queue)
	}

	return nil
}

// Stop unsubscribes and drains the connection so in-flight requests finish.
func (s *Server) Stop() error {
	for _, sub := range s.subs {
		if err := sub.Unsubscribe(); err != nil {
			s.logger.Error("natsrpc unsubscribe failed", "error", err)
		}
	}
	s.subs = nil

	return s.conn.Drain()
}

func (s *Server) handle(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	result, opErr := s.dispatch(ctx, msg.Subject, msg.Data)

	var reply []byte
	if opErr != nil {
		reply = encodeError(opErr)
	} else {
		encoded, err := json.Marshal(result)
		if err != nil {
			s.logger.Error("natsrpc failed to encode reply", "subject", msg.Subject, "error", err)
			encoded = encodeError(&auth.OperationError{Status: 400, Message: err.Error()})
		}
		reply = encoded
	}

	if err := msg.Respond(reply); err != nil {
		s.logger.Error("natsrpc failed to respond", "subject", msg.Subject, "error", err)
	}
}

// dispatch decodes and validates the payload for the named operation, then
// invokes the orchestrator.
func (s *Server) dispatch(ctx context.Context, subject string, data []byte) (any, *auth.OperationError) {
	switch subject {
	case auth.OpRegisterUser:
		var payload dto.RegisterUser
		if opErr := decodePayload(data, &payload); opErr != nil {
			return nil, opErr
		}
		result, err := s.orch.RegisterUser(ctx, payload.Email, payload.Name, payload.Password)
		if err != nil {
			return nil, auth.AsOperationError(err)
		}
		return result, nil

	case auth.OpLoginUser:
		var payload dto.LoginUser
		if opErr := decodePayload(data, &payload); opErr != nil {
			return nil, opErr
		}
		result, err := s.orch.LoginUser(ctx, payload.Email, payload.Password)
		if err != nil {
			return nil, auth.AsOperationError(err)
		}
		return result, nil

	case auth.OpRegisterTenant:
		var payload dto.RegisterSubscription
		if opErr := decodePayload(data, &payload); opErr != nil {
			return nil, opErr
		}
		result, err := s.orch.RegisterTenant(ctx, payload.Registration())
		if err != nil {
			return nil, auth.AsOperationError(err)
		}
		return result, nil

	case auth.OpLoginAdmin:
		var payload dto.LoginAirline
		if opErr := decodePayload(data, &payload); opErr != nil {
			return nil, opErr
		}
		result, err := s.orch.LoginAdmin(ctx, payload.AdminEmail, payload.AdminPassword)
		if err != nil {
			return nil, auth.AsOperationError(err)
		}
		return result, nil

	case auth.OpVerifyToken:
		result, err := s.orch.VerifyToken(ctx, decodeToken(data))
		if err != nil {
			return nil, auth.AsOperationError(err)
		}
		return result, nil
	}

	return nil, &auth.OperationError{Status: 400, Message: "unknown operation: " + subject}
}

type validatable interface {
	Validate() error
}

func decodePayload(data []byte, payload validatable) *auth.OperationError {
	if err := json.Unmarshal(data, payload); err != nil {
		return &auth.OperationError{Status: 400, Message: "invalid payload: " + err.Error()}
	}

	if err := payload.Validate(); err != nil {
		return &auth.OperationError{Status: 400, Message: err.Error()}
	}

	return nil
}

// decodeToken accepts the token both as a JSON string and as a raw string
// payload; clients send either.
func decodeToken(data []byte) string {
	var token string
	if err := json.Unmarshal(data, &token); err == nil {
		return token
	}
	return string(data)
}

func encodeError(opErr *auth.OperationError) []byte {
	encoded, err := json.Marshal(opErr)
	if err != nil {
		return []byte(`{"status":400,"message":"internal error"}`)
	}
	return encoded
}

type defLogger struct{}

func (d defLogger) Debug(format string, args ...any) {}
func (d defLogger) Info(format string, args ...any)  {}
func (d defLogger) Error(format string, args ...any) {}
