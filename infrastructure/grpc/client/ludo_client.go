package client

import (
	"context"
	"errors"
	"io"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

const serviceName = "ludo.v1.LudoService"

var connectStream = &grpc.StreamDesc{StreamName: "Connect", ServerStreams: true}

var ErrNotConnected = errors.New("connect must succeed before calling a protected method")

// LudoClient talks to ludo.v1.LudoService. The token handed out by Connect
// is attached to every following unary call.
type LudoClient struct {
	conn     grpc.ClientConnInterface
	mu       sync.RWMutex
	token    string
	playerID string
}

func NewLudoClient(conn grpc.ClientConnInterface) *LudoClient {
	return &LudoClient{conn: conn}
}

// Stream yields the messages pushed on a Connect stream.
type Stream struct {
	stream grpc.ClientStream
}

// Recv blocks for the next room event. It returns io.EOF once the server closed the stream.
func (s *Stream) Recv() (map[string]any, error) {
	out := new(structpb.Struct)
	if err := s.stream.RecvMsg(out); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}

// Connect opens the event stream and waits for the "connected" greeting.
// operatorKey may be empty.
func (c *LudoClient) Connect(ctx context.Context, operatorKey string) (*Stream, error) {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
	}
	if operatorKey != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "x-operator-key", operatorKey)
	}
	cs, err := c.conn.NewStream(ctx, connectStream, method("Connect"))
	if err != nil {
		return nil, err
	}
	if err := cs.SendMsg(&structpb.Struct{}); err != nil {
		return nil, err
	}
	if err := cs.CloseSend(); err != nil {
		return nil, err
	}
	stream := &Stream{stream: cs}
	hello, err := stream.Recv()
	if errors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.token, _ = hello["token"].(string)
	c.playerID, _ = hello["playerId"].(string)
	c.mu.Unlock()
	return stream, nil
}

func (c *LudoClient) PlayerID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

// Call invokes any unary method with a free-form request.
func (c *LudoClient) Call(ctx context.Context, name string, request map[string]any) (map[string]any, error) {
	in, err := structpb.NewStruct(request)
	if err != nil {
		return nil, err
	}
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
	} else if name != "CreateRoom" {
		return nil, ErrNotConnected
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method(name), in, out); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}

func (c *LudoClient) CreateRoom(ctx context.Context) (string, error) {
	out, err := c.Call(ctx, "CreateRoom", nil)
	if err != nil {
		return "", err
	}
	roomID, _ := out["roomId"].(string)
	return roomID, nil
}

func (c *LudoClient) Join(ctx context.Context, roomID, name, color string) (map[string]any, error) {
	return c.Call(ctx, "Join", map[string]any{"roomId": roomID, "name": name, "color": color})
}

func (c *LudoClient) ConfirmColor(ctx context.Context, roomID, color string) (map[string]any, error) {
	return c.Call(ctx, "ConfirmColor", map[string]any{"roomId": roomID, "color": color})
}

func (c *LudoClient) Start(ctx context.Context, roomID string) (map[string]any, error) {
	return c.Call(ctx, "Start", map[string]any{"roomId": roomID})
}

// RollDie rolls for the caller. forced is honoured for operators only.
func (c *LudoClient) RollDie(ctx context.Context, roomID string, forced *int) (map[string]any, error) {
	request := map[string]any{"roomId": roomID}
	if forced != nil {
		request["forced"] = *forced
	}
	return c.Call(ctx, "RollDie", request)
}

func (c *LudoClient) MoveDisc(ctx context.Context, roomID, color string, pawnIndex int) (map[string]any, error) {
	return c.Call(ctx, "MoveDisc", map[string]any{"roomId": roomID, "color": color, "pawnIndex": pawnIndex})
}

func (c *LudoClient) SwitchTurn(ctx context.Context, roomID string, force bool) (map[string]any, error) {
	return c.Call(ctx, "SwitchTurn", map[string]any{"roomId": roomID, "force": force})
}

func (c *LudoClient) Snapshot(ctx context.Context, roomID string) (map[string]any, error) {
	out, err := c.Call(ctx, "Snapshot", map[string]any{"roomId": roomID})
	if err != nil {
		return nil, err
	}
	session, _ := out["session"].(map[string]any)
	return session, nil
}

func (c *LudoClient) History(ctx context.Context, roomID string, cursor string) (map[string]any, error) {
	request := map[string]any{"roomId": roomID}
	if cursor != "" {
		request["cursor"] = cursor
	}
	return c.Call(ctx, "History", request)
}

func (c *LudoClient) Leave(ctx context.Context) error {
	_, err := c.Call(ctx, "Leave", nil)
	return err
}

func (c *LudoClient) Stats(ctx context.Context) (map[string]any, error) {
	return c.Call(ctx, "Stats", nil)
}

func method(name string) string {
	return "/" + serviceName + "/" + name
}
