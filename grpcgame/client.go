package grpcgame

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/grpc"

	"github.com/louisbranch/gamefuzz"
	platformgrpc "github.com/louisbranch/gamefuzz/internal/platform/grpc"
)

// Client drives a remote game backend over gRPC. It implements
// gamefuzz.Backend; gRPC status failures and malformed responses surface as
// errors, distinct from the rejection outcomes carried in PlayOutcome.
type Client struct {
	conn *grpc.ClientConn
}

// NewClient wraps an established connection.
func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn}
}

// Close tears down the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) invoke(ctx context.Context, method string, req, resp any) error {
	return c.conn.Invoke(ctx, "/"+serviceName+"/"+method, req, resp, grpc.CallContentSubtype(codecName))
}

// PlayerCounts implements gamefuzz.Backend.
func (c *Client) PlayerCounts(ctx context.Context) ([]int, error) {
	var resp PlayerCountsResponse
	if err := c.invoke(ctx, "PlayerCounts", &PlayerCountsRequest{}, &resp); err != nil {
		return nil, fmt.Errorf("player counts request: %w", err)
	}
	return resp.PlayerCounts, nil
}

// NewGame implements gamefuzz.Backend.
func (c *Client) NewGame(ctx context.Context, players int) (*gamefuzz.Session, error) {
	var resp NewGameResponse
	if err := c.invoke(ctx, "NewGame", &NewGameRequest{Players: players}, &resp); err != nil {
		return nil, fmt.Errorf("new game request: %w", err)
	}
	if resp.Session == nil {
		return nil, errors.New("new game response has no session")
	}
	return resp.Session, nil
}

// Play implements gamefuzz.Backend. A reported user error classifies as
// rejected and nonblank remaining input as incomplete; anything else must
// carry the advanced session.
func (c *Client) Play(ctx context.Context, command string, game json.RawMessage, player int, names []string) (gamefuzz.PlayOutcome, error) {
	req := &PlayRequest{Command: command, Game: game, Player: player, Names: names}
	var resp PlayResponse
	if err := c.invoke(ctx, "Play", req, &resp); err != nil {
		return gamefuzz.PlayOutcome{}, fmt.Errorf("play request: %w", err)
	}
	switch {
	case resp.UserError != "":
		return gamefuzz.PlayOutcome{Kind: gamefuzz.PlayRejected, Message: resp.UserError}, nil
	case strings.TrimSpace(resp.RemainingInput) != "":
		return gamefuzz.PlayOutcome{Kind: gamefuzz.PlayIncomplete, Remaining: resp.RemainingInput}, nil
	}
	if resp.Session == nil {
		return gamefuzz.PlayOutcome{}, errors.New("play response has no session")
	}
	return gamefuzz.PlayOutcome{Kind: gamefuzz.PlayApplied, Session: resp.Session}, nil
}

// NewFactory returns a backend factory that dials addr once per worker,
// waiting for the backend's health check before handing over the client.
func NewFactory(addr string, dialTimeout time.Duration) gamefuzz.BackendFactory {
	return func(ctx context.Context) (gamefuzz.Backend, error) {
		conn, err := platformgrpc.DialWithHealth(ctx, addr, dialTimeout, platformgrpc.DefaultClientDialOptions()...)
		if err != nil {
			return nil, fmt.Errorf("dial game backend %s: %w", addr, err)
		}
		return NewClient(conn), nil
	}
}
