package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"seekbar/internal/api"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Start requests the daemon to start enhancement.
func (c *Client) Start() (*StartResponse, error) {
	var resp StartResponse
	if err := c.client.Call("Seekbar.Start", StartRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop requests the daemon to stop enhancement and release all overlays.
func (c *Client) Stop() (*StopResponse, error) {
	var resp StopResponse
	if err := c.client.Call("Seekbar.Stop", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Seekbar.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Command dispatches one playback command token.
func (c *Client) Command(token string) (*CommandResponse, error) {
	var resp CommandResponse
	if err := c.client.Call("Seekbar.Command", CommandRequest{Command: token}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EnhanceAll forces a full-document enhancement pass.
func (c *Client) EnhanceAll() (*EnhanceAllResponse, error) {
	var resp EnhanceAllResponse
	if err := c.client.Call("Seekbar.EnhanceAll", EnhanceAllRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DetachAll forces teardown of every overlay.
func (c *Client) DetachAll() (*DetachAllResponse, error) {
	var resp DetachAllResponse
	if err := c.client.Call("Seekbar.DetachAll", DetachAllRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PageLoad replaces the mirrored document body with the given fragments.
func (c *Client) PageLoad(nodes []api.NodeSpec) (*PageLoadResponse, error) {
	var resp PageLoadResponse
	if err := c.client.Call("Seekbar.PageLoad", PageLoadRequest{Nodes: nodes}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PageInsert inserts one fragment under the identified parent.
func (c *Client) PageInsert(parent string, node api.NodeSpec) (*PageInsertResponse, error) {
	var resp PageInsertResponse
	if err := c.client.Call("Seekbar.PageInsert", PageInsertRequest{Parent: parent, Node: node}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PageRemove removes one node by id.
func (c *Client) PageRemove(id string) (*PageRemoveResponse, error) {
	var resp PageRemoveResponse
	if err := c.client.Call("Seekbar.PageRemove", PageRemoveRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PageVideo applies playback state to one mirrored video.
func (c *Client) PageVideo(id string, state api.VideoState) (*PageVideoResponse, error) {
	var resp PageVideoResponse
	if err := c.client.Call("Seekbar.PageVideo", PageVideoRequest{ID: id, State: state}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
