// file: rtrie/servs/s_trie/trie_nats/client.go
package trie_nats

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rskv-p/rtrie/codec"
	"github.com/rskv-p/rtrie/servs/s_trie/trie_serv"
)

// Client sends shell commands to an Endpoint.
type Client struct {
	nc      *nats.Conn
	subject string
}

// Dial connects to url and targets the endpoint listening on base.
func Dial(url, base string) (*Client, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &Client{nc: nc, subject: base}, nil
}

// Exec runs line remotely; a command error comes back as an error.
func (c *Client) Exec(ctx context.Context, line string) (string, error) {
	msg, err := c.nc.RequestWithContext(ctx, ExecSubject(c.subject), codec.MustMarshal(Request{Line: line}))
	if err != nil {
		return "", err
	}
	var rep Reply
	if err := codec.Unmarshal(msg.Data, &rep); err != nil {
		return "", err
	}
	if rep.Error != "" {
		return "", fmt.Errorf("remote: %s", rep.Error)
	}
	return rep.Out, nil
}

// Events subscribes fn to change events; the returned function unsubscribes.
func (c *Client) Events(fn func(trie_serv.Event)) (func(), error) {
	sub, err := c.nc.Subscribe(EventSubject(c.subject), func(msg *nats.Msg) {
		var ev trie_serv.Event
		if codec.Unmarshal(msg.Data, &ev) == nil {
			fn(ev)
		}
	})
	if err != nil {
		return nil, err
	}
	if err := c.nc.Flush(); err != nil {
		_ = sub.Unsubscribe()
		return nil, err
	}
	return func() { _ = sub.Unsubscribe() }, nil
}

func (c *Client) Close() {
	c.nc.Close()
}
