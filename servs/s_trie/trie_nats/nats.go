// file: rtrie/servs/s_trie/trie_nats/nats.go
package trie_nats

import (
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rskv-p/rtrie/codec"
	"github.com/rskv-p/rtrie/config"
	"github.com/rskv-p/rtrie/constant"
	"github.com/rskv-p/rtrie/pkg/x_log"
	"github.com/rskv-p/rtrie/servs/s_trie/trie_serv"
)

const queueGroup = "rtrie"

// Request is the body of an exec request; a non-JSON body is taken as the line itself.
type Request struct {
	Line string `json:"line"`
}

// Reply is the body of an exec reply.
type Reply struct {
	Out   string `json:"out,omitempty"`
	Error string `json:"error,omitempty"`
}

// ExecSubject and EventSubject derive the wire subjects from the configured base.
func ExecSubject(base string) string  { return base + ".exec" }
func EventSubject(base string) string { return base + ".events" }

// Endpoint serves shell commands over NATS request/reply and publishes change events.
type Endpoint struct {
	svc     *trie_serv.Service
	ns      *server.Server // nil when connected to an external server
	nc      *nats.Conn
	sub     *nats.Subscription
	unwatch func()
	subject string
	log     zerolog.Logger
}

// Start connects to cfg.NatsURL, or embeds a server on cfg.NatsHost:cfg.NatsPort, and
// begins answering on ExecSubject(cfg.NatsSubject).
func Start(svc *trie_serv.Service, cfg *config.Config) (*Endpoint, error) {
	e := &Endpoint{
		svc:     svc,
		subject: cfg.NatsSubject,
		log:     x_log.New("trie_nats").With().Str("session", svc.ID()).Logger(),
	}

	url := cfg.NatsURL
	if url == "" {
		if cfg.NatsPort == 0 {
			return nil, fmt.Errorf("%w: nats_url or nats_port required", constant.ErrInvalidConfig)
		}
		ns, err := server.NewServer(&server.Options{
			Host:   cfg.NatsHost,
			Port:   cfg.NatsPort,
			NoLog:  true,
			NoSigs: true,
		})
		if err != nil {
			return nil, fmt.Errorf("nats-server init: %w", err)
		}
		go ns.Start()
		if !ns.ReadyForConnections(5 * time.Second) {
			ns.Shutdown()
			return nil, fmt.Errorf("nats-server not ready")
		}
		e.ns = ns
		url = ns.ClientURL()
	}

	nc, err := nats.Connect(url, nats.Name("rtrie-"+svc.ID()))
	if err != nil {
		e.shutdownServer()
		return nil, fmt.Errorf("nats client connect: %w", err)
	}
	e.nc = nc

	e.sub, err = nc.QueueSubscribe(ExecSubject(e.subject), queueGroup, e.handleExec)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("nats subscribe: %w", err)
	}
	e.unwatch = svc.Watch(e.publishEvent)

	e.log.Info().Str("url", url).Str("subject", ExecSubject(e.subject)).Bool("embedded", e.ns != nil).Msg("NATS endpoint ready")
	return e, nil
}

// ClientURL returns the URL clients should dial.
func (e *Endpoint) ClientURL() string {
	return e.nc.ConnectedUrl()
}

func (e *Endpoint) handleExec(msg *nats.Msg) {
	var req Request
	if codec.Unmarshal(msg.Data, &req) != nil {
		req.Line = string(msg.Data)
	}

	var rep Reply
	out, err := e.svc.Exec(req.Line)
	if err != nil {
		rep.Error = err.Error()
	} else {
		rep.Out = out
	}
	if err := msg.Respond(codec.MustMarshal(rep)); err != nil {
		e.log.Warn().Err(err).Msg("nats respond failed")
	}
}

func (e *Endpoint) publishEvent(ev trie_serv.Event) {
	if err := e.nc.Publish(EventSubject(e.subject), codec.MustMarshal(ev)); err != nil {
		e.log.Debug().Err(err).Msg("event publish failed")
	}
}

// Close stops answering and shuts down an embedded server.
func (e *Endpoint) Close() {
	if e.unwatch != nil {
		e.unwatch()
	}
	if e.nc != nil {
		e.nc.Close()
	}
	e.shutdownServer()
}

func (e *Endpoint) shutdownServer() {
	if e.ns != nil {
		e.ns.Shutdown()
		e.ns.WaitForShutdown()
	}
}
