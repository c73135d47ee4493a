// file: rtrie/servs/s_trie/trie_api/ws.go
package trie_api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rskv-p/rtrie/codec"
	"github.com/rskv-p/rtrie/pkg/x_log"
	"github.com/rskv-p/rtrie/recover"
	"github.com/rskv-p/rtrie/servs/s_trie/trie_serv"
)

const (
	watchBuffer = 64
	writeWait   = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWatch streams every trie mutation to a websocket client as a JSON event.
// A client that falls more than watchBuffer events behind is disconnected.
func handleWatch(s *trie_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return // Upgrade already replied
		}
		defer conn.Close()

		log := x_log.New("trie_ws").With().Str("remote", r.RemoteAddr).Logger()
		events := make(chan trie_serv.Event, watchBuffer)
		overflow := make(chan struct{})
		var once sync.Once
		cancel := s.Watch(func(ev trie_serv.Event) {
			select {
			case events <- ev:
			default:
				once.Do(func() { close(overflow) })
			}
		})
		defer cancel()

		// the reader only notices the peer going away
		gone := make(chan struct{})
		go func() {
			defer recover.RecoverWithContext("trie_api", "watch reader", r.RemoteAddr)
			defer close(gone)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		log.Debug().Msg("watcher connected")
		for {
			select {
			case ev := <-events:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, codec.MustMarshal(ev)); err != nil {
					log.Debug().Err(err).Msg("watcher write failed")
					return
				}
			case <-overflow:
				log.Warn().Msg("watcher too slow, closing")
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "too slow"),
					time.Now().Add(writeWait))
				return
			case <-gone:
				log.Debug().Msg("watcher disconnected")
				return
			case <-r.Context().Done():
				return
			}
		}
	}
}
