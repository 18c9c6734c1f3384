// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package forward

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/weirdproxy/subproxy/internal/codec"
)

// upgrader accepts the inbound client connection. CheckOrigin always
// returns true: the proxy has no notion of same-origin policy to enforce
// here (spec §1 Non-goals: authentication of clients is out of scope).
var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// dialer opens the upstream connection.
var dialer = websocket.Dialer{
	HandshakeTimeout: 15 * time.Second,
}

const controlWriteTimeout = 5 * time.Second

// bridgeWebsocket implements spec §4.4: it dials the upstream WS, accepts
// the client upgrade, then relays frames bidirectionally until either side
// closes.
func (e *Engine) bridgeWebsocket(w http.ResponseWriter, r *http.Request, origin codec.Origin, event zerolog.Logger) {
	upstreamURL := wsURL(origin) + r.URL.RequestURI()

	upstreamConn, _, err := dialer.Dial(upstreamURL, nil)
	if err != nil {
		// spec §4.4 "Failure": the bridge exits silently and the client
		// socket is dropped; no retry.
		event.Debug().Err(err).Str("upstream_url", upstreamURL).Msg("websocket upstream dial failed")
		if hj, ok := w.(http.Hijacker); ok {
			if conn, _, hjErr := hj.Hijack(); hjErr == nil {
				_ = conn.Close()
			}
		}
		return
	}
	defer upstreamConn.Close()

	clientConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		event.Debug().Err(err).Msg("websocket client upgrade failed")
		return
	}
	defer clientConn.Close()

	done := make(chan struct{}, 2)

	go relay(clientConn, upstreamConn, done)
	go relay(upstreamConn, clientConn, done)

	// First relay to finish wins; the other socket is dropped once this
	// method returns and its deferred Close runs (spec §9 "two asynchronous
	// relays joined by first to finish wins").
	<-done
}

func wsURL(origin codec.Origin) string {
	scheme := "ws"
	if origin.Scheme == codec.Https {
		scheme = "wss"
	}
	host := origin.Host
	if origin.Port != 0 {
		host += ":" + strconv.Itoa(int(origin.Port))
	}
	return scheme + "://" + host
}

// relay forwards frames read from src onto dst until a Close frame is
// forwarded or src errors, preserving per-direction ordering (spec §5
// "Ordering"). Ping and Pong frames are relayed verbatim via handler
// callbacks, since gorilla/websocket surfaces control frames to the
// application through SetPingHandler/SetPongHandler rather than through
// ReadMessage itself.
func relay(src, dst *websocket.Conn, done chan<- struct{}) {
	defer func() { done <- struct{}{} }()

	src.SetPingHandler(func(appData string) error {
		return dst.WriteControl(websocket.PingMessage, []byte(appData), time.Now().Add(controlWriteTimeout))
	})
	src.SetPongHandler(func(appData string) error {
		return dst.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(controlWriteTimeout))
	})

	for {
		msgType, data, err := src.ReadMessage()
		if err != nil {
			code, reason := closeCodeAndReason(err)
			_ = dst.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(controlWriteTimeout))
			return
		}

		if err := dst.WriteMessage(msgType, data); err != nil {
			return
		}
	}
}

// closeCodeAndReason extracts the close code/reason the peer sent, or
// synthesizes {1000, "Unknown Error"} when the peer's Close frame carried no
// status code or the connection failed without a Close frame (spec §4.4
// "Close: forwarded with the client-provided code and reason; if the
// client sent Close without a frame, synthesize {code: 1000, reason:
// "Unknown Error"}").
func closeCodeAndReason(err error) (int, string) {
	if ce, ok := err.(*websocket.CloseError); ok && ce.Code != websocket.CloseNoStatusReceived {
		return ce.Code, ce.Text
	}
	return websocket.CloseNormalClosure, "Unknown Error"
}
