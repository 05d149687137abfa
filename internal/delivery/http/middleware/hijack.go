package middleware

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
)

// hijack hands the connection to the websocket handler through a wrapped writer.
func hijack(w http.ResponseWriter) (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer %T does not support hijacking", w)
	}
	return hj.Hijack()
}
