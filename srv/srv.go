// Package srv serves the threshold encryption node API over JSON-RPC 2.0 so
// that lit.RPCNetwork clients can reach any lit.Network, such as the in
// memory development network.
package srv

import (
	"context"
	"net/http"
	"time"

	jrpc "github.com/AdamSLevy/jsonrpc2/v14"
	"github.com/DaevMithran/SignxLit/lit"
	_log "github.com/DaevMithran/SignxLit/log"
	"github.com/rs/cors"
)

const APIVersion = "1"

var log = _log.New("srv")

// Handler returns the JSON-RPC handler for network on "/" and "/v1".
func Handler(network lit.Network) http.Handler {
	jrpcHandler := jrpc.HTTPRequestHandler(methods(network), log)
	var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add(http.CanonicalHeaderKey("Signxlit-Api-Version"), APIVersion)
		jrpcHandler(w, r)
	}

	srvMux := http.NewServeMux()
	srvMux.Handle("/", handler)
	srvMux.Handle("/v1", handler)

	cors := cors.New(cors.Options{AllowedOrigins: []string{"*"}})
	return cors.Handler(srvMux)
}

// ListenAndServe serves network on addr until ctx is done.
func ListenAndServe(ctx context.Context, addr string, network lit.Network) error {
	srv := http.Server{Addr: addr, Handler: Handler(network)}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	log.Infof("listening on %v", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("srv.Shutdown(): %v", err)
		return err
	}
	return nil
}
