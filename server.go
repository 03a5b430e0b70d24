package main

import (
	"log"
	"net"
	"sync/atomic"
)

// Server holds the shared, read-only state every connection goroutine group
// needs: the loaded config and the admission counter. Grounded on
// original_source/picolimbo/src/server.rs's LimboServer, generalized from
// its Mutex<HashMap<Uuid, Player>> player registry to a plain atomic
// counter, since this server tracks only a count, never per-player state,
// once a connection leaves Login (spec.md §4.8).
type Server struct {
	cfg     *Config
	players int32
}

func NewServer(cfg *Config) *Server {
	return &Server{cfg: cfg}
}

// TryAdmit attempts to reserve one of cfg.MaxPlayers slots, returning false
// if the server is already full. Matches spec.md §4.8/§8's admission
// invariant: concurrent TryAdmit calls never over-admit past MaxPlayers.
func (s *Server) TryAdmit() bool {
	for {
		cur := atomic.LoadInt32(&s.players)
		if cur >= s.cfg.MaxPlayers {
			return false
		}
		if atomic.CompareAndSwapInt32(&s.players, cur, cur+1) {
			return true
		}
	}
}

// Release gives back a slot reserved by a prior successful TryAdmit.
func (s *Server) Release() {
	atomic.AddInt32(&s.players, -1)
}

// Online reports the current admitted player count, used by the status
// response (spec.md §6.5).
func (s *Server) Online() int32 {
	return atomic.LoadInt32(&s.players)
}

// Run binds cfg.Address and then accepts connections forever, spawning one
// handleConn goroutine group per accepted connection; an accept error is
// logged and skipped, so Run returns only when binding fails. Mirrors
// the teacher's main accept loop (main.go's listener.Accept() for-loop),
// generalized from the tunnel handshake to the Handshake/Status/Login/Play
// state machine in conn.go.
func (s *Server) Run() error {
	listener, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}
	log.Printf("limbo: listening on %s (max_players=%d, dimension=%s)", s.cfg.Address, s.cfg.MaxPlayers, s.cfg.Dimension)

	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Printf("limbo: accept error: %v", err)
			continue
		}
		go handleConn(s, conn)
	}
}
