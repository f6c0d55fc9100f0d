package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"

	"github.com/hubertat/swnet/netif"
	"github.com/hubertat/swnet/report"
)

const httpTimeoutsMs = 3000

// Server exposes interface identity over a read-only json api. Every
// request reads firmware again.
type Server struct {
	Addr       string
	Firmware   netif.Firmware
	Interfaces []netif.Interface

	server    *http.Server
	serverErr chan error
}

func (s *Server) Handler() http.Handler {
	router := httprouter.New()
	router.GET("/interfaces", s.handleList)
	router.GET("/interfaces/:iface", s.handleReport)
	router.GET("/interfaces/:iface/mac", s.handleMac)
	router.GET("/interfaces/:iface/ip", s.handleIp)

	return router
}

func (s *Server) Start() error {
	if s.Firmware == nil {
		return errors.New("http api needs firmware")
	}

	httpTimeout := httpTimeoutsMs * time.Millisecond

	s.server = &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadTimeout:       httpTimeout,
		ReadHeaderTimeout: httpTimeout,
		WriteTimeout:      httpTimeout,
		IdleTimeout:       2 * httpTimeout,
	}

	s.serverErr = make(chan error, 1)
	go func() {
		s.serverErr <- s.server.ListenAndServe()
	}()

	return nil
}

// Err delivers the error that stopped the server.
func (s *Server) Err() <-chan error {
	return s.serverErr
}

func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	return s.server.Close()
}

func (s *Server) enabled(iface netif.Interface) bool {
	for _, enabled := range s.Interfaces {
		if enabled == iface {
			return true
		}
	}
	return false
}

func (s *Server) lookup(w http.ResponseWriter, p httprouter.Params) (netif.Interface, bool) {
	iface, err := netif.ParseInterface(p.ByName("iface"))
	if err != nil || !s.enabled(iface) {
		http.Error(w, "interface not found", http.StatusNotFound)
		return iface, false
	}
	return iface, true
}

func writeJson(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	reports, err := report.Collect(s.Firmware, s.Interfaces)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJson(w, reports)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	iface, found := s.lookup(w, p)
	if !found {
		return
	}

	rep, err := report.Read(s.Firmware, iface)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJson(w, rep)
}

func (s *Server) handleMac(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	iface, found := s.lookup(w, p)
	if !found {
		return
	}

	mac, err := netif.ResolveMac(s.Firmware, iface)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJson(w, map[string]netif.MacAddress{"mac": mac})
}

func (s *Server) handleIp(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	iface, found := s.lookup(w, p)
	if !found {
		return
	}

	config, ok, err := netif.ReadIpConfiguration(s.Firmware, iface)
	if errors.Is(err, netif.ErrNoIpState) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJson(w, config)
}
