// Package discovery advertises and finds drawdle servers on the local
// network over mDNS.
package discovery

import (
	"context"
	"fmt"
	"net"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service drawdle servers register.
const ServiceType = "_drawdle._tcp"

// Advertisement is a running mDNS responder.
type Advertisement struct {
	server *mdns.Server
}

// Close stops answering queries.
func (a *Advertisement) Close() error {
	if a == nil || a.server == nil {
		return nil
	}
	return a.server.Shutdown()
}

// Advertise announces a server listening on port. An empty instance uses
// the host name.
func Advertise(instance string, port int) (*Advertisement, error) {
	if instance == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("could not get hostname: %w", err)
		}
		instance = host
	}
	service, err := mdns.NewMDNSService(instance, ServiceType, "", "", port, nil, []string{"path=/api"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return &Advertisement{server: server}, nil
}

// Server is one discovered drawdle server.
type Server struct {
	Name string
	Host string
	Port int
}

// URL is the base URL for the server's API.
func (s Server) URL() string {
	return "http://" + net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Browse queries the network for timeout and returns the servers found,
// sorted by name.
func Browse(ctx context.Context, timeout time.Duration) ([]Server, error) {
	entries := make(chan *mdns.ServiceEntry, 16)
	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true

	errc := make(chan error, 1)
	go func() {
		errc <- mdns.QueryContext(ctx, params)
		close(entries)
	}()

	seen := map[string]bool{}
	var found []Server
	for e := range entries {
		if s, ok := fromEntry(e); ok && !seen[s.URL()] {
			seen[s.URL()] = true
			found = append(found, s)
		}
	}
	if err := <-errc; err != nil && ctx.Err() == nil {
		return found, fmt.Errorf("mDNS query: %w", err)
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	return found, nil
}

func fromEntry(e *mdns.ServiceEntry) (Server, bool) {
	if e == nil || e.Port == 0 {
		return Server{}, false
	}
	host := ""
	switch {
	case e.AddrV4 != nil:
		host = e.AddrV4.String()
	case e.AddrV6 != nil:
		host = e.AddrV6.String()
	default:
		return Server{}, false
	}
	return Server{Name: e.Name, Host: host, Port: e.Port}, true
}
