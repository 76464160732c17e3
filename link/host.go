package link

import (
	"net"
	"sync"
)

// Iface is the part of a network interface the host linker looks at.
type Iface struct {
	Name  string
	Flags net.Flags
	Addrs []net.Addr
}

// hostLinker relies on the host OS to associate with the network; it only
// waits for an interface to come up with an IPv4 address.
type hostLinker struct {
	name   string
	ifaces func() ([]Iface, error)

	mu sync.Mutex
	ip net.IP
}

// NewHost returns a Linker backed by the host network stack. When name is not
// empty only the interface with that name counts.
func NewHost(name string) Linker {
	return &hostLinker{name: name, ifaces: systemIfaces}
}

// Begin does nothing: the host OS owns association with the network, so the
// credentials are not used here.
func (h *hostLinker) Begin(ssid, password string) error {
	return nil
}

func (h *hostLinker) Connected() bool {
	ifaces, err := h.ifaces()
	if err != nil {
		return false
	}
	for _, i := range ifaces {
		if h.name != "" && i.Name != h.name {
			continue
		}
		if i.Flags&net.FlagUp == 0 || i.Flags&net.FlagLoopback != 0 {
			continue
		}
		for _, a := range i.Addrs {
			if ip := ipv4(a); ip != nil {
				h.mu.Lock()
				h.ip = ip
				h.mu.Unlock()
				return true
			}
		}
	}
	return false
}

func (h *hostLinker) LocalIP() net.IP {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ip
}

func ipv4(a net.Addr) net.IP {
	var ip net.IP
	switch v := a.(type) {
	case *net.IPNet:
		ip = v.IP
	case *net.IPAddr:
		ip = v.IP
	}
	if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
		return nil
	}
	return ip.To4()
}

func systemIfaces() ([]Iface, error) {
	sys, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	out := make([]Iface, 0, len(sys))
	for _, i := range sys {
		addrs, err := i.Addrs()
		if err != nil {
			continue
		}
		out = append(out, Iface{Name: i.Name, Flags: i.Flags, Addrs: addrs})
	}
	return out, nil
}
