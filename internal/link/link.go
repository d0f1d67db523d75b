// Package link reports the network attributes shown on the status
// page. On the reference hardware these come from the wireless
// association; the host implementation reports what the OS exposes.
package link

import (
	"net"
)

type (
	Info struct {
		Identity     string
		SignalDBM    int
		HardwareAddr string
	}

	Provider interface {
		Current() Info
	}

	// HostProvider reports the configured identity plus the first
	// physical interface's hardware address. Signal strength is not
	// observable on a wired host and reads as zero.
	HostProvider struct {
		Identity string
	}

	// StaticProvider serves fixed values; used by tests.
	StaticProvider struct {
		Info Info
	}
)

func (p *HostProvider) Current() Info {
	info := Info{Identity: p.Identity}

	ifaces, err := net.Interfaces()
	if err != nil {
		return info
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || len(iface.HardwareAddr) == 0 {
			continue
		}

		info.HardwareAddr = iface.HardwareAddr.String()
		break
	}

	return info
}

func (p *StaticProvider) Current() Info {
	return p.Info
}
