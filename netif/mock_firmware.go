package netif

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// MockFirmware is an in-memory firmware that answers both the legacy and
// the esp-netif ip info calls. Interfaces that were never set report an
// all-zero ip record, like an interface that was never brought up.
type MockFirmware struct {
	mu sync.Mutex

	macs    map[MacType]MacAddress
	ipInfo  map[Interface]IpInfoLayout
	failing map[Interface]Status

	calls   int
	writeTo io.Writer
}

func NewMockFirmware() *MockFirmware {
	return &MockFirmware{
		macs:    make(map[MacType]MacAddress),
		ipInfo:  make(map[Interface]IpInfoLayout),
		failing: make(map[Interface]Status),
	}
}

func (mf *MockFirmware) SetMac(macType MacType, mac MacAddress) {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	mf.macs[macType] = mac
}

func (mf *MockFirmware) SetIpInfo(iface Interface, layout IpInfoLayout) {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	mf.ipInfo[iface] = layout
}

// Fail makes every call touching iface return status. StatusOK clears it.
func (mf *MockFirmware) Fail(iface Interface, status Status) {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	if status == StatusOK {
		delete(mf.failing, iface)
		return
	}
	mf.failing[iface] = status
}

// Calls returns how many native calls were served.
func (mf *MockFirmware) Calls() int {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	return mf.calls
}

// MonitorCalls writes a line per native call to writer.
func (mf *MockFirmware) MonitorCalls(writer io.Writer) {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	mf.writeTo = writer
}

func (mf *MockFirmware) record(format string, args ...any) {
	mf.calls++
	if mf.writeTo != nil {
		fmt.Fprintf(mf.writeTo, "[mock firmware] "+format+"\n", args...)
	}
}

// scribble leaves recognizable garbage behind, as a failed native call may.
func scribble(buf []byte) {
	for i := range buf {
		buf[i] = 0xA5
	}
}

func (mf *MockFirmware) ReadMac(buf *[6]byte, macType MacType) Status {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	mf.record("read mac type %d", macType)

	iface, found := InterfaceOfMacType(macType)
	if !found {
		return StatusInvalidArg
	}
	if status, failing := mf.failing[iface]; failing {
		scribble(buf[:])
		return status
	}

	*buf = mf.macs[macType]
	return StatusOK
}

func (mf *MockFirmware) ipInfoFor(iface Interface, buf *IpInfoLayout) Status {
	if status, failing := mf.failing[iface]; failing {
		scribble(buf.IP[:])
		scribble(buf.Netmask[:])
		scribble(buf.Gw[:])
		return status
	}

	*buf = mf.ipInfo[iface]
	return StatusOK
}

func (mf *MockFirmware) GetIpInfoByAdapter(adapter AdapterType, buf *IpInfoLayout) Status {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	mf.record("get ip info of adapter %d", adapter)

	switch adapter {
	case AdapterSta:
		return mf.ipInfoFor(Station, buf)
	case AdapterAp:
		return mf.ipInfoFor(AccessPoint, buf)
	}
	return StatusInvalidArg
}

func (mf *MockFirmware) HandleFromIfKey(key []byte) Handle {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	mf.record("handle from ifkey %q", bytes.TrimRight(key, "\x00"))

	for _, iface := range []Interface{Station, AccessPoint} {
		if bytes.Equal(key, IfKey(iface)) {
			return Handle(iface) + 1
		}
	}
	return 0
}

func (mf *MockFirmware) GetIpInfo(handle Handle, buf *IpInfoLayout) Status {
	mf.mu.Lock()
	defer mf.mu.Unlock()

	mf.record("get ip info of handle %d", handle)

	iface := Interface(handle) - 1
	if handle == 0 || (iface != Station && iface != AccessPoint) {
		return StatusNetifInvalidParams
	}
	return mf.ipInfoFor(iface, buf)
}
