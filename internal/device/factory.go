// Package device defines the device-factory contract: enumeration of
// attached stereo cameras filtered by product line, plus hot-plug
// notifications. The factory owns device Info lifetimes; calibration code
// only reads them. A factory is held by one context at a time, so multiple
// factories may coexist for independent contexts.
package device

import (
	"sync"

	"github.com/parallax-data/stereocal/internal/monitoring"
)

// ProductLineMask selects device product lines during enumeration.
type ProductLineMask uint32

const (
	// ProductLineDepth matches stereo depth cameras.
	ProductLineDepth ProductLineMask = 1 << iota
	// ProductLineColor matches RGB-capable devices.
	ProductLineColor
	// ProductLineMotion matches devices with an IMU.
	ProductLineMotion

	// ProductLineAny matches every product line.
	ProductLineAny ProductLineMask = ProductLineDepth | ProductLineColor | ProductLineMotion
)

// Info identifies an attached device.
type Info struct {
	Serial      string
	Name        string
	ProductLine ProductLineMask
}

// ChangeFunc receives the devices removed and added since the previous
// notification. Callbacks run synchronously on the mutating goroutine.
type ChangeFunc func(removed, added []Info)

// Factory enumerates devices and notifies observers of hot-plug changes.
type Factory interface {
	// QueryDevices returns devices whose product line intersects mask.
	QueryDevices(mask ProductLineMask) []Info
	// OnChange registers a hot-plug observer and returns a function that
	// unregisters it.
	OnChange(fn ChangeFunc) (cancel func())
}

// StaticFactory is an in-memory Factory fed by explicit Connect and
// Disconnect calls. It backs tests and fixed-inventory deployments where
// no platform enumeration backend is available.
type StaticFactory struct {
	mu        sync.Mutex
	devices   map[string]Info // keyed by serial
	observers map[int]ChangeFunc
	nextObs   int
}

// NewStaticFactory creates an empty factory.
func NewStaticFactory() *StaticFactory {
	return &StaticFactory{
		devices:   make(map[string]Info),
		observers: make(map[int]ChangeFunc),
	}
}

// QueryDevices returns devices whose product line intersects mask, in
// unspecified order.
func (f *StaticFactory) QueryDevices(mask ProductLineMask) []Info {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Info
	for _, d := range f.devices {
		if d.ProductLine&mask != 0 {
			out = append(out, d)
		}
	}
	return out
}

// OnChange registers fn for hot-plug notifications.
func (f *StaticFactory) OnChange(fn ChangeFunc) (cancel func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextObs
	f.nextObs++
	f.observers[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.observers, id)
	}
}

// Connect adds a device and notifies observers. Re-connecting a serial that
// is already present updates its Info without a notification.
func (f *StaticFactory) Connect(d Info) {
	f.mu.Lock()
	_, known := f.devices[d.Serial]
	f.devices[d.Serial] = d
	obs := f.snapshotObservers()
	f.mu.Unlock()

	if known {
		return
	}
	monitoring.Logf("device connected: %s (%s)", d.Serial, d.Name)
	for _, fn := range obs {
		fn(nil, []Info{d})
	}
}

// Disconnect removes a device by serial and notifies observers. Unknown
// serials are ignored.
func (f *StaticFactory) Disconnect(serial string) {
	f.mu.Lock()
	d, known := f.devices[serial]
	if known {
		delete(f.devices, serial)
	}
	obs := f.snapshotObservers()
	f.mu.Unlock()

	if !known {
		return
	}
	monitoring.Logf("device removed: %s (%s)", d.Serial, d.Name)
	for _, fn := range obs {
		fn([]Info{d}, nil)
	}
}

// snapshotObservers copies the observer set so callbacks run outside the
// lock. Caller must hold f.mu.
func (f *StaticFactory) snapshotObservers() []ChangeFunc {
	out := make([]ChangeFunc, 0, len(f.observers))
	for _, fn := range f.observers {
		out = append(out, fn)
	}
	return out
}
