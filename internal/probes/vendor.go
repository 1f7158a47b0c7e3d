package probes

import (
	"net"
	"sync"

	"github.com/klauspost/oui"
	"go.uber.org/zap"
)

// VendorResolver resolves MAC address prefixes to manufacturer names
// through the IEEE OUI database. Lookups are best-effort: an unloadable
// database or unknown prefix yields "".
type VendorResolver struct {
	logger *zap.Logger

	once sync.Once
	db   oui.OuiDB
}

// NewVendorResolver creates a vendor resolver. The database is loaded
// lazily on first lookup.
func NewVendorResolver(logger *zap.Logger) *VendorResolver {
	return &VendorResolver{logger: logger}
}

// Lookup returns the manufacturer for a MAC address, or "".
func (r *VendorResolver) Lookup(mac string) string {
	r.once.Do(func() {
		db, err := oui.OpenStaticFile("")
		if err != nil {
			r.logger.Debug("OUI database unavailable", zap.Error(err))
			return
		}
		r.db = db
	})
	if r.db == nil {
		return ""
	}

	hw, err := net.ParseMAC(mac)
	if err != nil {
		return ""
	}

	entry, err := r.db.Query(hw.String())
	if err != nil || entry == nil {
		return ""
	}
	return entry.Manufacturer
}
